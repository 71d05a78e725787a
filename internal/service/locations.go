package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/sage/internal/database/repository"
)

// similarNameDistance is the edit distance under which two location names
// are reported as look-alikes.
const similarNameDistance = 2

// LocationInput is the editable part of a location. An empty ID creates one.
type LocationInput struct {
	ID       string
	Name     string `form:"name" validate:"required,max=80"`
	Building string `form:"building" validate:"max=80"`
	Capacity int    `form:"capacity" validate:"gte=0,lte=10000"`
}

// ParseCapacity converts form text into a capacity. Blank means zero.
func ParseCapacity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fieldError("capacity", "must be a whole number")
	}
	return n, nil
}

// LocationService validates and stores locations.
type LocationService struct {
	Locations *repository.LocationRepo
	Logger    *slog.Logger
}

// Save stores the location. Warnings name existing locations whose names
// are close enough to be a likely typo; they do not block the save.
func (s *LocationService) Save(ctx context.Context, in LocationInput) (repository.Location, []string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Building = strings.TrimSpace(in.Building)
	if err := check(in); err != nil {
		return repository.Location{}, nil, err
	}

	existing, err := s.Locations.List(ctx)
	if err != nil {
		return repository.Location{}, nil, fmt.Errorf("list locations: %w", err)
	}
	var warnings []string
	name := strings.ToLower(in.Name)
	for _, l := range existing {
		if l.ID == in.ID {
			continue
		}
		other := strings.ToLower(l.Name)
		if other == name {
			return repository.Location{}, nil, fieldError("name", "already exists")
		}
		if levenshtein.ComputeDistance(name, other) <= similarNameDistance {
			warnings = append(warnings, fmt.Sprintf("similar to existing location %q", l.Name))
		}
	}

	l := repository.Location{ID: in.ID, Name: in.Name, Building: in.Building, Capacity: in.Capacity}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.Locations.Upsert(ctx, l); err != nil {
		return repository.Location{}, nil, fmt.Errorf("save location: %w", err)
	}
	if len(warnings) > 0 {
		s.log().Warn("location saved with look-alike name", "name", l.Name, "warnings", len(warnings))
	}
	saved, err := s.Locations.Get(ctx, l.ID)
	return saved, warnings, err
}

func (s *LocationService) Delete(ctx context.Context, id string) error {
	if err := s.Locations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete location %s: %w", id, err)
	}
	return nil
}

func (s *LocationService) log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
