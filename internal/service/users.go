package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/sage/internal/database/repository"
)

// UserInput is the editable part of a user. An empty ID creates a new user.
type UserInput struct {
	ID         string
	Name       string `form:"name" validate:"required,max=80"`
	Email      string `form:"email" validate:"required,email,max=254"`
	Role       string `form:"role" validate:"required,oneof=admin staff member"`
	LocationID string `form:"location"`
	AvatarPath string `form:"avatar" validate:"max=512"`
}

// UserService validates and stores users.
type UserService struct {
	Users     *repository.UserRepo
	Locations *repository.LocationRepo
	Logger    *slog.Logger
}

func (s *UserService) Save(ctx context.Context, in UserInput) (repository.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.AvatarPath = strings.TrimSpace(in.AvatarPath)
	if err := check(in); err != nil {
		return repository.User{}, err
	}

	var locationID *string
	if in.LocationID != "" {
		if _, err := s.Locations.Get(ctx, in.LocationID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return repository.User{}, fieldError("location", "does not exist")
			}
			return repository.User{}, fmt.Errorf("load location: %w", err)
		}
		locationID = &in.LocationID
	}

	existing, err := s.Users.ByEmail(ctx, in.Email)
	switch {
	case err == nil && existing.ID != in.ID:
		return repository.User{}, fieldError("email", "is already in use")
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return repository.User{}, fmt.Errorf("check email: %w", err)
	}

	u := repository.User{
		ID:         in.ID,
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		LocationID: locationID,
		AvatarPath: in.AvatarPath,
		Active:     true,
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	} else {
		prev, err := s.Users.Get(ctx, u.ID)
		if err != nil {
			return repository.User{}, fmt.Errorf("load user: %w", err)
		}
		u.Active = prev.Active
	}
	if err := s.Users.Upsert(ctx, u); err != nil {
		return repository.User{}, fmt.Errorf("save user: %w", err)
	}
	s.log().Info("user saved", "id", u.ID, "role", u.Role)
	return s.Users.Get(ctx, u.ID)
}

// SetActive toggles whether the user may sign in.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	u.Active = active
	return s.Users.Upsert(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.log().Info("user deleted", "id", id)
	return nil
}

func (s *UserService) log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// AvatarURL appends the last update time so clients refetch a replaced avatar.
func AvatarURL(u repository.User) string {
	if u.AvatarPath == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(u.AvatarPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sv=%d", u.AvatarPath, sep, u.UpdatedAt.Unix())
}
