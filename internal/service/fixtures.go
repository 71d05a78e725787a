package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Fixtures is the seed file layout. Users name their home location.
type Fixtures struct {
	Locations []struct {
		Name     string `yaml:"name"`
		Building string `yaml:"building"`
		Capacity int    `yaml:"capacity"`
	} `yaml:"locations"`
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Role     string `yaml:"role"`
		Location string `yaml:"location"`
		Avatar   string `yaml:"avatar"`
	} `yaml:"users"`
}

// ImportResult summarises a fixture import.
type ImportResult struct {
	Locations int
	Users     int
	Errors    []error
}

// FixtureImporter loads fixtures through the services so validation applies.
type FixtureImporter struct {
	Users     *UserService
	Locations *LocationService
}

// Import reads YAML fixtures. Rows that fail validation are collected in
// the result; a malformed document is returned as an error.
func (f *FixtureImporter) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return ImportResult{}, fmt.Errorf("decode fixtures: %w", err)
	}

	var res ImportResult
	byName := map[string]string{}
	existing, err := f.Locations.Locations.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list locations: %w", err)
	}
	for _, l := range existing {
		byName[strings.ToLower(l.Name)] = l.ID
	}

	for i, row := range fx.Locations {
		in := LocationInput{ID: byName[strings.ToLower(strings.TrimSpace(row.Name))], Name: row.Name, Building: row.Building, Capacity: row.Capacity}
		saved, _, err := f.Locations.Save(ctx, in)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("locations[%d] %q: %w", i, row.Name, err))
			continue
		}
		byName[strings.ToLower(saved.Name)] = saved.ID
		res.Locations++
	}

	for i, row := range fx.Users {
		in := UserInput{Name: row.Name, Email: row.Email, Role: row.Role, AvatarPath: row.Avatar}
		if in.Role == "" {
			in.Role = "member"
		}
		if loc := strings.TrimSpace(row.Location); loc != "" {
			id, ok := byName[strings.ToLower(loc)]
			if !ok {
				res.Errors = append(res.Errors, fmt.Errorf("users[%d] %q: unknown location %q", i, row.Email, loc))
				continue
			}
			in.LocationID = id
		}
		if prev, err := f.Users.Users.ByEmail(ctx, strings.TrimSpace(row.Email)); err == nil {
			in.ID = prev.ID
		}
		if _, err := f.Users.Save(ctx, in); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("users[%d] %q: %w", i, row.Email, err))
			continue
		}
		res.Users++
	}
	return res, nil
}
