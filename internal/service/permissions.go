package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jask/sage/internal/database/repository"
)

// PermissionService grants and revokes location-scoped permissions and
// tells the affected user about it.
type PermissionService struct {
	Users         *repository.UserRepo
	Locations     *repository.LocationRepo
	Permissions   *repository.PermissionRepo
	Notifications *NotificationService
	Logger        *slog.Logger
}

type grantTarget struct {
	user       repository.User
	permission repository.Permission
	location   repository.Location
}

func (s *PermissionService) resolve(ctx context.Context, userID, permissionID, locationID string) (grantTarget, error) {
	missing := &ValidationError{Fields: map[string]string{}}
	if userID == "" {
		missing.Fields["user"] = "is required"
	}
	if permissionID == "" {
		missing.Fields["permission"] = "is required"
	}
	if locationID == "" {
		missing.Fields["location"] = "is required"
	}
	if len(missing.Fields) > 0 {
		return grantTarget{}, missing
	}

	var t grantTarget
	var err error
	if t.user, err = s.Users.Get(ctx, userID); err != nil {
		return t, notFoundAs("user", err)
	}
	if t.permission, err = s.Permissions.Get(ctx, permissionID); err != nil {
		return t, notFoundAs("permission", err)
	}
	if t.location, err = s.Locations.Get(ctx, locationID); err != nil {
		return t, notFoundAs("location", err)
	}
	return t, nil
}

func notFoundAs(field string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fieldError(field, "does not exist")
	}
	return fmt.Errorf("load %s: %w", field, err)
}

// Grant assigns the permission. It reports false when the user already held it.
func (s *PermissionService) Grant(ctx context.Context, userID, permissionID, locationID string) (bool, error) {
	t, err := s.resolve(ctx, userID, permissionID, locationID)
	if err != nil {
		return false, err
	}
	added, err := s.Permissions.Assign(ctx, userID, permissionID, locationID)
	if err != nil {
		return false, fmt.Errorf("assign permission: %w", err)
	}
	if !added {
		return false, nil
	}
	body := fmt.Sprintf("%s at %s", t.permission.Code, t.location.Name)
	if err := s.Notifications.Notify(ctx, userID, "Permission granted", body); err != nil {
		return true, fmt.Errorf("notify %s: %w", t.user.Email, err)
	}
	s.log().Info("permission granted", "user", userID, "permission", t.permission.Code, "location", locationID)
	return true, nil
}

func (s *PermissionService) Revoke(ctx context.Context, userID, permissionID, locationID string) error {
	t, err := s.resolve(ctx, userID, permissionID, locationID)
	if err != nil {
		return err
	}
	if err := s.Permissions.Revoke(ctx, userID, permissionID, locationID); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	body := fmt.Sprintf("%s at %s", t.permission.Code, t.location.Name)
	if err := s.Notifications.Notify(ctx, userID, "Permission revoked", body); err != nil {
		return fmt.Errorf("notify %s: %w", t.user.Email, err)
	}
	s.log().Info("permission revoked", "user", userID, "permission", t.permission.Code, "location", locationID)
	return nil
}

func (s *PermissionService) log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
