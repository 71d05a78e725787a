package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Roles a user may hold.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// Roles lists every role in display order.
func Roles() []string {
	return []string{RoleAdmin, RoleStaff, RoleMember}
}

// User represents a user row.
type User struct {
	ID         string
	Name       string
	Email      string
	Role       string
	LocationID *string
	AvatarPath string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Location represents a bookable building or room.
type Location struct {
	ID        string
	Name      string
	Building  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permission is an entry in the permission catalogue.
type Permission struct {
	ID          string
	Code        string
	Description string
}

// Assignment grants a permission to a user at a location. The name fields
// are filled by ListAssignments.
type Assignment struct {
	UserID         string
	PermissionID   string
	LocationID     string
	GrantedAt      time.Time
	UserName       string
	PermissionCode string
	LocationName   string
}

// Notification is a message addressed to a user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Read reports whether the notification has been read.
func (n Notification) Read() bool { return n.ReadAt != nil }
