package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/sage/internal/database/repository"
)

// DefaultPermissions is the permission catalogue every database starts with.
var DefaultPermissions = []repository.Permission{
	{Code: "book_rooms", Description: "Book rooms at the location"},
	{Code: "approve_bookings", Description: "Approve or reject booking requests"},
	{Code: "manage_users", Description: "Create, edit and deactivate users"},
	{Code: "manage_locations", Description: "Create and edit locations"},
	{Code: "view_reports", Description: "View occupancy and usage reports"},
}

// PermissionID derives the stable ID for a catalogue code.
func PermissionID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("perm:"+code)).String()
}

// SeedDefaults ensures the permission catalogue exists.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, p := range DefaultPermissions {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO permissions(id, code, description) VALUES (?, ?, ?)
			ON CONFLICT(code) DO NOTHING`, PermissionID(p.Code), p.Code, p.Description); err != nil {
				return err
			}
		}
		return nil
	})
}
