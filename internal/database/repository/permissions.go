package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PermissionRepo handles the permission catalogue and its assignments.
type PermissionRepo struct {
	db *sql.DB
}

func NewPermissionRepo(db *sql.DB) *PermissionRepo { return &PermissionRepo{db: db} }

func (r *PermissionRepo) Upsert(ctx context.Context, p Permission) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO permissions(id, code, description) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET code=excluded.code, description=excluded.description;
	`, p.ID, p.Code, p.Description)
	return err
}

func (r *PermissionRepo) Get(ctx context.Context, id string) (Permission, error) {
	var p Permission
	err := r.db.QueryRowContext(ctx, `SELECT id, code, description FROM permissions WHERE id = ?`, id).Scan(&p.ID, &p.Code, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Permission{}, ErrNotFound
	}
	return p, err
}

func (r *PermissionRepo) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, description FROM permissions ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Assign is idempotent; granting the same triple twice keeps the first grant time.
func (r *PermissionRepo) Assign(ctx context.Context, userID, permissionID, locationID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO user_permissions(user_id, permission_id, location_id, granted_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(user_id, permission_id, location_id) DO NOTHING;
	`, userID, permissionID, locationID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PermissionRepo) Revoke(ctx context.Context, userID, permissionID, locationID string) error {
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM user_permissions WHERE user_id = ? AND permission_id = ? AND location_id = ?
	`, userID, permissionID, locationID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PermissionRepo) ListAssignments(ctx context.Context) ([]Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT up.user_id, up.permission_id, up.location_id, up.granted_at, u.name, p.code, l.name
	FROM user_permissions up
	JOIN users u ON u.id = up.user_id
	JOIN permissions p ON p.id = up.permission_id
	JOIN locations l ON l.id = up.location_id
	ORDER BY u.name, p.code, l.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.UserID, &a.PermissionID, &a.LocationID, &a.GrantedAt, &a.UserName, &a.PermissionCode, &a.LocationName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
