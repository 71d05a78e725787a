package repository

import (
	"context"
	"database/sql"
	"errors"
)

// LocationRepo handles locations.
type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Upsert(ctx context.Context, l Location) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO locations(id, name, building, capacity, created_at, updated_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 building=excluded.building,
	 capacity=excluded.capacity,
	 updated_at=CURRENT_TIMESTAMP;
	`, l.ID, l.Name, l.Building, l.Capacity)
	return err
}

func (r *LocationRepo) Get(ctx context.Context, id string) (Location, error) {
	var l Location
	err := r.db.QueryRowContext(ctx, `SELECT id, name, building, capacity, created_at, updated_at FROM locations WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Building, &l.Capacity, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, ErrNotFound
	}
	return l, err
}

func (r *LocationRepo) List(ctx context.Context) ([]Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, building, capacity, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Building, &l.Capacity, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
