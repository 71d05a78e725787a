package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/sage/internal/database/repository"
)

func TestMigrateAndSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sage.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrationsWithDB(db))
	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	perms, err := repository.NewPermissionRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, perms, len(DefaultPermissions))
	for _, p := range perms {
		require.Equal(t, PermissionID(p.Code), p.ID)
	}

	// the handle must survive RunMigrationsWithDB
	var one int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT 1").Scan(&one))
}
