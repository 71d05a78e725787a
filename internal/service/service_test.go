package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/sage/internal/database"
	"github.com/jask/sage/internal/database/repository"
)

type testEnv struct {
	db            *sql.DB
	users         *UserService
	locations     *LocationService
	permissions   *PermissionService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db))
	require.NoError(t, database.SeedDefaults(context.Background(), db))

	userRepo := repository.NewUserRepo(db)
	locRepo := repository.NewLocationRepo(db)
	notes := &NotificationService{Notifications: repository.NewNotificationRepo(db)}
	return testEnv{
		db:        db,
		users:     &UserService{Users: userRepo, Locations: locRepo},
		locations: &LocationService{Locations: locRepo},
		permissions: &PermissionService{
			Users:         userRepo,
			Locations:     locRepo,
			Permissions:   repository.NewPermissionRepo(db),
			Notifications: notes,
		},
		notifications: notes,
	}
}

func TestUserSaveValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.users.Save(ctx, UserInput{Name: " ", Email: "not-an-email", Role: "owner"})
	fields := FieldErrors(err)
	require.NotNil(t, fields, "want validation error, got %v", err)
	require.Equal(t, "is required", fields["name"])
	require.Equal(t, "must be a valid email address", fields["email"])
	require.Contains(t, fields["role"], "must be one of")

	_, err = env.users.Save(ctx, UserInput{Name: "Ada", Email: "ada@example.org", Role: "admin", LocationID: "nope"})
	require.Equal(t, "does not exist", FieldErrors(err)["location"])
}

func TestUserSaveCreateUpdateAndDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	loc, _, err := env.locations.Save(ctx, LocationInput{Name: "Main Hall", Capacity: 120})
	require.NoError(t, err)

	u, err := env.users.Save(ctx, UserInput{Name: "Ada", Email: "ada@example.org", Role: "Admin", LocationID: loc.ID})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "admin", u.Role)
	require.True(t, u.Active)
	require.Equal(t, loc.ID, *u.LocationID)

	_, err = env.users.Save(ctx, UserInput{Name: "Other", Email: "ADA@example.org", Role: "member"})
	require.Equal(t, "is already in use", FieldErrors(err)["email"])

	require.NoError(t, env.users.SetActive(ctx, u.ID, false))
	updated, err := env.users.Save(ctx, UserInput{ID: u.ID, Name: "Ada L.", Email: "ada@example.org", Role: "staff"})
	require.NoError(t, err)
	require.Equal(t, "Ada L.", updated.Name)
	require.Nil(t, updated.LocationID)
	require.False(t, updated.Active, "editing keeps the active flag")
}

func TestAvatarURLCacheBusting(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Empty(t, AvatarURL(repository.User{}))
	require.Equal(t, "/avatars/u1.png?v=1772366400", AvatarURL(repository.User{AvatarPath: "/avatars/u1.png", UpdatedAt: ts}))
	require.Equal(t, "/a.png?size=64&v=1772366400", AvatarURL(repository.User{AvatarPath: "/a.png?size=64", UpdatedAt: ts}))
}

func TestLocationSaveDuplicatesAndLookAlikes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, warnings, err := env.locations.Save(ctx, LocationInput{Name: "Room 101", Building: "East"})
	require.NoError(t, err)
	require.Empty(t, warnings)

	_, _, err = env.locations.Save(ctx, LocationInput{Name: "room 101"})
	require.Equal(t, "already exists", FieldErrors(err)["name"])

	_, warnings, err = env.locations.Save(ctx, LocationInput{Name: "Room 102"})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "Room 101")

	// renaming itself is not a duplicate
	_, _, err = env.locations.Save(ctx, LocationInput{ID: first.ID, Name: "ROOM 101", Capacity: 12})
	require.NoError(t, err)

	_, _, err = env.locations.Save(ctx, LocationInput{Name: "Annex", Capacity: -1})
	require.Equal(t, "must be 0 or more", FieldErrors(err)["capacity"])

	_, err = ParseCapacity("ten")
	require.Equal(t, "must be a whole number", FieldErrors(err)["capacity"])
	n, err := ParseCapacity(" 30 ")
	require.NoError(t, err)
	require.Equal(t, 30, n)
}

func TestGrantAndRevokeNotify(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	loc, _, err := env.locations.Save(ctx, LocationInput{Name: "Library"})
	require.NoError(t, err)
	u, err := env.users.Save(ctx, UserInput{Name: "Grace", Email: "grace@example.org", Role: "staff"})
	require.NoError(t, err)
	pid := database.PermissionID("book_rooms")

	_, err = env.permissions.Grant(ctx, "", pid, "")
	fields := FieldErrors(err)
	require.Equal(t, "is required", fields["user"])
	require.Equal(t, "is required", fields["location"])

	added, err := env.permissions.Grant(ctx, u.ID, pid, loc.ID)
	require.NoError(t, err)
	require.True(t, added)
	added, err = env.permissions.Grant(ctx, u.ID, pid, loc.ID)
	require.NoError(t, err)
	require.False(t, added, "second grant is a no-op")

	require.NoError(t, env.permissions.Revoke(ctx, u.ID, pid, loc.ID))

	notes, err := env.notifications.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "Permission revoked", notes[0].Title)
	require.Equal(t, "book_rooms at Library", notes[0].Body)
	require.Equal(t, "Permission granted", notes[1].Title)

	_, err = env.permissions.Grant(ctx, u.ID, "missing", loc.ID)
	require.Equal(t, "does not exist", FieldErrors(err)["permission"])
}

func TestFixtureImport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	importer := &FixtureImporter{Users: env.users, Locations: env.locations}

	doc := strings.Join([]string{
		"locations:",
		"  - name: Main Hall",
		"    building: A",
		"    capacity: 200",
		"  - name: ''",
		"users:",
		"  - name: Ada",
		"    email: ada@example.org",
		"    role: admin",
		"    location: main hall",
		"  - name: Bob",
		"    email: bob@example.org",
		"    location: Nowhere",
	}, "\n")

	res, err := importer.Import(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, res.Locations)
	require.Equal(t, 1, res.Users)
	require.Len(t, res.Errors, 2)

	// re-import updates in place
	res, err = importer.Import(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, res.Users)
	users, err := env.users.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = importer.Import(ctx, strings.NewReader("locations: [unterminated"))
	require.Error(t, err)
}

func TestMaintenanceResetKeepsCatalogue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.users.Save(ctx, UserInput{Name: "Lin", Email: "lin@example.org", Role: "member"})
	require.NoError(t, err)

	m := &MaintenanceService{DB: env.db}
	require.NoError(t, m.Reset(ctx))

	users, err := env.users.Users.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
	perms, err := env.permissions.Permissions.List(ctx)
	require.NoError(t, err)
	require.Len(t, perms, len(database.DefaultPermissions))
}
