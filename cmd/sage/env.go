package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jask/sage/internal/config"
	"github.com/jask/sage/internal/database"
	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/logging"
	"github.com/jask/sage/internal/service"
	"github.com/jask/sage/internal/tui"
)

// appEnv is everything a command needs once config, logging and the database
// are up.
type appEnv struct {
	cfg         config.Config
	logger      *slog.Logger
	status      *logging.StatusHandler
	db          *sql.DB
	repos       tui.Repos
	services    tui.Services
	importer    *service.FixtureImporter
	maintenance *service.MaintenanceService

	logFile io.Closer
}

func bootstrap(ctx context.Context) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	fileLogger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	status := logging.NewStatusHandler(slog.LevelWarn)
	logger := slog.New(logging.Fanout{fileLogger.Handler(), status})
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		_ = logFile.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	// repositories
	userRepo := repository.NewUserRepo(db)
	locRepo := repository.NewLocationRepo(db)
	permRepo := repository.NewPermissionRepo(db)
	noteRepo := repository.NewNotificationRepo(db)

	// services
	users := &service.UserService{Users: userRepo, Locations: locRepo, Logger: logger}
	locations := &service.LocationService{Locations: locRepo, Logger: logger}
	notifications := &service.NotificationService{Notifications: noteRepo}
	permissions := &service.PermissionService{
		Users:         userRepo,
		Locations:     locRepo,
		Permissions:   permRepo,
		Notifications: notifications,
		Logger:        logger,
	}

	logger.Info("startup", "db", cfg.Database.Path, "config", config.Path())
	return &appEnv{
		cfg:    cfg,
		logger: logger,
		status: status,
		db:     db,
		repos: tui.Repos{
			Users:         userRepo,
			Locations:     locRepo,
			Permissions:   permRepo,
			Notifications: noteRepo,
		},
		services: tui.Services{
			Users:         users,
			Locations:     locations,
			Permissions:   permissions,
			Notifications: notifications,
		},
		importer:    &service.FixtureImporter{Users: users, Locations: locations},
		maintenance: &service.MaintenanceService{DB: db},
		logFile:     logFile,
	}, nil
}

func (e *appEnv) Close() error {
	return errors.Join(e.db.Close(), e.logFile.Close())
}
