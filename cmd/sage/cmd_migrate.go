package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/sage/internal/config"
	"github.com/jask/sage/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("mkdir db dir: %w", err)
		}
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Printf("Database at %s is up to date.\n", cfg.Database.Path)
		return nil
	},
}
