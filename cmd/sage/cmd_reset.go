package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all users, locations, grants and notifications",
	Long:  "Delete all users, locations, grants and notifications. The permission catalogue and the schema are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("refusing to reset without --yes")
		}
		env, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.maintenance.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		env.logger.Warn("database reset", "db", env.cfg.Database.Path)
		fmt.Println("Database reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the reset")
}
