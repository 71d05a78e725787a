package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/sage/internal/prefs"
	"github.com/jask/sage/internal/theme"
	"github.com/jask/sage/internal/tui"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sage",
	Short: "Manage users, locations and permissions from the terminal",
	Long:  "sage is a terminal admin console for users, locations, permission grants and notifications backed by a local sqlite database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			return os.Setenv("SAGE_CONFIG", configPath)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		themes := &theme.Store{Prefs: prefs.Store{}, Config: &env.cfg}
		app := tui.New(cmd.Context(), env.cfg, env.repos, env.services, tui.Options{
			Themes: themes,
			Logger: env.logger,
		})
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		env.status.SetProgram(p)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sage %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/sage/config.toml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
