package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jask/sage/internal/prefs"
	"github.com/jask/sage/internal/service"
	"github.com/jask/sage/internal/theme"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database, a first admin user and pick a theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		themes := &theme.Store{Prefs: prefs.Store{}, Config: &env.cfg}
		var (
			name  string
			email string
			mode  = string(themes.Load())
		)

		modeOptions := make([]huh.Option[string], 0, len(theme.Modes()))
		for _, m := range theme.Modes() {
			modeOptions = append(modeOptions, huh.NewOption(m.Label(), string(m)))
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Admin name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Admin email").
				Placeholder("admin@example.org").
				Value(&email),
			huh.NewSelect[string]().
				Title("Theme").
				Options(modeOptions...).
				Value(&mode),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}

		u, err := env.services.Users.Save(cmd.Context(), service.UserInput{
			Name:  name,
			Email: email,
			Role:  "admin",
		})
		if fields := service.FieldErrors(err); fields != nil {
			for _, field := range slices.Sorted(maps.Keys(fields)) {
				fmt.Printf("  %s %s\n", field, fields[field])
			}
			return errors.New("admin user not created")
		}
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		m, _ := theme.ParseMode(mode)
		if err := themes.Set(m); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}

		fmt.Printf("Created admin %s <%s>.\n", u.Name, u.Email)
		fmt.Printf("Theme set to %s. Run sage to open the console.\n", m.Label())
		return nil
	},
}
