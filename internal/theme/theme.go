package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jask/sage/internal/config"
	"github.com/jask/sage/internal/prefs"
)

// Mode is the user's theme choice.
type Mode string

const (
	System Mode = "system"
	Light  Mode = "light"
	Dark   Mode = "dark"
)

// Modes lists the choices in display order.
func Modes() []Mode { return []Mode{System, Light, Dark} }

// ParseMode accepts a stored mode string. Unknown values report false.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case System, Light, Dark:
		return m, true
	}
	return "", false
}

// Label is the human name shown in the settings screen.
func (m Mode) Label() string {
	switch m {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "System"
	}
}

// Resolve picks a palette. System follows the terminal background; a nil
// hasDark asks termenv.
func Resolve(m Mode, hasDark func() bool) Palette {
	switch m {
	case Light:
		return Latte
	case Dark:
		return Mocha
	}
	if hasDark == nil {
		hasDark = termenv.HasDarkBackground
	}
	if hasDark() {
		return Mocha
	}
	return Latte
}

// Store persists the theme to the prefs file and the config file.
type Store struct {
	Prefs  prefs.Store
	Config *config.Config
	// SaveConfig defaults to config.Save.
	SaveConfig func(config.Config) error
}

// Load returns the stored mode: prefs first, then config, then System.
func (s *Store) Load() Mode {
	if p, err := s.Prefs.Load(); err == nil {
		if m, ok := ParseMode(p.Theme); ok {
			return m
		}
	}
	if s.Config != nil {
		if m, ok := ParseMode(s.Config.UI.Theme); ok {
			return m
		}
	}
	return System
}

// Set writes m to both stores. Both writes are attempted.
func (s *Store) Set(m Mode) error {
	if _, ok := ParseMode(string(m)); !ok {
		return fmt.Errorf("unknown theme %q", m)
	}
	var errs []error

	p, err := s.Prefs.Load()
	if err != nil {
		p = prefs.Prefs{}
	}
	p.Theme = string(m)
	if err := s.Prefs.Save(p); err != nil {
		errs = append(errs, fmt.Errorf("save prefs: %w", err))
	}

	if s.Config != nil {
		s.Config.UI.Theme = string(m)
		save := s.SaveConfig
		if save == nil {
			save = config.Save
		}
		if err := save(*s.Config); err != nil {
			errs = append(errs, fmt.Errorf("save config: %w", err))
		}
	}
	return errors.Join(errs...)
}
