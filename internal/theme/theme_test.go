package theme

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jask/sage/internal/config"
	"github.com/jask/sage/internal/prefs"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestPaletteColorsAreValidHex(t *testing.T) {
	for _, p := range []Palette{Mocha, Latte} {
		colors := p.Colors()
		if len(colors) != 20 {
			t.Errorf("%s: expected 20 colors, got %d", p.Name, len(colors))
		}
		for _, c := range colors {
			if !hexColorRegex.MatchString(string(c)) {
				t.Errorf("%s: invalid hex color %q", p.Name, c)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }
	tests := []struct {
		mode    Mode
		hasDark func() bool
		want    string
	}{
		{Light, dark, "latte"},
		{Dark, light, "mocha"},
		{System, dark, "mocha"},
		{System, light, "latte"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.mode, tt.hasDark).Name; got != tt.want {
			t.Errorf("Resolve(%s) = %s, want %s", tt.mode, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode(" Dark "); !ok || m != Dark {
		t.Fatalf("ParseMode(Dark) = %q, %v", m, ok)
	}
	if _, ok := ParseMode("sepia"); ok {
		t.Fatal("sepia should not parse")
	}
}

func newStore(t *testing.T, cfgTheme string) (*Store, *[]config.Config) {
	t.Helper()
	var saved []config.Config
	cfg := &config.Config{UI: config.UIConfig{Theme: cfgTheme}}
	return &Store{
		Prefs:  prefs.Store{Path: filepath.Join(t.TempDir(), "prefs.json")},
		Config: cfg,
		SaveConfig: func(c config.Config) error {
			saved = append(saved, c)
			return nil
		},
	}, &saved
}

func TestStoreLoadPrecedence(t *testing.T) {
	s, _ := newStore(t, "light")
	if got := s.Load(); got != Light {
		t.Fatalf("config fallback = %s, want light", got)
	}

	if err := s.Prefs.Save(prefs.Prefs{Theme: "dark"}); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); got != Dark {
		t.Fatalf("prefs first = %s, want dark", got)
	}

	if err := s.Prefs.Save(prefs.Prefs{Theme: "neon"}); err != nil {
		t.Fatal(err)
	}
	s.Config.UI.Theme = "also-bad"
	if got := s.Load(); got != System {
		t.Fatalf("invalid values = %s, want system", got)
	}
}

func TestStoreSetWritesBoth(t *testing.T) {
	s, saved := newStore(t, "system")
	if err := s.Set(Dark); err != nil {
		t.Fatalf("set: %v", err)
	}
	p, err := s.Prefs.Load()
	if err != nil || p.Theme != "dark" {
		t.Fatalf("prefs = %+v, %v", p, err)
	}
	if len(*saved) != 1 || (*saved)[0].UI.Theme != "dark" {
		t.Fatalf("config saves = %+v", *saved)
	}
	if err := s.Set("sepia"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestStoreSetAttemptsBothOnFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	configErr := errors.New("disk full")
	calls := 0
	s := &Store{
		Prefs:  prefs.Store{Path: filepath.Join(blocker, "prefs.json")},
		Config: &config.Config{},
		SaveConfig: func(config.Config) error {
			calls++
			return configErr
		},
	}
	err := s.Set(Light)
	if !errors.Is(err, configErr) {
		t.Fatalf("err = %v, want config error joined", err)
	}
	if calls != 1 {
		t.Fatalf("config save calls = %d, want 1", calls)
	}
	if s.Config.UI.Theme != "light" {
		t.Fatalf("config theme = %q", s.Config.UI.Theme)
	}
}
