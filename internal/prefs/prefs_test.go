package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "prefs.json")}
	p, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Theme != "" {
		t.Fatalf("theme = %q, want empty", p.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s := Store{Path: path}
	if err := s.Save(Prefs{Theme: "dark"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	p, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Theme != "dark" {
		t.Fatalf("theme = %q, want dark", p.Theme)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := (Store{Path: path}).Load(); err == nil {
		t.Fatal("expected error for corrupt prefs")
	}
}
