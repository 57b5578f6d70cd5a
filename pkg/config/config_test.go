package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "santa.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
outpath   = "./letters"
asciiart  = "./art.txt"
overwrite = true
max_tries = 50
seed      = 1234

[candidates]
Alice   = ["Bob"]
Bob     = []
Charlie = []
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OutPath != "./letters" {
		t.Errorf("OutPath = %q, want ./letters", cfg.OutPath)
	}
	if cfg.ArtPath != "./art.txt" {
		t.Errorf("ArtPath = %q, want ./art.txt", cfg.ArtPath)
	}
	if !cfg.Overwrite {
		t.Error("Overwrite = false, want true")
	}
	if cfg.MaxTries != 50 {
		t.Errorf("MaxTries = %d, want 50", cfg.MaxTries)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Seed)
	}
	if got := len(cfg.Candidates); got != 3 {
		t.Errorf("candidate count = %d, want 3", got)
	}
	if !slices.Equal(cfg.Candidates["Alice"], []string{"Bob"}) {
		t.Errorf("Candidates[Alice] = %v, want [Bob]", cfg.Candidates["Alice"])
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[candidates]
Alice = []
Bob   = []
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OutPath != "." {
		t.Errorf("OutPath = %q, want .", cfg.OutPath)
	}
	if cfg.MaxTries != 0 {
		t.Errorf("MaxTries = %d, want 0 (engine default)", cfg.MaxTries)
	}
	if cfg.Overwrite {
		t.Error("Overwrite = true, want false")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("Load succeeded on missing file")
		}
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		path := writeConfig(t, `outpath = [unclosed`)
		if _, err := Load(path); err == nil {
			t.Error("Load succeeded on invalid TOML")
		}
	})

	t.Run("NoCandidates", func(t *testing.T) {
		path := writeConfig(t, `outpath = "."`)
		_, err := Load(path)
		if !errors.Is(err, ErrNoCandidates) {
			t.Errorf("Load error = %v, want ErrNoCandidates", err)
		}
	})
}

func TestUnknownNames(t *testing.T) {
	cfg := &Config{Candidates: map[string][]string{
		"Alice": {"Bob", "Mallory"},
		"Bob":   {"Trent", "Mallory"},
	}}

	got := cfg.UnknownNames()
	want := []string{"Mallory", "Trent"}
	if !slices.Equal(got, want) {
		t.Errorf("UnknownNames() = %v, want %v", got, want)
	}
}
