package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Practice.Mode != nil || cfg.Practice.Rounds != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
mode = "violin"
rounds = 20
manual = true
wrong-delay-ms = 1500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := cfg.Practice
	if p.Mode == nil || *p.Mode != "violin" {
		t.Fatalf("unexpected mode: %v", p.Mode)
	}
	if p.Rounds == nil || *p.Rounds != 20 {
		t.Fatalf("unexpected rounds: %v", p.Rounds)
	}
	if p.Manual == nil || !*p.Manual {
		t.Fatalf("expected manual = true")
	}
	if p.WrongDelayMs == nil || *p.WrongDelayMs != 1500 {
		t.Fatalf("unexpected wrong delay: %v", p.WrongDelayMs)
	}
	if p.CorrectDelayMs != nil {
		t.Fatalf("absent keys must stay nil")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestResolvePitchListPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := ResolvePitchListPath("cello"); got != filepath.Join("/cfg", "tuinote", "pitches", "cello.txt") {
		t.Fatalf("unexpected path %q", got)
	}
	if got := ResolvePitchListPath("./lists/cello.txt"); got != "./lists/cello.txt" {
		t.Fatalf("explicit paths must be kept, got %q", got)
	}
}
