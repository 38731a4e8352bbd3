package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
	"github.com/verte-zerg/tuinote/internal/pitchlist"
)

func validConfig() model.Config {
	return model.Config{
		Mode:         "generic",
		Rounds:       10,
		CorrectDelay: 500 * time.Millisecond,
		WrongDelay:   3 * time.Second,
		WeakTop:      4,
		WeakFactor:   2,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*model.Config)
	}{
		{"rounds", func(c *model.Config) { c.Rounds = 0 }},
		{"correct delay", func(c *model.Config) { c.CorrectDelay = -time.Millisecond }},
		{"wrong delay", func(c *model.Config) { c.WrongDelay = -time.Second }},
		{"weak top", func(c *model.Config) { c.WeakTop = -1 }},
		{"weak factor", func(c *model.Config) { c.WeakFactor = -0.5 }},
		{"mode", func(c *model.Config) { c.Mode = " " }},
	}
	for _, tt := range tests {
		cfg := validConfig()
		tt.mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestResolveProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = "fingering"
	p, err := resolveProfile(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Name() != pitch.ViolinName {
		t.Fatalf("expected violin profile, got %s", p.Name())
	}

	cfg.Mode = "lute"
	if _, err := resolveProfile(cfg); err == nil {
		t.Fatalf("expected unknown mode error")
	}

	path := filepath.Join(t.TempDir(), "mine.txt")
	if err := os.WriteFile(path, []byte("C4\nF3 bass\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg.PitchesPath = path
	p, err = resolveProfile(cfg)
	if err != nil {
		t.Fatalf("resolve list: %v", err)
	}
	if p.Name() != "mine" || len(p.Domain()) != 2 {
		t.Fatalf("unexpected custom profile %s %v", p.Name(), p.Domain())
	}

	cfg.PitchesPath = filepath.Join(t.TempDir(), "missing.txt")
	if _, err := resolveProfile(cfg); err == nil || !strings.Contains(err.Error(), "tuinote modes") {
		t.Fatalf("expected load hint, got %v", err)
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLayout(&buf, "C4", "treble", "generic", "compact"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"note y:   130", "ledgers:  130", "stem:     up, right side, to y=100", "clef y:   110", "staff:    80 90 100 110 120"} {
		if !strings.Contains(out, want) {
			t.Fatalf("layout missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := writeLayout(&buf, "A5", "treble", "generic", "compact"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(buf.String(), "stem:     down, left side") {
		t.Fatalf("expected stem down for A5:\n%s", buf.String())
	}

	if err := writeLayout(&buf, "H4", "treble", "generic", "compact"); err == nil {
		t.Fatalf("expected invalid pitch error")
	}
	if err := writeLayout(&buf, "C4", "alto", "generic", "compact"); err == nil {
		t.Fatalf("expected invalid clef error")
	}
	if err := writeLayout(&buf, "C4", "treble", "generic", "huge"); err == nil {
		t.Fatalf("expected invalid scale error")
	}
}

func TestWriteModes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scales.txt"), []byte("C4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := writeModes(&buf, dir); err != nil {
		t.Fatalf("modes: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"generic", "violin", "wide", "B3=G2", "--pitches scales"} {
		if !strings.Contains(out, want) {
			t.Fatalf("modes output missing %q:\n%s", want, out)
		}
	}
	buf.Reset()
	if err := writeModes(&buf, filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("missing dir should not fail: %v", err)
	}
}

func TestWritePitchListRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lists", "wide.txt")
	if err := writePitchList(path, pitch.Wide()); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := pitchlist.LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := pitch.Wide().Domain()
	got := loaded.Domain()
	if len(got) != len(want) {
		t.Fatalf("expected %d pitches, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pitch %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWritePitchListKeepsOneLabelPerNote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "violin.txt")
	violin := pitch.Violin()
	if err := writePitchList(path, violin); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := pitchlist.LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// D4, A4 and E5 are reachable from two strings.
	if got := len(loaded.Domain()); got != 17 {
		t.Fatalf("expected 17 note heads, got %d", got)
	}
	for _, p := range loaded.Domain() {
		if !violin.Contains(p) {
			t.Fatalf("loaded pitch %+v not in violin table", p)
		}
	}
}
