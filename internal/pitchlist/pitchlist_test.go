package pitchlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

func TestParse(t *testing.T) {
	input := `# viola-ish
C3 bass
B3 treble g2

d4   # plain
C3 bass
`
	pitches, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []pitch.Pitch{
		pitch.New(pitch.C, 3, pitch.Bass),
		pitch.New(pitch.B, 3, pitch.Treble).WithLabel("G2"),
		pitch.New(pitch.D, 4, pitch.Treble),
	}
	if len(pitches) != len(want) {
		t.Fatalf("expected %d pitches, got %d: %+v", len(want), len(pitches), pitches)
	}
	for i := range want {
		if pitches[i] != want[i] {
			t.Fatalf("pitch %d: got %+v, want %+v", i, pitches[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       "# nothing\n\n",
		"bad pitch":   "X4\n",
		"bad clef":    "C4 alto\n",
		"long label":  "C4 treble ABCDE\n",
		"extra field": "C4 treble C extra\n",
	}
	for name, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := Parse(strings.NewReader("C4\nQ4\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestParseNoteHeadLabels(t *testing.T) {
	pitches, err := Parse(strings.NewReader("C4 treble X\nC4 treble x\nC4 bass Y\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pitches) != 2 {
		t.Fatalf("expected repeated note head kept once, got %+v", pitches)
	}

	_, err = Parse(strings.NewReader("C4 treble X\nC4 treble Y\n"))
	if err == nil {
		t.Fatalf("expected error for conflicting labels")
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), `"X"`) {
		t.Fatalf("expected line number and first label in error, got %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cello.txt")
	if err := os.WriteFile(path, []byte("C2 bass\nG2 bass\nD3 bass D\nA3 bass A\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name() != "cello" {
		t.Fatalf("expected profile name cello, got %s", p.Name())
	}
	if len(p.Domain()) != 4 || p.MaxInput() != 1 {
		t.Fatalf("unexpected profile: %d pitches, max input %d", len(p.Domain()), p.MaxInput())
	}
	if _, err := LoadProfile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
