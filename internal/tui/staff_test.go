package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuinote/internal/pitch"
	"github.com/verte-zerg/tuinote/internal/staff"
)

func TestDrawStaffMatchesGeometry(t *testing.T) {
	for _, profile := range pitch.Profiles() {
		top, bottom := staffExtent(profile, staff.Terminal)
		for _, p := range profile.Domain() {
			cfg, err := staff.ForProfile(profile, p.Clef, staff.Terminal)
			if err != nil {
				t.Fatalf("config: %v", err)
			}
			g := staff.Compute(p, cfg)
			grid := drawStaff(p, cfg, top, bottom)
			if len(grid.rows) != bottom-top+1 {
				t.Fatalf("%s %s: staff height changed to %d", profile.Name(), p, len(grid.rows))
			}

			noteRow := grid.rowFor(g.NoteY)
			if grid.rows[noteRow][noteCol].kind != cellNote {
				t.Fatalf("%s %s: note not on row %d", profile.Name(), p, noteRow)
			}

			ledgers := 0
			stems := 0
			for _, row := range grid.rows {
				if row[noteCol-ledgerHalf].kind == cellLedger {
					ledgers++
				}
				for _, cell := range row {
					if cell.kind == cellStem {
						stems++
					}
				}
			}
			if ledgers != len(g.Ledgers) {
				t.Fatalf("%s %s: expected %d ledgers, got %d", profile.Name(), p, len(g.Ledgers), ledgers)
			}
			if stems != int(staff.Terminal.StemLength) {
				t.Fatalf("%s %s: expected stem of %v rows, got %d", profile.Name(), p, staff.Terminal.StemLength, stems)
			}

			stemCol := noteCol + 1
			if g.Stem.Down {
				stemCol = noteCol - 1
			}
			end := grid.rowFor(g.StemEnd())
			if grid.rows[end][stemCol].kind != cellStem {
				t.Fatalf("%s %s: stem does not reach row %d", profile.Name(), p, end)
			}
			if grid.rows[grid.rowFor(g.ClefY)][clefCol].kind != cellClef {
				t.Fatalf("%s %s: clef glyph missing", profile.Name(), p)
			}
		}
	}
}

func TestDrawStaffLines(t *testing.T) {
	p := pitch.New(pitch.B, 4, pitch.Treble)
	cfg, err := staff.NewConfig(pitch.Treble, staff.Terminal, 5)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	grid := drawStaff(p, cfg, 0, 20)
	for _, y := range cfg.LineYs() {
		row := grid.rows[grid.rowFor(y)]
		if row[0].kind != cellLine || row[staffCols-1].kind != cellLine {
			t.Fatalf("expected staff line on y=%v", y)
		}
	}
}

func TestDrawStaffGrowsForOutOfRangePitch(t *testing.T) {
	cfg, err := staff.NewConfig(pitch.Treble, staff.Terminal, 5)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p := pitch.New(pitch.C, 7, pitch.Treble)
	grid := drawStaff(p, cfg, 5, 15)
	g := staff.Compute(p, cfg)
	if grid.top > int(g.NoteY) {
		t.Fatalf("expected grid to include y=%v, top is %d", g.NoteY, grid.top)
	}
	if grid.rows[grid.rowFor(g.NoteY)][noteCol].kind != cellNote {
		t.Fatalf("note not drawn")
	}
}

func TestAnswerSlots(t *testing.T) {
	out := answerSlots("G", 2)
	if !strings.Contains(out, "G") || !strings.Contains(out, "_") {
		t.Fatalf("unexpected slots %q", out)
	}
	if got := answerSlots("", 1); !strings.Contains(got, "_") {
		t.Fatalf("expected placeholder, got %q", got)
	}
}
