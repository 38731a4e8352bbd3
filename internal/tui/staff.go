package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuinote/internal/pitch"
	"github.com/verte-zerg/tuinote/internal/staff"
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellLine
	cellLedger
	cellClef
	cellNote
	cellStem
)

type staffCell struct {
	r    rune
	kind cellKind
}

// staffGrid is a character raster of one staff. Row 0 holds staff Y = top.
type staffGrid struct {
	top  int
	rows [][]staffCell
}

const (
	staffCols  = 24
	clefCol    = 2
	noteCol    = 14
	ledgerHalf = 2
)

var (
	noteGlyph   = pickGlyph('●', 'o')
	lineGlyph   = pickGlyph('─', '-')
	stemGlyph   = pickGlyph('│', '|')
	trebleGlyph = pickGlyph('𝄞', '&')
	bassGlyph   = pickGlyph('𝄢', '?')
)

// pickGlyph returns the first candidate occupying a single terminal cell.
func pickGlyph(candidates ...rune) rune {
	for _, r := range candidates {
		if runewidth.RuneWidth(r) == 1 {
			return r
		}
	}
	return candidates[len(candidates)-1]
}

func clefGlyph(c pitch.Clef) rune {
	if c == pitch.Bass {
		return bassGlyph
	}
	return trebleGlyph
}

func rowY(y float64) int {
	return int(math.Round(y))
}

// staffExtent returns the Y range needed to draw any pitch of the profile,
// so the staff keeps its height from round to round.
func staffExtent(profile pitch.Profile, scale staff.Scale) (top, bottom int) {
	top = rowY(scale.StaffTop)
	bottom = rowY(scale.StaffTop + float64(staff.Lines-1)*scale.LineGap)
	for _, p := range profile.Domain() {
		cfg, err := staff.ForProfile(profile, p.Clef, scale)
		if err != nil {
			continue
		}
		top, bottom = extendRange(top, bottom, staff.Compute(p, cfg))
	}
	return top - 1, bottom + 1
}

func extendRange(top, bottom int, g staff.Geometry) (int, int) {
	ys := append([]float64{g.NoteY, g.StemEnd(), g.ClefY}, g.Ledgers...)
	for _, y := range ys {
		r := rowY(y)
		if r < top {
			top = r
		}
		if r > bottom {
			bottom = r
		}
	}
	return top, bottom
}

// drawStaff rasterizes p on cfg's staff between rows top and bottom.
// The range grows if the pitch does not fit.
func drawStaff(p pitch.Pitch, cfg staff.Config, top, bottom int) staffGrid {
	g := staff.Compute(p, cfg)
	top, bottom = extendRange(top, bottom, g)

	grid := staffGrid{top: top, rows: make([][]staffCell, bottom-top+1)}
	for i := range grid.rows {
		row := make([]staffCell, staffCols)
		for j := range row {
			row[j] = staffCell{r: ' '}
		}
		grid.rows[i] = row
	}

	for _, y := range cfg.LineYs() {
		grid.hline(y, 0, staffCols-1, cellLine)
	}
	for _, y := range g.Ledgers {
		grid.hline(y, noteCol-ledgerHalf, noteCol+ledgerHalf, cellLedger)
	}
	grid.set(rowY(g.ClefY), clefCol, clefGlyph(cfg.Clef), cellClef)

	stemCol := noteCol + 1
	if g.Stem.Side == staff.StemLeft {
		stemCol = noteCol - 1
	}
	noteRow, endRow := rowY(g.NoteY), rowY(g.StemEnd())
	dir := -1
	if g.Stem.Down {
		dir = 1
	}
	for r := noteRow + dir; r != endRow+dir; r += dir {
		grid.set(r, stemCol, stemGlyph, cellStem)
	}
	grid.set(noteRow, noteCol, noteGlyph, cellNote)
	return grid
}

func (g staffGrid) rowFor(y float64) int {
	return rowY(y) - g.top
}

func (g staffGrid) set(y, col int, r rune, kind cellKind) {
	i := y - g.top
	if i < 0 || i >= len(g.rows) || col < 0 || col >= staffCols {
		return
	}
	g.rows[i][col] = staffCell{r: r, kind: kind}
}

func (g staffGrid) hline(y float64, from, to int, kind cellKind) {
	for col := from; col <= to; col++ {
		g.set(rowY(y), col, lineGlyph, kind)
	}
}

// render styles each row. Note and stem share noteStyle.
func (g staffGrid) render(noteStyle lipgloss.Style) []string {
	lines := make([]string, len(g.rows))
	for i, row := range g.rows {
		var b strings.Builder
		for _, cell := range row {
			switch cell.kind {
			case cellLine, cellLedger:
				b.WriteString(staffLineStyle.Render(string(cell.r)))
			case cellClef:
				b.WriteString(clefStyle.Render(string(cell.r)))
			case cellNote, cellStem:
				b.WriteString(noteStyle.Render(string(cell.r)))
			default:
				b.WriteRune(cell.r)
			}
		}
		lines[i] = b.String()
	}
	return lines
}

// answerSlots shows the input buffer padded with placeholders up to limit.
func answerSlots(input string, limit int) string {
	runes := []rune(input)
	var b strings.Builder
	for i := 0; i < limit; i++ {
		switch {
		case i < len(runes):
			b.WriteString(inputStyle.Render(string(runes[i])))
		case i == len(runes):
			b.WriteString(cursorStyle.Render("_"))
		default:
			b.WriteString(pendingStyle.Render("_"))
		}
	}
	return b.String()
}
