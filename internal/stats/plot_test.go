package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		{Name: "empty"},
	}, 12, 3, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "A  min=1 max=3") || !strings.Contains(out, "B  min=1 max=4") {
		t.Fatalf("expected series headers in output:\n%s", out)
	}
	if strings.Contains(out, "empty") {
		t.Fatalf("empty series must be skipped")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+2*(1+3) {
		t.Fatalf("expected %d lines, got %d", 1+2*4, len(lines))
	}
	if n := utf8.RuneCountInString(lines[2]); n != axisWidth+1+12 {
		t.Fatalf("expected plot row width %d, got %d", axisWidth+1+12, n)
	}
}

func TestBrailleRowsMarksEndpoints(t *testing.T) {
	rows := brailleRows([]float64{0, 10}, 2, 1)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	cells := []rune(rows[0])
	// Low value ends at the bottom-left dot, high value at the top-right dot.
	if cells[0]&0x40 == 0 {
		t.Fatalf("expected bottom-left dot set, got %U", cells[0])
	}
	if cells[1]&0x08 == 0 {
		t.Fatalf("expected top-right dot set, got %U", cells[1])
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-axisWidth-1 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
