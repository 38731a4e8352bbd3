package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Pitch", "Accuracy", "Correct"}
	rows := [][]string{
		{"C4", "97%", "12"},
		{"B3 (G2)", "8%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Pitch   Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "C4           97%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "B3 (G2)       8%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
