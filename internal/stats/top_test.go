package stats

import (
	"testing"

	"github.com/verte-zerg/tuinote/internal/model"
)

func TestTopPitchesByFrequency(t *testing.T) {
	aggs := []model.PitchAggregate{
		{Letter: "D", Octave: 4, Label: "D", Correct: 3, Incorrect: 1},
		{Letter: "C", Octave: 4, Label: "C", Correct: 2, Incorrect: 2},
		{Letter: "B", Octave: 3, Label: "G2", Correct: 1},
	}
	top := TopPitchesByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 pitches, got %d", len(top))
	}
	if top[0] != "C4" || top[1] != "D4" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopPitchesByFrequency(aggs, 10); len(got) != 3 || got[2] != "B3 (G2)" {
		t.Fatalf("unexpected full list: %v", got)
	}
}
