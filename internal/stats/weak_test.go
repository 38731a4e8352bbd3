package stats

import (
	"testing"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
)

func TestSelectWeakPitches(t *testing.T) {
	aggs := []model.PitchAggregate{
		{Letter: "C", Octave: 4, Clef: "treble", Label: "C", Correct: 1, Incorrect: 3},
		{Letter: "E", Octave: 2, Clef: "bass", Label: "E", Correct: 1, Incorrect: 1},
		{Letter: "G", Octave: 4, Clef: "treble", Label: "G", Correct: 5},
		{Letter: "B", Octave: 3, Clef: "treble", Label: "G2", Correct: 2, Incorrect: 1},
	}
	weak := SelectWeakPitches(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak pitches, got %v", weak)
	}
	for _, want := range []pitch.Pitch{
		pitch.New(pitch.C, 4, pitch.Treble),
		pitch.New(pitch.E, 2, pitch.Bass),
	} {
		if _, ok := weak[want]; !ok {
			t.Fatalf("expected %s/%s in weak set %v", want, want.Clef, weak)
		}
	}

	all := SelectWeakPitches(aggs, 0)
	if len(all) != 3 {
		t.Fatalf("expected every missed pitch, got %v", all)
	}
	if _, ok := all[pitch.New(pitch.B, 3, pitch.Treble).WithLabel("G2")]; !ok {
		t.Fatalf("expected labelled pitch to keep its label")
	}
	if len(SelectWeakPitches(nil, 3)) != 0 {
		t.Fatalf("expected empty set for no aggregates")
	}
}
