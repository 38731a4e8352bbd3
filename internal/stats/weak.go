package stats

import (
	"sort"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
)

// SelectWeakPitches picks the lowest-accuracy pitches that were missed at least once.
func SelectWeakPitches(aggs []model.PitchAggregate, top int) map[pitch.Pitch]struct{} {
	weakSet := map[pitch.Pitch]struct{}{}
	candidates := make([]model.PitchAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := PitchAccuracy(candidates[i]), PitchAccuracy(candidates[j])
		if ai == aj {
			return PitchName(candidates[i]) < PitchName(candidates[j])
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		p, err := PitchOf(agg)
		if err != nil {
			continue
		}
		weakSet[p] = struct{}{}
	}
	return weakSet
}
