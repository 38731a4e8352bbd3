package stats

import (
	"sort"

	"github.com/verte-zerg/tuinote/internal/model"
)

// TopPitchesByFrequency returns the names of the N most drilled pitches.
func TopPitchesByFrequency(aggs []model.PitchAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	type item struct {
		name  string
		total int
	}
	items := make([]item, 0, len(aggs))
	for _, agg := range aggs {
		items = append(items, item{name: PitchName(agg), total: agg.Correct + agg.Incorrect})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].name < items[j].name
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, it := range items[:n] {
		out = append(out, it.name)
	}
	return out
}
