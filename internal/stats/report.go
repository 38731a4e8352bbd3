package stats

import (
	"context"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/store"
)

// Report contains precomputed data for the results screen.
type Report struct {
	Drills      []model.DrillAggregate
	Last        model.DrillAggregate
	LastAttempt []model.AttemptStats
	PitchAggs   []model.PitchAggregate
}

// BuildReport loads the drills of a mode recorded in this run. The latest drill
// becomes Last; PitchAggs covers every drill.
func BuildReport(ctx context.Context, st *store.Store, mode string) (Report, error) {
	drills, err := st.ListDrills(ctx, mode)
	if err != nil {
		return Report{}, err
	}
	if len(drills) == 0 {
		return Report{}, nil
	}
	last := drills[len(drills)-1]
	attempts, err := st.ListAttempts(ctx, last.DrillID)
	if err != nil {
		return Report{}, err
	}
	aggs, err := st.ListPitchAggregatesForDrills(ctx, drillIDs(drills))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Drills:      drills,
		Last:        last,
		LastAttempt: attempts,
		PitchAggs:   aggs,
	}, nil
}

func drillIDs(drills []model.DrillAggregate) []int64 {
	ids := make([]int64, len(drills))
	for i, d := range drills {
		ids[i] = d.DrillID
	}
	return ids
}
