// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
)

const sparkChars = " .:-=+*#%@"

// DrillMetrics computes accuracy and mean response time for a drill.
func DrillMetrics(score, answered int, latencySumMs int64) (accuracy, meanLatencyMs float64) {
	if answered <= 0 {
		return 0, 0
	}
	accuracy = float64(score) / float64(answered)
	meanLatencyMs = float64(latencySumMs) / float64(answered)
	return accuracy, meanLatencyMs
}

// PitchAccuracy returns the share of correct answers for an aggregate. Unseen pitches count as perfect.
func PitchAccuracy(agg model.PitchAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// PitchOf rebuilds the pitch an aggregate was recorded for.
func PitchOf(agg model.PitchAggregate) (pitch.Pitch, error) {
	clef, err := pitch.ParseClef(agg.Clef)
	if err != nil {
		return pitch.Pitch{}, err
	}
	l, err := pitch.ParseLetter(agg.Letter)
	if err != nil {
		return pitch.Pitch{}, err
	}
	return pitch.New(l, agg.Octave, clef).WithLabel(agg.Label), nil
}

// PitchName formats an aggregate's pitch, adding the label when it is not the letter.
func PitchName(agg model.PitchAggregate) string {
	name := fmt.Sprintf("%s%d", agg.Letter, agg.Octave)
	if agg.Label != "" && agg.Label != agg.Letter {
		name += " (" + agg.Label + ")"
	}
	return name
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RunningAccuracy returns the cumulative share of correct answers after each attempt, in percent.
func RunningAccuracy(attempts []model.AttemptStats) []float64 {
	out := make([]float64, len(attempts))
	correct := 0
	for i, a := range attempts {
		if a.Correct {
			correct++
		}
		out[i] = float64(correct) / float64(i+1) * 100
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clamp(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// RenderSummary prints a summary of the drills in this run.
func RenderSummary(w io.Writer, drills []model.DrillAggregate) error {
	if len(drills) == 0 {
		_, err := fmt.Fprintln(w, "No drills finished yet.")
		return err
	}
	var totalAcc, totalLat float64
	best := 0
	for _, d := range drills {
		acc, lat := DrillMetrics(d.Score, d.Answered, d.LatencyMs)
		totalAcc += acc
		totalLat += lat
		if d.Score > best {
			best = d.Score
		}
	}
	count := float64(len(drills))
	lines := []string{
		"Summary",
		fmt.Sprintf("Drills: %d", len(drills)),
		fmt.Sprintf("Best score: %d", best),
		fmt.Sprintf("Avg accuracy: %.1f%%", totalAcc/count*100),
		fmt.Sprintf("Avg response: %.0f ms", totalLat/count),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves plots response time and running accuracy across the attempts of a drill.
func RenderCurves(w io.Writer, attempts []model.AttemptStats, window, width, height int, useColor bool) error {
	if len(attempts) == 0 {
		return nil
	}
	latency := make([]float64, len(attempts))
	for i, a := range attempts {
		latency[i] = float64(a.LatencyMs)
	}
	return PlotSeries(w, "Response", []Series{
		{Name: "Latency ms", Values: MovingAverage(latency, window)},
		{Name: "Accuracy %", Values: RunningAccuracy(attempts)},
	}, width, height, useColor)
}

// RenderPitchTable prints per-pitch aggregates, weakest first.
func RenderPitchTable(w io.Writer, aggs []model.PitchAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No pitch stats yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Pitch"); err != nil {
		return err
	}
	headers, rows := PitchTableRows(aggs)
	lines := formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PitchTableRows builds the per-pitch table sorted by lowest accuracy.
func PitchTableRows(aggs []model.PitchAggregate) ([]string, [][]string) {
	sorted := make([]model.PitchAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := PitchAccuracy(sorted[i]), PitchAccuracy(sorted[j])
		if ai == aj {
			return PitchName(sorted[i]) < PitchName(sorted[j])
		}
		return ai < aj
	})

	headers := []string{"Pitch", "Clef", "Accuracy", "Avg ms", "Correct", "Wrong"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		total := agg.Correct + agg.Incorrect
		lat := 0.0
		if total > 0 {
			lat = float64(agg.LatencySumMs) / float64(total)
		}
		rows = append(rows, []string{
			PitchName(agg),
			agg.Clef,
			fmt.Sprintf("%.0f%%", PitchAccuracy(agg)*100),
			fmt.Sprintf("%.0f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return headers, rows
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if len(values) == 0 {
		return 0, 0
	}
	return minVal, maxVal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
