// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Mode         string
	PitchesPath  string
	Rounds       int
	Manual       bool
	CorrectDelay time.Duration
	WrongDelay   time.Duration
	FocusWeak    bool
	WeakTop      int
	WeakFactor   float64
	ExportMIDI   string
	Seed         int64
}

// DrillStats captures a finished drill session.
type DrillStats struct {
	StartedAt time.Time
	EndedAt   time.Time
	Mode      string
	Rounds    int
	Score     int
}

// AttemptStats stores one answered round.
type AttemptStats struct {
	Round     int
	Letter    string
	Octave    int
	Clef      string
	Label     string
	Answer    string
	Correct   bool
	LatencyMs int64
}

// PitchAggregate aggregates attempts on one pitch across drills.
type PitchAggregate struct {
	Letter       string
	Octave       int
	Clef         string
	Label        string
	Correct      int
	Incorrect    int
	LatencySumMs int64
}

// DrillAggregate summarizes a drill for reporting.
type DrillAggregate struct {
	DrillID    int64
	EndedAt    time.Time
	Mode       string
	Rounds     int
	Score      int
	Answered   int
	DurationMs int64
	LatencyMs  int64
}
