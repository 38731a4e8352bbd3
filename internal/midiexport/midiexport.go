// Package midiexport writes drilled pitches to a Standard MIDI File.
package midiexport

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

const (
	// DefaultBPM is used when Write receives a non-positive tempo.
	DefaultBPM = 80

	ticksPerQuarter = 960
	velocity        = 90
	channel         = 0
)

// ErrNoPitches is returned when there is nothing to write.
var ErrNoPitches = errors.New("no pitches to export")

// Write stores the pitches as consecutive quarter notes on one channel.
func Write(path string, pitches []pitch.Pitch, bpm int) error {
	if path == "" {
		return fmt.Errorf("no file path set")
	}
	if len(pitches) == 0 {
		return ErrNoPitches
	}
	if bpm <= 0 {
		bpm = DefaultBPM
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(float64(bpm)))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	var notes smf.Track
	notes.Add(0, smf.MetaTrackSequenceName("drill"))
	for _, p := range pitches {
		key := p.MIDI()
		notes.Add(0, midi.NoteOn(channel, key, velocity))
		notes.Add(ticksPerQuarter, midi.NoteOff(channel, key))
	}
	notes.Close(0)
	if err := sm.Add(notes); err != nil {
		return fmt.Errorf("error adding note track: %w", err)
	}

	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
