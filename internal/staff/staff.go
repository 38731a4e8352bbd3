// Package staff maps pitches onto five-line staff coordinates.
//
// All functions are pure: the same pitch and Config always yield the same
// Geometry. Y grows downward, so higher pitches get smaller Y values.
package staff

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

// StemSide is the side of the note head the stem is attached to.
type StemSide int

// Stem sides.
const (
	StemRight StemSide = iota
	StemLeft
)

func (s StemSide) String() string {
	if s == StemLeft {
		return "left"
	}
	return "right"
}

// Scale holds the drawing dimensions shared by both clefs.
type Scale struct {
	Name       string
	LineGap    float64
	StaffTop   float64
	Width      float64
	Height     float64
	StemLength float64
}

// Built-in scales. Terminal units are character rows, so one diatonic step is one row.
var (
	Compact  = Scale{Name: "compact", LineGap: 10, StaffTop: 80, Width: 200, Height: 200, StemLength: 30}
	Large    = Scale{Name: "large", LineGap: 20, StaffTop: 160, Width: 400, Height: 400, StemLength: 60}
	Terminal = Scale{Name: "terminal", LineGap: 2, StaffTop: 6, Width: 40, Height: 20, StemLength: 3}
)

// LookupScale returns a built-in scale by name.
func LookupScale(name string) (Scale, error) {
	for _, s := range []Scale{Compact, Large, Terminal} {
		if s.Name == name {
			return s, nil
		}
	}
	return Scale{}, fmt.Errorf("unknown scale %q", name)
}

// Lines is the number of lines in a staff.
const Lines = 5

// ErrInvalidConfig is returned for layouts that cannot place notes.
var ErrInvalidConfig = errors.New("invalid staff layout")

// Config is the layout of a single clef's staff.
type Config struct {
	Scale
	Clef pitch.Clef
	// Bottom is the pitch sitting on the bottom staff line.
	Bottom pitch.Pitch
	// StemDownOctave is the first octave whose stems point down.
	StemDownOctave int
}

// BottomLine returns the pitch on the bottom line of the clef's staff.
func BottomLine(c pitch.Clef) pitch.Pitch {
	if c == pitch.Bass {
		return pitch.New(pitch.G, 2, pitch.Bass)
	}
	return pitch.New(pitch.E, 4, pitch.Treble)
}

// NewConfig builds the layout for clef c at the given scale.
func NewConfig(c pitch.Clef, scale Scale, stemDownOctave int) (Config, error) {
	if scale.LineGap <= 0 {
		return Config{}, fmt.Errorf("%w: line gap must be > 0", ErrInvalidConfig)
	}
	if scale.StemLength < 0 {
		return Config{}, fmt.Errorf("%w: stem length must be >= 0", ErrInvalidConfig)
	}
	return Config{
		Scale:          scale,
		Clef:           c,
		Bottom:         BottomLine(c),
		StemDownOctave: stemDownOctave,
	}, nil
}

// ForProfile builds the layout for clef c using the stem rule of profile p.
func ForProfile(p pitch.Profile, c pitch.Clef, scale Scale) (Config, error) {
	return NewConfig(c, scale, p.StemDownOctave(c))
}

// StaffBottom is the Y of the bottom staff line.
func (c Config) StaffBottom() float64 {
	return c.StaffTop + float64(Lines-1)*c.LineGap
}

// LineYs returns the Y of each staff line, top to bottom.
func (c Config) LineYs() []float64 {
	ys := make([]float64, Lines)
	for i := range ys {
		ys[i] = c.StaffTop + float64(i)*c.LineGap
	}
	return ys
}

// Stem describes the note stem.
type Stem struct {
	Side   StemSide
	Down   bool
	Length float64
}

// Geometry is the computed placement of a single note.
type Geometry struct {
	StepDiff int
	NoteY    float64
	// Ledgers are ordered from the staff outward.
	Ledgers []float64
	Stem    Stem
	ClefY   float64
}

// topStep is the step offset of the top line relative to the bottom line.
const topStep = (Lines - 1) * 2

// Compute places p on the staff described by cfg.
func Compute(p pitch.Pitch, cfg Config) Geometry {
	stepDiff := p.Value() - cfg.Bottom.Value()
	half := cfg.LineGap / 2
	bottom := cfg.StaffBottom()

	g := Geometry{
		StepDiff: stepDiff,
		NoteY:    bottom - float64(stepDiff)*half,
		ClefY:    clefY(cfg),
	}

	switch {
	case stepDiff <= -2:
		n := -stepDiff / 2
		g.Ledgers = make([]float64, 0, n)
		for k := 1; k <= n; k++ {
			g.Ledgers = append(g.Ledgers, bottom+float64(k)*cfg.LineGap)
		}
	case stepDiff >= topStep+2:
		n := (stepDiff - topStep) / 2
		g.Ledgers = make([]float64, 0, n)
		for k := 1; k <= n; k++ {
			g.Ledgers = append(g.Ledgers, cfg.StaffTop-float64(k)*cfg.LineGap)
		}
	}

	g.Stem = Stem{Side: StemRight, Length: cfg.StemLength}
	if p.Octave >= cfg.StemDownOctave {
		g.Stem = Stem{Side: StemLeft, Down: true, Length: cfg.StemLength}
	}
	return g
}

// StemEnd returns the Y where the stem ends.
func (g Geometry) StemEnd() float64 {
	if g.Stem.Down {
		return g.NoteY + g.Stem.Length
	}
	return g.NoteY - g.Stem.Length
}

func clefY(cfg Config) float64 {
	if cfg.Clef == pitch.Bass {
		return cfg.StaffTop + cfg.LineGap
	}
	return cfg.StaffBottom() - cfg.LineGap
}
