// Package pitch defines the diatonic pitch model and the range profiles drills draw from.
package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

// Letter is a natural note name encoded as its diatonic ordinal (C=0 .. B=6).
type Letter int

// Natural letters in ascending order.
const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

// LettersPerOctave is the number of diatonic steps in one octave.
const LettersPerOctave = 7

var letterNames = [LettersPerOctave]string{"C", "D", "E", "F", "G", "A", "B"}

// semitones from C for each natural letter.
var letterSemitones = [LettersPerOctave]int{0, 2, 4, 5, 7, 9, 11}

// Letters returns all natural letters from C to B.
func Letters() []Letter {
	return []Letter{C, D, E, F, G, A, B}
}

// Valid reports whether l is one of the seven natural letters.
func (l Letter) Valid() bool {
	return l >= C && l <= B
}

func (l Letter) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return letterNames[l]
}

// ParseLetter parses a single note letter, case-insensitively.
func ParseLetter(s string) (Letter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range letterNames {
		if s == name {
			return Letter(i), nil
		}
	}
	return 0, fmt.Errorf("unknown note letter %q", s)
}

// Clef selects which staff a pitch is drawn on.
type Clef int

// Supported clefs.
const (
	Treble Clef = iota
	Bass
)

func (c Clef) String() string {
	switch c {
	case Treble:
		return "treble"
	case Bass:
		return "bass"
	default:
		return fmt.Sprintf("Clef(%d)", int(c))
	}
}

// ParseClef parses "treble" or "bass".
func ParseClef(s string) (Clef, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "treble", "g":
		return Treble, nil
	case "bass", "f":
		return Bass, nil
	default:
		return 0, fmt.Errorf("unknown clef %q", s)
	}
}

// Pitch is an immutable note placed on a clef, with the answer a drill expects for it.
type Pitch struct {
	Letter Letter
	Octave int
	Clef   Clef
	Label  string
}

// New returns a pitch whose answer label is its letter name.
func New(l Letter, octave int, clef Clef) Pitch {
	return Pitch{Letter: l, Octave: octave, Clef: clef, Label: l.String()}
}

// Value returns the diatonic index of the pitch (octave*7 + ordinal).
func (p Pitch) Value() int {
	return p.Octave*LettersPerOctave + int(p.Letter)
}

// MIDI returns the MIDI note number, with C4 = 60.
func (p Pitch) MIDI() uint8 {
	n := (p.Octave+1)*12 + letterSemitones[p.Letter]
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

// String formats the pitch in scientific notation, e.g. "C4".
func (p Pitch) String() string {
	return p.Letter.String() + strconv.Itoa(p.Octave)
}

// WithLabel returns a copy of p with a different answer label.
func (p Pitch) WithLabel(label string) Pitch {
	p.Label = label
	return p
}

// ParsePitch parses scientific notation such as "C4" or "g3". The label is the letter.
func ParsePitch(s string, clef Clef) (Pitch, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Pitch{}, fmt.Errorf("invalid pitch %q", s)
	}
	l, err := ParseLetter(s[:1])
	if err != nil {
		return Pitch{}, fmt.Errorf("invalid pitch %q: %w", s, err)
	}
	octave, err := strconv.Atoi(s[1:])
	if err != nil {
		return Pitch{}, fmt.Errorf("invalid octave in %q", s)
	}
	if octave < 0 || octave > 9 {
		return Pitch{}, fmt.Errorf("octave out of range in %q", s)
	}
	return New(l, octave, clef), nil
}
