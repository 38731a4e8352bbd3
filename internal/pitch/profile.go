package pitch

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Profile describes which pitches a drill may ask for and how answers are shaped.
type Profile interface {
	// Name is the identifier used on the command line and in stats.
	Name() string
	// Sample draws one pitch from the profile's domain.
	Sample(rnd *rand.Rand) Pitch
	// Domain enumerates every pitch Sample can return.
	Domain() []Pitch
	// Contains reports whether p belongs to the domain.
	Contains(p Pitch) bool
	// MaxInput is the longest answer the user may type.
	MaxInput() int
	// StemDownOctave is the first octave on clef c whose stems point down.
	StemDownOctave(c Clef) int
	// Weight is the probability that Sample returns p. Weights over the
	// domain sum to 1.
	Weight(p Pitch) float64
}

// Profile names accepted by Lookup.
const (
	GenericName = "generic"
	ViolinName  = "violin"
	WideName    = "wide"
)

// Lookup returns a built-in profile by name.
func Lookup(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case GenericName:
		return Generic(), nil
	case ViolinName, "fingering":
		return Violin(), nil
	case WideName:
		return Wide(), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the built-in profile names.
func Names() []string {
	return []string{GenericName, ViolinName, WideName}
}

// Profiles returns every built-in profile.
func Profiles() []Profile {
	return []Profile{Generic(), Violin(), Wide()}
}

type genericProfile struct {
	treble []Pitch
	bass   []Pitch
}

// Generic returns the two-clef letter drill: treble C4..A5 and bass E2..C4.
func Generic() Profile {
	return &genericProfile{
		treble: span(Treble, New(C, 4, Treble), New(A, 5, Treble)),
		bass:   span(Bass, New(E, 2, Bass), New(C, 4, Bass)),
	}
}

func (g *genericProfile) Name() string { return GenericName }

func (g *genericProfile) Sample(rnd *rand.Rand) Pitch {
	pool := g.treble
	if rnd.Intn(2) == 1 {
		pool = g.bass
	}
	return pool[rnd.Intn(len(pool))]
}

func (g *genericProfile) Domain() []Pitch {
	out := make([]Pitch, 0, len(g.treble)+len(g.bass))
	out = append(out, g.treble...)
	return append(out, g.bass...)
}

func (g *genericProfile) Contains(p Pitch) bool {
	return containsPitch(g.treble, p) || containsPitch(g.bass, p)
}

func (g *genericProfile) MaxInput() int { return 1 }

// Weight splits the mass evenly between the clefs, then within each pool.
func (g *genericProfile) Weight(p Pitch) float64 {
	pool := g.treble
	if p.Clef == Bass {
		pool = g.bass
	}
	if !containsPitch(pool, p) {
		return 0
	}
	return 0.5 / float64(len(pool))
}

func (g *genericProfile) StemDownOctave(c Clef) int {
	if c == Bass {
		return 3
	}
	return 5
}

// wideOctaves maps each octave of the wide-range drill to its allowed letters.
var wideOctaves = []struct {
	octave  int
	letters []Letter
}{
	{3, []Letter{G, A, B}},
	{4, Letters()},
	{5, Letters()},
	{6, []Letter{C}},
}

type wideProfile struct{}

// Wide returns the single-instrument treble drill spanning G3..C6.
func Wide() Profile {
	return wideProfile{}
}

func (wideProfile) Name() string { return WideName }

// Sample picks the octave first, then a letter within it, so the edge octaves
// are as likely as the full ones.
func (wideProfile) Sample(rnd *rand.Rand) Pitch {
	oct := wideOctaves[rnd.Intn(len(wideOctaves))]
	return New(oct.letters[rnd.Intn(len(oct.letters))], oct.octave, Treble)
}

func (wideProfile) Domain() []Pitch {
	var out []Pitch
	for _, oct := range wideOctaves {
		for _, l := range oct.letters {
			out = append(out, New(l, oct.octave, Treble))
		}
	}
	return out
}

func (w wideProfile) Contains(p Pitch) bool {
	return containsPitch(w.Domain(), p)
}

func (wideProfile) MaxInput() int { return 1 }

func (wideProfile) Weight(p Pitch) float64 {
	for _, oct := range wideOctaves {
		if oct.octave != p.Octave {
			continue
		}
		for _, l := range oct.letters {
			if New(l, oct.octave, Treble) == p {
				return 1 / float64(len(wideOctaves)) / float64(len(oct.letters))
			}
		}
	}
	return 0
}

func (wideProfile) StemDownOctave(Clef) int { return 5 }

// Table is a profile over an explicit, uniformly sampled list of pitches.
type Table struct {
	name     string
	pitches  []Pitch
	maxInput int
}

// NewTable builds a table profile. The longest label sets the input limit.
func NewTable(name string, pitches []Pitch) *Table {
	maxInput := 0
	for _, p := range pitches {
		if n := len([]rune(p.Label)); n > maxInput {
			maxInput = n
		}
	}
	return &Table{name: name, pitches: append([]Pitch(nil), pitches...), maxInput: maxInput}
}

// Name implements Profile.
func (t *Table) Name() string { return t.name }

// Sample implements Profile.
func (t *Table) Sample(rnd *rand.Rand) Pitch {
	return t.pitches[rnd.Intn(len(t.pitches))]
}

// Domain implements Profile.
func (t *Table) Domain() []Pitch {
	return append([]Pitch(nil), t.pitches...)
}

// Contains implements Profile.
func (t *Table) Contains(p Pitch) bool {
	return containsPitch(t.pitches, p)
}

// MaxInput implements Profile.
func (t *Table) MaxInput() int { return t.maxInput }

// Weight implements Profile.
func (t *Table) Weight(p Pitch) float64 {
	n := 0
	for _, q := range t.pitches {
		if q == p {
			n++
		}
	}
	return float64(n) / float64(len(t.pitches))
}

// StemDownOctave implements Profile.
func (t *Table) StemDownOctave(c Clef) int {
	if c == Bass {
		return 3
	}
	return 5
}

// violinStrings lists the open strings; each carries four stopped positions above it.
var violinStrings = []Pitch{
	New(G, 3, Treble),
	New(D, 4, Treble),
	New(A, 4, Treble),
	New(E, 5, Treble),
}

const violinPositions = 4

// Violin returns the open-string fingering drill. Open strings are answered by
// their letter, stopped notes by string and finger, e.g. "G2" for B3.
func Violin() Profile {
	var pitches []Pitch
	for _, open := range violinStrings {
		name := open.Letter.String()
		pitches = append(pitches, open.WithLabel(name))
		for finger := 1; finger <= violinPositions; finger++ {
			p := step(open, finger)
			pitches = append(pitches, p.WithLabel(fmt.Sprintf("%s%d", name, finger)))
		}
	}
	return NewTable(ViolinName, pitches)
}

// Describe renders the domain of a profile for listings, sorted low to high per clef.
func Describe(p Profile) string {
	domain := p.Domain()
	sort.SliceStable(domain, func(i, j int) bool {
		if domain[i].Clef != domain[j].Clef {
			return domain[i].Clef < domain[j].Clef
		}
		return domain[i].Value() < domain[j].Value()
	})
	parts := make([]string, 0, len(domain))
	for _, d := range domain {
		if d.Label == d.Letter.String() {
			parts = append(parts, d.String())
			continue
		}
		parts = append(parts, d.String()+"="+d.Label)
	}
	return strings.Join(parts, " ")
}

// step moves p up by n diatonic steps, keeping its clef and using the letter as label.
func step(p Pitch, n int) Pitch {
	v := p.Value() + n
	return New(Letter(v%LettersPerOctave), v/LettersPerOctave, p.Clef)
}

// span lists every natural pitch from lo to hi inclusive.
func span(clef Clef, lo, hi Pitch) []Pitch {
	out := make([]Pitch, 0, hi.Value()-lo.Value()+1)
	for v := lo.Value(); v <= hi.Value(); v++ {
		out = append(out, New(Letter(v%LettersPerOctave), v/LettersPerOctave, clef))
	}
	return out
}

func containsPitch(pitches []Pitch, p Pitch) bool {
	for _, q := range pitches {
		if q == p {
			return true
		}
	}
	return false
}
