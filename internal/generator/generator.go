// Package generator draws drill pitches from range profiles.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tuinote/internal/pitch"
)

// Generator produces randomized pitches.
type Generator struct {
	rnd *rand.Rand

	weak   map[pitch.Pitch]struct{}
	factor float64
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// SetWeak biases future draws toward the given pitches. An empty set restores
// the profile's own sampling rule.
func (g *Generator) SetWeak(weak map[pitch.Pitch]struct{}, factor float64) {
	g.weak = weak
	g.factor = factor
}

// Next draws the next pitch for a session.
func (g *Generator) Next(p pitch.Profile) pitch.Pitch {
	if len(g.weak) > 0 && g.factor > 0 {
		return g.GenerateWeighted(p, g.weak, g.factor)
	}
	return g.Generate(p)
}

// Generate samples with the profile's own rule.
func (g *Generator) Generate(p pitch.Profile) pitch.Pitch {
	return p.Sample(g.rnd)
}

// GenerateWeighted keeps the profile's own distribution and multiplies the
// weight of pitches in weakSet by 1+factor.
func (g *Generator) GenerateWeighted(p pitch.Profile, weakSet map[pitch.Pitch]struct{}, factor float64) pitch.Pitch {
	domain := p.Domain()
	weights := make([]float64, 0, len(domain))
	picks := make([]pitch.Pitch, 0, len(domain))
	seen := make(map[pitch.Pitch]struct{}, len(domain))
	total := 0.0
	for _, d := range domain {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		w := p.Weight(d)
		if w <= 0 {
			continue
		}
		if _, ok := weakSet[d]; ok {
			w *= 1 + factor
		}
		picks = append(picks, d)
		weights = append(weights, w)
		total += w
	}
	if len(picks) == 0 {
		return p.Sample(g.rnd)
	}

	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return picks[i]
		}
	}
	return picks[len(picks)-1]
}
