package usecase

import "math/rand"

// RNG wraps a seeded source shared by every engine service so that a league
// replays identically from the same seed. Not safe for concurrent use; the
// league facade serializes access.
type RNG struct {
	seed int64
	r    *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the stream from the given seed.
func (g *RNG) Reseed(seed int64) {
	g.seed = seed
	g.r = rand.New(rand.NewSource(seed))
}

func (g *RNG) Seed() int64 { return g.seed }

func (g *RNG) Float64() float64 { return g.r.Float64() }

func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// IntBetween returns a uniform int in [lo, hi] inclusive.
func (g *RNG) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.Intn(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func (g *RNG) FloatBetween(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

func (g *RNG) Shuffle(n int, swap func(i, j int)) { g.r.Shuffle(n, swap) }

// Chance reports true with probability p.
func (g *RNG) Chance(p float64) bool {
	return g.r.Float64() < p
}

// WeightedIndex picks an index proportionally to the given non-negative
// weights. A zero-sum weight slice falls back to uniform choice.
func (g *RNG) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return g.r.Intn(len(weights))
	}

	target := g.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
