// Package wrand implements the weighted-random-choice helpers used by
// store.Memory's Sample (scores are shifted to be strictly positive before a
// standard weighted pick, per spec §4.6), the score shift the Solver's
// shifted geometric mean reuses, and the seeded random source constructor.
package wrand

import (
	"math"
	"math/rand/v2"
)

// New returns a *rand.Rand seeded deterministically from seed, so a caller
// that pins a seed (the CLI's --seed flag) gets reproducible sampling and
// walk decisions across runs.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Shift returns abs(min(scores))+1, the offset spec §4.6 applies to a set
// of scores before they can be used as strictly-positive sampling weights.
// Scores of +Inf and -Inf are ignored when computing the minimum; Weight
// maps them to fixed large and negligible weights regardless of shift.
func Shift(scores []float64) float64 {
	min := math.Inf(1)
	for _, s := range scores {
		if math.IsInf(s, 0) {
			continue
		}
		if s < min {
			min = s
		}
	}
	if math.IsInf(min, 1) {
		// every score was infinite; any positive shift works.
		return 1
	}
	return math.Abs(min) + 1
}

// Weight converts a raw score into a strictly-positive sampling weight
// using shift, clamping +Inf to a very large finite value and -Inf to a
// negligible positive value so the pick never produces NaN.
func Weight(score, shift float64) float64 {
	switch {
	case math.IsInf(score, 1):
		return math.MaxFloat64 / 4
	case math.IsInf(score, -1):
		return 1e-300
	default:
		return score + shift
	}
}

// Choose picks an index from weights (already strictly positive) with
// probability proportional to its weight, drawing from rng. It returns -1
// if weights is empty or every weight is zero.
func Choose(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
