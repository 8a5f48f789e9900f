// SPDX-License-Identifier: MIT
// Package cart: the mcmc.Parameter capability. The sampler dispatches
// SetStartingValue/RandomPosterior uniformly across parameter kinds; for a
// regression tree a posterior draw is one Metropolis topology update.

package cart

import "math"

// Move identifies one of the four local topology moves.
type Move int

const (
	MoveGrow Move = iota
	MovePrune
	MoveChange
	MoveSwap
)

// String returns the lowercase move name.
func (m Move) String() string {
	switch m {
	case MoveGrow:
		return "grow"
	case MovePrune:
		return "prune"
	case MoveChange:
		return "change"
	case MoveSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Name returns the parameter name reported to the sampler.
func (rt *RegressionTree) Name() string { return rt.name }

// Tracked reports whether the sampler records this parameter's trace.
func (rt *RegressionTree) Tracked() bool { return rt.track }

// Value reports the trace row for the current topology:
// [log density, #terminal nodes, #internal nodes].
func (rt *RegressionTree) Value() []float64 {
	return []float64{
		rt.LogDensity(),
		float64(len(rt.t.TerminalNodes())),
		float64(len(rt.t.InternalNodes())),
	}
}

// SetValue is a no-op: a regression tree's value is derived from its
// topology, which only the moves may change.
func (rt *RegressionTree) SetValue([]float64) {}

// SetStartingValue resets the topology and draws a fresh starting tree
// from the tree-shape prior.
func (rt *RegressionTree) SetStartingValue() {
	rt.t.Reset()
	rt.t.BuildUniform(rt.t.Root(), rt.alpha, rt.beta)
}

// RandomPosterior performs one Metropolis-within-Gibbs topology update:
// snapshot, one move drawn uniformly from {grow, prune, change, swap},
// accept with probability min(1, exp(Δ log density)), restore the
// snapshot on rejection. The moves are symmetric, so no proposal-density
// correction enters the ratio. Returns the post-update Value().
func (rt *RegressionTree) RandomPosterior() []float64 {
	snap := rt.t.Snapshot()
	before := rt.LogDensity()

	var moved bool
	switch Move(rt.rng.IntN(4)) {
	case MoveGrow:
		moved = rt.t.Grow()
	case MovePrune:
		moved = rt.t.Prune()
	case MoveChange:
		_, moved = rt.t.Change()
	default:
		moved = rt.t.Swap()
	}

	// A no-op move leaves the chain at its current state.
	if moved {
		logRatio := rt.LogDensity() - before
		if logRatio < 0 && math.Log(rt.rng.Float64()) >= logRatio {
			rt.t.Restore(snap)
		}
	}

	return rt.Value()
}
