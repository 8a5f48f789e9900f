// SPDX-License-Identifier: MIT
// Package cart: the closed-form Metropolis-Hastings target. LogPrior walks
// the derived node inventories, LogLikelihood accumulates the per-leaf
// marginal terms of Chipman, George & McCulloch (1998), eq. 14.

package cart

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LogPrior evaluates the log density of the current topology under the
// tree-shape prior: every terminal node contributes the probability of
// not splitting at its depth, every internal node the probability of
// splitting there divided by the discrete-uniform support of its rule
// (eligible features × routed rows).
// Complexity: O(#nodes · depth · rows) through the per-node filters.
func (rt *RegressionTree) LogPrior() float64 {
	logp := 0.0

	for _, id := range rt.t.TerminalNodes() {
		d := float64(rt.t.Depth(id))
		logp += math.Log(1 - rt.alpha*math.Pow(1+d, -rt.beta))
	}

	for _, id := range rt.t.InternalNodes() {
		d := float64(rt.t.Depth(id))
		logp += math.Log(rt.alpha) - rt.beta*math.Log(1+d)

		nRows, nFeatures := rt.t.EligibleSplits(id)
		logp += -math.Log(float64(nFeatures)) - math.Log(float64(nRows))
	}

	return logp
}

// LogLikelihood evaluates the closed-form marginal likelihood of the
// current topology, integrating out each leaf mean and the shared error
// variance under the conjugate normal/inverse-gamma prior.
//
// A terminal node with zero routed observations cannot occur when the
// minimum-leaf-size constraint holds; encountering one panics instead of
// being silently skipped.
func (rt *RegressionTree) LogLikelihood() float64 {
	// Terms independent of the data moments.
	t2 := 0.5 * rt.nu * math.Log(rt.nu*rt.lamb)
	t4b, _ := math.Lgamma(0.5 * rt.nu)

	lnlike := 0.0
	for _, id := range rt.t.TerminalNodes() {
		ys := rt.t.RoutedOutcomes(id)
		n := float64(len(ys))
		if len(ys) == 0 {
			panic("cart: terminal node with zero routed observations")
		}

		ymean := stat.Mean(ys, nil)
		si := 0.0
		if len(ys) > 1 {
			si = (n - 1) * stat.Variance(ys, nil)
		}
		ti := (n * rt.a) / (n + rt.a) * (ymean - rt.mubar) * (ymean - rt.mubar)

		t1 := -0.5 * n * math.Log(math.Pi)
		t3 := 0.5 * math.Log(rt.a/(n+rt.a))
		t4a, _ := math.Lgamma(0.5 * (n + rt.nu))
		t4 := t4a - t4b
		t5 := -0.5 * (n + rt.nu) * math.Log(si+ti+rt.nu*rt.lamb)

		lnlike += t1 + t2 + t3 + t4 + t5
	}

	return lnlike
}

// LogDensity is the Metropolis-Hastings target: prior plus marginal
// likelihood of the current topology.
func (rt *RegressionTree) LogDensity() float64 {
	return rt.LogLikelihood() + rt.LogPrior()
}
