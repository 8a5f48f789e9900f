// SPDX-License-Identifier: MIT
package ensemble

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/bart/cart"
)

// Variance is the shared error variance of the sum-of-trees model under a
// scaled-inverse-chi-square prior with nu degrees of freedom and scale lamb.
// Its conditional posterior given the ensemble residuals is again scaled
// inverse chi-square, so RandomPosterior is an exact Gibbs draw.
type Variance struct {
	nu, lamb float64
	resids   []float64
	value    float64
	rng      *rand.Rand
}

// NewVariance creates the error-variance parameter. Residuals must be set
// (via SetResiduals) before the first draw.
func NewVariance(nu, lamb float64, rng *rand.Rand) *Variance {
	return &Variance{nu: nu, lamb: lamb, value: lamb, rng: rng}
}

// SetResiduals points the parameter at the current ensemble residuals. The
// slice is referenced, not copied, so the model can update it in place
// between draws.
func (v *Variance) SetResiduals(resids []float64) { v.resids = resids }

// Name implements mcmc.Parameter.
func (v *Variance) Name() string { return "sigsqr" }

// Tracked implements mcmc.Parameter.
func (v *Variance) Tracked() bool { return true }

// Value implements mcmc.Parameter.
func (v *Variance) Value() []float64 { return []float64{v.value} }

// SetValue implements mcmc.Parameter.
func (v *Variance) SetValue(value []float64) { v.value = value[0] }

// SetStartingValue initializes the variance at the sample variance of the
// current residuals, falling back to the prior scale when fewer than two
// residuals are available.
func (v *Variance) SetStartingValue() {
	if len(v.resids) > 1 {
		v.value = stat.Variance(v.resids, nil)
	} else {
		v.value = v.lamb
	}
}

// RandomPosterior draws from the conditional posterior
// sigsqr | resids ~ ScaledInvChiSq(nu+n, (nu·lamb + Σr²)/(nu+n)),
// realized as the reciprocal of a Gamma(dof/2, rate dof·ssqr/2) draw.
func (v *Variance) RandomPosterior() []float64 {
	n := float64(len(v.resids))
	ssr := 0.0
	for _, r := range v.resids {
		ssr += r * r
	}
	postDof := v.nu + n
	postSsqr := (v.nu*v.lamb + ssr) / postDof

	g := distuv.Gamma{Alpha: postDof / 2, Beta: postDof * postSsqr / 2, Src: v.rng}

	return []float64{1 / g.Rand()}
}

// LeafMeans holds the terminal-node output values of one member tree under
// a N(mubar, priorVar) prior. Conditional on the tree topology, its partial
// residual and the error variance, each leaf mean has an independent normal
// posterior, so RandomPosterior is an exact Gibbs draw. The value vector is
// ordered like the tree's terminal inventory and changes length whenever
// the topology does.
type LeafMeans struct {
	rt       *cart.RegressionTree
	sigsqr   *Variance
	mubar    float64
	priorVar float64
	value    []float64
	rng      *rand.Rand
}

// NewLeafMeans creates the leaf-mean parameter for one member tree, sharing
// the ensemble error variance.
func NewLeafMeans(rt *cart.RegressionTree, sigsqr *Variance, mubar, priorVar float64, rng *rand.Rand) *LeafMeans {
	return &LeafMeans{rt: rt, sigsqr: sigsqr, mubar: mubar, priorVar: priorVar, rng: rng}
}

// Name implements mcmc.Parameter.
func (lm *LeafMeans) Name() string { return lm.rt.Name() + "_mu" }

// Tracked implements mcmc.Parameter. Leaf means are high-dimensional and
// topology-dependent, so they are not recorded by default.
func (lm *LeafMeans) Tracked() bool { return false }

// Value implements mcmc.Parameter.
func (lm *LeafMeans) Value() []float64 {
	return append([]float64(nil), lm.value...)
}

// SetValue implements mcmc.Parameter.
func (lm *LeafMeans) SetValue(value []float64) {
	lm.value = append([]float64(nil), value...)
}

// SetStartingValue draws every leaf mean from its prior.
func (lm *LeafMeans) SetStartingValue() {
	leaves := lm.rt.Tree().TerminalNodes()
	sd := math.Sqrt(lm.priorVar)
	lm.value = make([]float64, len(leaves))
	for i := range lm.value {
		lm.value[i] = lm.mubar + sd*lm.rng.NormFloat64()
	}
}

// RandomPosterior draws each leaf mean from its conjugate normal posterior
// given the observations routed to that leaf:
//
//	postVar  = 1 / (1/priorVar + n/sigsqr)
//	postMean = postVar · (mubar/priorVar + n·ybar/sigsqr)
//
// The returned vector follows the tree's terminal inventory order.
func (lm *LeafMeans) RandomPosterior() []float64 {
	t := lm.rt.Tree()
	leaves := t.TerminalNodes()
	s2 := lm.sigsqr.Value()[0]

	mus := make([]float64, len(leaves))
	for i, id := range leaves {
		ys := t.RoutedOutcomes(id)
		n := float64(len(ys))
		ybar := stat.Mean(ys, nil)
		postVar := 1 / (1/lm.priorVar + n/s2)
		postMean := postVar * (lm.mubar/lm.priorVar + n*ybar/s2)
		mus[i] = postMean + math.Sqrt(postVar)*lm.rng.NormFloat64()
	}

	return mus
}
