// SPDX-License-Identifier: MIT
package cart

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/bart/tree"
)

// Sentinel errors returned by the RegressionTree constructor.
var (
	// ErrNilTree indicates that a nil topology engine was passed to New.
	ErrNilTree = errors.New("cart: tree is nil")

	// ErrBadPrior indicates a non-positive conjugate hyperparameter.
	ErrBadPrior = errors.New("cart: nu, lamb and a must be > 0")

	// ErrBadGrowth indicates an out-of-range growth-prior hyperparameter.
	ErrBadGrowth = errors.New("cart: alpha must be in (0,1) and beta >= 0")
)

// Defaults for the conjugate and growth priors, following the usual BART
// calibration: a weak inverse-gamma on the error variance anchored at the
// q-th quantile of a data-based variance estimate, and a growth prior
// that keeps trees shallow.
const (
	DefaultNu       = 3.0
	DefaultQuantile = 0.90
	DefaultA        = 1.0
	DefaultAlpha    = 0.95
	DefaultBeta     = 2.0
)

// RegressionTree couples a topology engine with the conjugate leaf model.
// It composes rather than inherits: the engine is reachable via Tree() and
// all topology mutation stays in package tree.
type RegressionTree struct {
	t *tree.Tree

	// Conjugate normal/inverse-gamma hyperparameters.
	nu    float64 // degrees of freedom of the variance prior
	lamb  float64 // prior scale of the variance prior
	mubar float64 // prior leaf mean
	a     float64 // leaf-mean precision multiplier

	// Tree-shape prior.
	alpha float64 // base split probability
	beta  float64 // depth decay exponent

	name  string
	track bool
	rng   *rand.Rand

	lambSet bool // whether WithPrior supplied lamb explicitly
}

// Option configures a RegressionTree at construction time.
type Option func(*RegressionTree)

// WithPrior sets the conjugate hyperparameters (nu, lamb, mubar, a).
// When not supplied, lamb is calibrated from the outcome variance at the
// DefaultQuantile chi-square quantile and mubar defaults to the outcome
// mean.
func WithPrior(nu, lamb, mubar, a float64) Option {
	return func(rt *RegressionTree) {
		rt.nu, rt.lamb, rt.mubar, rt.a = nu, lamb, mubar, a
		rt.lambSet = true
	}
}

// WithGrowth sets the tree-shape prior hyperparameters alpha and beta.
func WithGrowth(alpha, beta float64) Option {
	return func(rt *RegressionTree) { rt.alpha, rt.beta = alpha, beta }
}

// WithName sets the parameter name reported to the sampler.
func WithName(name string) Option {
	return func(rt *RegressionTree) { rt.name = name }
}

// WithTrack controls whether the sampler records this parameter's trace.
func WithTrack(track bool) Option {
	return func(rt *RegressionTree) { rt.track = track }
}

// WithRand injects the random source used for move selection and
// acceptance draws.
func WithRand(rng *rand.Rand) Option {
	return func(rt *RegressionTree) {
		if rng != nil {
			rt.rng = rng
		}
	}
}

// New wraps a topology engine in the conjugate leaf model.
// Lamb, when not given, is sigma²·qchi/nu with sigma² the sample variance
// of the tree's outcome and qchi the upper endpoint of the central
// DefaultQuantile chi-square interval with nu degrees of freedom.
func New(t *tree.Tree, opts ...Option) (*RegressionTree, error) {
	if t == nil {
		return nil, ErrNilTree
	}

	rt := &RegressionTree{
		t:     t,
		nu:    DefaultNu,
		a:     DefaultA,
		alpha: DefaultAlpha,
		beta:  DefaultBeta,
		name:  "tree",
		track: true,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.rng == nil {
		rt.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if !rt.lambSet {
		y := t.Outcome()
		rt.mubar = stat.Mean(y, nil)
		rt.lamb = CalibrateLamb(stat.Variance(y, nil), rt.nu, DefaultQuantile)
	}
	if rt.nu <= 0 || rt.lamb <= 0 || rt.a <= 0 {
		return nil, ErrBadPrior
	}
	if rt.alpha <= 0 || rt.alpha >= 1 || rt.beta < 0 {
		return nil, ErrBadGrowth
	}

	return rt, nil
}

// CalibrateLamb places the variance prior so that the supplied variance
// estimate sits at quantile q: lamb = sigsqr·qchi/nu, qchi being the upper
// endpoint of the central q interval of a chi-square with nu degrees of
// freedom.
func CalibrateLamb(sigsqr, nu, q float64) float64 {
	qchi := distuv.ChiSquared{K: nu}.Quantile(1 - (1-q)/2)

	return sigsqr * qchi / nu
}

// Tree returns the underlying topology engine.
func (rt *RegressionTree) Tree() *tree.Tree { return rt.t }

// Nu returns the variance-prior degrees of freedom.
func (rt *RegressionTree) Nu() float64 { return rt.nu }

// Lamb returns the variance-prior scale.
func (rt *RegressionTree) Lamb() float64 { return rt.lamb }

// Mubar returns the prior leaf mean.
func (rt *RegressionTree) Mubar() float64 { return rt.mubar }

// A returns the leaf-mean precision multiplier.
func (rt *RegressionTree) A() float64 { return rt.a }
