// SPDX-License-Identifier: MIT
package mcmc

import "errors"

// Sentinel errors for the sampler and proposal constructors.
var (
	// ErrNoSteps indicates Run was called on a sampler with no steps.
	ErrNoSteps = errors.New("mcmc: sampler has no steps")

	// ErrBadSampleSize indicates a non-positive requested sample size.
	ErrBadSampleSize = errors.New("mcmc: sample size must be >= 1")

	// ErrBadThin indicates a non-positive thinning interval.
	ErrBadThin = errors.New("mcmc: thinning interval must be >= 1")

	// ErrBadCovariance indicates a proposal covariance that is not
	// positive definite.
	ErrBadCovariance = errors.New("mcmc: covariance is not positive definite")
)

// Parameter is the tracked-parameter capability the sampler dispatches on.
// Implementations compose it onto their concrete state; the sampler never
// inspects the underlying kind.
type Parameter interface {
	// Name identifies the parameter in traces and summaries.
	Name() string

	// Tracked reports whether the sampler records this parameter's draws.
	Tracked() bool

	// Value returns the current value as a vector (length 1 for scalars).
	Value() []float64

	// SetValue overwrites the current value. Parameters whose value is
	// derived from internal state (a tree topology) may ignore it.
	SetValue([]float64)

	// SetStartingValue initializes the parameter, typically by drawing
	// from its prior.
	SetStartingValue()

	// RandomPosterior returns a draw from the parameter's conditional
	// posterior given the current state of every other parameter.
	RandomPosterior() []float64
}

// Target exposes the log target density a Metropolis step evaluates at
// candidate values of one scalar parameter.
type Target interface {
	LogDensity(value []float64) float64
}

// Proposal is the scalar proposal-distribution capability: Draw produces a
// candidate from the current value, LogDensity evaluates the density of
// moving to one value from another so asymmetric proposals enter the
// Hastings ratio correctly.
type Proposal interface {
	Draw(from float64) float64
	LogDensity(to, from float64) float64
}

// VectorProposal is the vector analogue of Proposal.
type VectorProposal interface {
	DrawVec(from []float64) []float64
	LogDensityVec(to, from []float64) float64
}

// Step advances one parameter by one MCMC update.
type Step interface {
	// Parameter returns the parameter this step updates.
	Parameter() Parameter

	// DoStep performs one update of the parameter.
	DoStep()
}
