// SPDX-License-Identifier: MIT
package mcmc

import (
	"math"
	"math/rand/v2"
)

// GibbsStep updates a parameter by assigning it a draw from its own
// conditional posterior. Tree parameters fold their Metropolis update
// inside RandomPosterior, so from the sampler's point of view every step
// kind looks the same.
type GibbsStep struct {
	param Parameter
}

// NewGibbsStep wraps param in a Gibbs update.
func NewGibbsStep(param Parameter) *GibbsStep {
	return &GibbsStep{param: param}
}

// Parameter returns the wrapped parameter.
func (s *GibbsStep) Parameter() Parameter { return s.param }

// DoStep draws from the conditional posterior and stores the result.
func (s *GibbsStep) DoStep() {
	s.param.SetValue(s.param.RandomPosterior())
}

// MetropolisStep updates a scalar parameter with a random-walk proposal,
// accepting on the Hastings ratio of the supplied target. The proposal's
// log density is evaluated both ways, so asymmetric proposals are correct
// without special-casing.
type MetropolisStep struct {
	param  Parameter
	target Target
	prop   Proposal
	rng    *rand.Rand

	accepted, proposed int
}

// NewMetropolisStep builds a Metropolis update of param against target
// using prop, with rng supplying the acceptance draws.
func NewMetropolisStep(param Parameter, target Target, prop Proposal, rng *rand.Rand) *MetropolisStep {
	return &MetropolisStep{param: param, target: target, prop: prop, rng: rng}
}

// Parameter returns the wrapped parameter.
func (s *MetropolisStep) Parameter() Parameter { return s.param }

// AcceptanceRate reports the fraction of proposals accepted so far.
func (s *MetropolisStep) AcceptanceRate() float64 {
	if s.proposed == 0 {
		return 0
	}

	return float64(s.accepted) / float64(s.proposed)
}

// DoStep proposes a candidate, evaluates the Hastings ratio, and commits
// the candidate on acceptance.
func (s *MetropolisStep) DoStep() {
	current := s.param.Value()
	candidate := s.prop.Draw(current[0])

	logRatio := s.target.LogDensity([]float64{candidate}) - s.target.LogDensity(current)
	// Hastings correction: forward density down, reverse density up.
	logRatio += s.prop.LogDensity(current[0], candidate) - s.prop.LogDensity(candidate, current[0])

	s.proposed++
	if logRatio >= 0 || math.Log(s.rng.Float64()) < logRatio {
		s.param.SetValue([]float64{candidate})
		s.accepted++
	}
}
