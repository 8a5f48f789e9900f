// SPDX-License-Identifier: MIT
// Package mcmc: the proposal-distribution library used by Metropolis steps
// to perturb continuous parameters. Tree topology moves never come through
// here; they are symmetric by construction.

package mcmc

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalProposal perturbs a scalar with Gaussian noise of fixed standard
// deviation. Symmetric: its LogDensity cancels in the Hastings ratio, but
// is still evaluated so callers need not special-case it.
type NormalProposal struct {
	Sigma float64
	rng   *rand.Rand
}

// NewNormalProposal returns a normal proposal with standard deviation
// sigma, drawing from rng.
func NewNormalProposal(sigma float64, rng *rand.Rand) *NormalProposal {
	return &NormalProposal{Sigma: sigma, rng: rng}
}

// Draw returns from + N(0, sigma).
func (p *NormalProposal) Draw(from float64) float64 {
	return distuv.Normal{Mu: from, Sigma: p.Sigma, Src: p.rng}.Rand()
}

// LogDensity returns the log density of proposing to from from.
func (p *NormalProposal) LogDensity(to, from float64) float64 {
	return distuv.Normal{Mu: from, Sigma: p.Sigma}.LogProb(to)
}

// LogNormalProposal perturbs a positive scalar multiplicatively: the
// candidate is log-normal centered at log(from). Asymmetric, so the
// Hastings correction from LogDensity matters.
type LogNormalProposal struct {
	Sigma float64 // standard deviation on the log scale
	rng   *rand.Rand
}

// NewLogNormalProposal returns a log-normal proposal with log-scale
// standard deviation sigma, drawing from rng.
func NewLogNormalProposal(sigma float64, rng *rand.Rand) *LogNormalProposal {
	return &LogNormalProposal{Sigma: sigma, rng: rng}
}

// Draw returns exp(log(from) + N(0, sigma)).
func (p *LogNormalProposal) Draw(from float64) float64 {
	return distuv.LogNormal{Mu: math.Log(from), Sigma: p.Sigma, Src: p.rng}.Rand()
}

// LogDensity returns the log-normal density of to centered at log(from).
func (p *LogNormalProposal) LogDensity(to, from float64) float64 {
	return distuv.LogNormal{Mu: math.Log(from), Sigma: p.Sigma}.LogProb(to)
}

// StudentTProposal perturbs a scalar with heavy-tailed Student-t noise,
// useful when the target has tails a normal proposal explores poorly.
type StudentTProposal struct {
	Sigma float64 // scale
	Dof   float64 // degrees of freedom
	rng   *rand.Rand
}

// NewStudentTProposal returns a Student-t proposal with the given scale
// and degrees of freedom, drawing from rng.
func NewStudentTProposal(sigma, dof float64, rng *rand.Rand) *StudentTProposal {
	return &StudentTProposal{Sigma: sigma, Dof: dof, rng: rng}
}

// Draw returns from + sigma·t(dof).
func (p *StudentTProposal) Draw(from float64) float64 {
	return distuv.StudentsT{Mu: from, Sigma: p.Sigma, Nu: p.Dof, Src: p.rng}.Rand()
}

// LogDensity returns the Student-t density of to centered at from.
func (p *StudentTProposal) LogDensity(to, from float64) float64 {
	return distuv.StudentsT{Mu: from, Sigma: p.Sigma, Nu: p.Dof}.LogProb(to)
}

// MultiNormalProposal perturbs a vector with correlated Gaussian noise of
// fixed covariance. Symmetric.
type MultiNormalProposal struct {
	dim  int
	chol mat.Cholesky
	rng  *rand.Rand
}

// NewMultiNormalProposal factorizes the covariance once up front.
// Returns ErrBadCovariance when the matrix is not positive definite.
func NewMultiNormalProposal(covar *mat.SymDense, rng *rand.Rand) (*MultiNormalProposal, error) {
	p := &MultiNormalProposal{dim: covar.SymmetricDim(), rng: rng}
	if ok := p.chol.Factorize(covar); !ok {
		return nil, ErrBadCovariance
	}

	return p, nil
}

// DrawVec returns from + L·z with z standard normal and L the Cholesky
// factor of the covariance.
func (p *MultiNormalProposal) DrawVec(from []float64) []float64 {
	out := make([]float64, p.dim)

	return distmv.NormalRand(out, from, &p.chol, p.rng)
}

// LogDensityVec returns the multivariate normal log density of to
// centered at from.
func (p *MultiNormalProposal) LogDensityVec(to, from []float64) float64 {
	return distmv.NormalLogProb(to, from, &p.chol)
}
