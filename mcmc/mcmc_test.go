// SPDX-License-Identifier: MIT
// Package mcmc_test verifies the proposal distributions by their sampling
// moments, the two step kinds, and the sampler loop contract.

package mcmc_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/bart/mcmc"
	"github.com/katalvlaran/bart/trace"
)

// scalarParam is a minimal free scalar parameter for step tests. Its
// RandomPosterior draws from a fixed normal, standing in for a conjugate
// conditional.
type scalarParam struct {
	name    string
	tracked bool
	value   float64

	mu, sigma float64
	rng       *rand.Rand
}

func (p *scalarParam) Name() string         { return p.name }
func (p *scalarParam) Tracked() bool        { return p.tracked }
func (p *scalarParam) Value() []float64     { return []float64{p.value} }
func (p *scalarParam) SetValue(v []float64) { p.value = v[0] }
func (p *scalarParam) SetStartingValue()    { p.value = p.mu }

func (p *scalarParam) RandomPosterior() []float64 {
	return []float64{p.mu + p.sigma*p.rng.NormFloat64()}
}

// gaussTarget is a scalar normal log target.
type gaussTarget struct {
	mu, sigma float64
}

func (g gaussTarget) LogDensity(v []float64) float64 {
	z := (v[0] - g.mu) / g.sigma
	return -0.5*z*z - math.Log(g.sigma) - 0.5*math.Log(2*math.Pi)
}

// TestNormalProposal_MomentsAndSymmetry checks the sampling moments of the
// random-walk proposal and that its density is symmetric in (to, from).
func TestNormalProposal_MomentsAndSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	p := mcmc.NewNormalProposal(2.0, rng)

	const n = 20000
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = p.Draw(5.0)
	}
	assert.InDelta(t, 5.0, stat.Mean(draws, nil), 0.05)
	assert.InDelta(t, 2.0, stat.StdDev(draws, nil), 0.05)

	assert.InDelta(t, p.LogDensity(1.3, 0.2), p.LogDensity(0.2, 1.3), 1e-12)
}

// TestLogNormalProposal_Asymmetry checks positivity, the log-scale
// location, and that the density really is asymmetric.
func TestLogNormalProposal_Asymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	p := mcmc.NewLogNormalProposal(0.5, rng)

	const n = 20000
	logs := make([]float64, n)
	for i := range logs {
		d := p.Draw(3.0)
		require.Greater(t, d, 0.0, "log-normal draws must stay positive")
		logs[i] = math.Log(d)
	}
	assert.InDelta(t, math.Log(3.0), stat.Mean(logs, nil), 0.02)
	assert.InDelta(t, 0.5, stat.StdDev(logs, nil), 0.02)

	asym := math.Abs(p.LogDensity(2.0, 1.0) - p.LogDensity(1.0, 2.0))
	assert.Greater(t, asym, 1e-6, "log-normal proposal density must be asymmetric")
}

// TestStudentTProposal_SymmetryAndTails checks the symmetric density and
// that dof = 3 tails are heavier than the matching normal's.
func TestStudentTProposal_SymmetryAndTails(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	p := mcmc.NewStudentTProposal(1.0, 3, rng)

	assert.InDelta(t, p.LogDensity(1.7, -0.4), p.LogDensity(-0.4, 1.7), 1e-12)

	const n = 20000
	far := 0
	for i := 0; i < n; i++ {
		if math.Abs(p.Draw(0)) > 4 {
			far++
		}
	}
	// P(|t3| > 4) ≈ 0.014, P(|N(0,1)| > 4) ≈ 6e-5.
	assert.Greater(t, far, n/200, "t(3) should put visible mass past 4 sigma")
}

// TestMultiNormalProposal_Contract checks covariance validation, draw
// dimension, the mean of repeated draws, and density symmetry.
func TestMultiNormalProposal_Contract(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))

	bad := mat.NewSymDense(2, []float64{1, 2, 2, 1}) // indefinite
	_, err := mcmc.NewMultiNormalProposal(bad, rng)
	assert.ErrorIs(t, err, mcmc.ErrBadCovariance)

	covar := mat.NewSymDense(2, []float64{1, 0.3, 0.3, 0.5})
	p, err := mcmc.NewMultiNormalProposal(covar, rng)
	require.NoError(t, err)

	from := []float64{1, -2}
	const n = 20000
	sum := make([]float64, 2)
	for i := 0; i < n; i++ {
		d := p.DrawVec(from)
		require.Len(t, d, 2)
		sum[0] += d[0]
		sum[1] += d[1]
	}
	assert.InDelta(t, 1.0, sum[0]/n, 0.03)
	assert.InDelta(t, -2.0, sum[1]/n, 0.03)

	to := []float64{1.4, -1.7}
	assert.InDelta(t, p.LogDensityVec(to, from), p.LogDensityVec(from, to), 1e-12)
}

// TestGibbsStep_CommitsDraw verifies that a Gibbs step stores the
// conditional draw as the new value.
func TestGibbsStep_CommitsDraw(t *testing.T) {
	p := &scalarParam{name: "x", mu: 7, sigma: 0, rng: rand.New(rand.NewPCG(5, 5))}
	step := mcmc.NewGibbsStep(p)

	require.Equal(t, p, step.Parameter())
	step.DoStep()
	assert.Equal(t, []float64{7}, p.Value())
}

// TestMetropolisStep_RecoversTarget runs a random-walk chain against a
// known normal target and checks the recovered moments and a sane
// acceptance rate.
func TestMetropolisStep_RecoversTarget(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	p := &scalarParam{name: "x", mu: 0, sigma: 1, rng: rng}
	p.SetStartingValue()
	target := gaussTarget{mu: 1, sigma: 0.5}
	step := mcmc.NewMetropolisStep(p, target, mcmc.NewNormalProposal(1.0, rng), rng)

	for i := 0; i < 2000; i++ {
		step.DoStep()
	}
	const n = 40000
	draws := make([]float64, n)
	for i := range draws {
		step.DoStep()
		draws[i] = p.Value()[0]
	}

	assert.InDelta(t, 1.0, stat.Mean(draws, nil), 0.03)
	assert.InDelta(t, 0.5, stat.StdDev(draws, nil), 0.03)
	rate := step.AcceptanceRate()
	assert.Greater(t, rate, 0.15)
	assert.Less(t, rate, 0.75)
}

// TestSampler_RunValidation locks in the Run sentinels.
func TestSampler_RunValidation(t *testing.T) {
	s := mcmc.NewSampler()
	_, err := s.Run(0, 10, 1)
	assert.ErrorIs(t, err, mcmc.ErrNoSteps)

	s.AddStep(mcmc.NewGibbsStep(&scalarParam{name: "x", rng: rand.New(rand.NewPCG(7, 7))}))
	_, err = s.Run(0, 0, 1)
	assert.ErrorIs(t, err, mcmc.ErrBadSampleSize)
	_, err = s.Run(0, 10, 0)
	assert.ErrorIs(t, err, mcmc.ErrBadThin)
}

// TestSampler_RecordsTrackedDraws verifies that only tracked parameters
// land in the trace and that each records exactly nsamples rows.
func TestSampler_RecordsTrackedDraws(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8))
	kept := &scalarParam{name: "kept", tracked: true, mu: 2, sigma: 1, rng: rng}
	hidden := &scalarParam{name: "hidden", tracked: false, mu: 0, sigma: 1, rng: rng}

	s := mcmc.NewSampler(mcmc.WithLogEvery(10))
	s.AddStep(mcmc.NewGibbsStep(kept))
	s.AddStep(mcmc.NewGibbsStep(hidden))

	samples, err := s.Run(10, 50, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"kept"}, samples.Names())
	assert.Equal(t, 50, samples.Len("kept"))
	_, err = samples.Get("hidden")
	assert.ErrorIs(t, err, trace.ErrUnknownParameter)

	xs, err := samples.Element("kept", 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, stat.Mean(xs, nil), 0.5)
}
