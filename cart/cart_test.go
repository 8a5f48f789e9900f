// SPDX-License-Identifier: MIT
// Package cart_test verifies the conjugate leaf model: prior and marginal
// likelihood values, the sampler-facing parameter contract, and the
// Metropolis topology update.

package cart_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bart/cart"
	"github.com/katalvlaran/bart/dataset"
	"github.com/katalvlaran/bart/tree"
)

// newFixture builds a 20-row, 3-feature tree. Feature 0 is the row index,
// feature 1 cycles 0..4, feature 2 is constant.
func newFixture(tb testing.TB, seed uint64) *tree.Tree {
	tb.Helper()

	rows := make([][]float64, 20)
	y := make([]float64, 20)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i % 5), 1}
		y[i] = float64(i)/19 - 0.5
	}
	x, err := dataset.FromRows(rows)
	require.NoError(tb, err)

	tr, err := tree.New(x, y,
		tree.WithMinLeafSize(2),
		tree.WithRand(rand.New(rand.NewPCG(seed, seed))),
	)
	require.NoError(tb, err)

	return tr
}

// TestNew_Validation locks in the constructor sentinels and defaults.
func TestNew_Validation(t *testing.T) {
	_, err := cart.New(nil)
	assert.ErrorIs(t, err, cart.ErrNilTree)

	tr := newFixture(t, 1)
	_, err = cart.New(tr, cart.WithPrior(-1, 1, 0, 1))
	assert.ErrorIs(t, err, cart.ErrBadPrior)

	_, err = cart.New(tr, cart.WithGrowth(1.5, 2))
	assert.ErrorIs(t, err, cart.ErrBadGrowth)

	rt, err := cart.New(tr)
	require.NoError(t, err)
	assert.Equal(t, "tree", rt.Name())
	assert.True(t, rt.Tracked())
	assert.InDelta(t, 0.0, rt.Mubar(), 1e-12, "outcome is centered, mubar should calibrate near zero")
	assert.Greater(t, rt.Lamb(), 0.0)
}

// TestCalibrateLamb_KnownQuantile pins the chi-square calibration against
// the tabulated 0.95 quantile of chi-square with 3 degrees of freedom.
func TestCalibrateLamb_KnownQuantile(t *testing.T) {
	// qchi = Quantile(0.95) of ChiSquared(3) = 7.8147...
	lamb := cart.CalibrateLamb(1.0, 3, 0.90)
	assert.InDelta(t, 7.8147279/3, lamb, 1e-4)

	// CalibrateLamb scales linearly in the variance estimate.
	assert.InDelta(t, 2*lamb, cart.CalibrateLamb(2.0, 3, 0.90), 1e-10)
}

// TestLogPrior_RootOnly hand-checks the prior of a single-leaf tree:
// log(1 - alpha).
func TestLogPrior_RootOnly(t *testing.T) {
	rt, err := cart.New(newFixture(t, 1), cart.WithGrowth(0.95, 2))
	require.NoError(t, err)

	assert.InDelta(t, math.Log(1-0.95), rt.LogPrior(), 1e-12)
}

// TestLogPrior_OneSplit hand-checks the prior after one committed root
// split: the internal term divides by 2 eligible features (the constant
// column is excluded) and 20 routed rows; both depth-1 leaves contribute
// log(1 - alpha/4) under beta = 2.
func TestLogPrior_OneSplit(t *testing.T) {
	tr := newFixture(t, 1)
	_, _, ok := tr.Split(tr.Root(), tree.Rule{Feature: 0, Threshold: 9})
	require.True(t, ok)

	rt, err := cart.New(tr, cart.WithGrowth(0.95, 2))
	require.NoError(t, err)

	want := math.Log(0.95) - math.Log(2) - math.Log(20) + 2*math.Log(1-0.95/4)
	assert.InDelta(t, want, rt.LogPrior(), 1e-12)
}

// simpson returns the composite Simpson weight for point i of n panels.
func simpson(i, n int) float64 {
	switch {
	case i == 0 || i == n:
		return 1
	case i%2 == 1:
		return 4
	default:
		return 2
	}
}

// logMarginalNumeric integrates the normal/inverse-gamma marginal of one
// leaf directly: over the leaf mean with a composite Simpson rule, and
// over the log of the error variance (so the grid resolves the sharp
// small-variance peak) with another.
func logMarginalNumeric(ys []float64, nu, lamb, mubar, a float64) float64 {
	const (
		muLo, muHi = -6.0, 6.0
		uLo, uHi   = -16.0, 5.0 // log variance
		nMu, nU    = 2000, 2000
	)

	alpha := nu / 2
	rate := nu * lamb / 2
	lgAlpha, _ := math.Lgamma(alpha)
	logInvGamma := func(s2 float64) float64 {
		return alpha*math.Log(rate) - lgAlpha - (alpha+1)*math.Log(s2) - rate/s2
	}

	hMu := (muHi - muLo) / nMu
	hU := (uHi - uLo) / nU
	total := 0.0
	for j := 0; j <= nU; j++ {
		u := uLo + float64(j)*hU
		s2 := math.Exp(u)
		// +u is the Jacobian of the log-variance substitution.
		base := logInvGamma(s2) + u - 0.5*float64(len(ys))*math.Log(2*math.Pi*s2) -
			0.5*math.Log(2*math.Pi*s2/a)

		inner := 0.0
		for i := 0; i <= nMu; i++ {
			mu := muLo + float64(i)*hMu
			ss := 0.0
			for _, y := range ys {
				ss += (y - mu) * (y - mu)
			}
			lp := -(ss + a*(mu-mubar)*(mu-mubar)) / (2 * s2)
			inner += simpson(i, nMu) * math.Exp(base+lp)
		}
		total += simpson(j, nU) * inner * hMu / 3
	}

	return math.Log(total * hU / 3)
}

// TestLogLikelihood_MatchesNumericalIntegration checks the closed-form
// marginal of a single fixed leaf (n = 5) against direct numerical
// integration of the normal/inverse-gamma marginal to within 1e-6
// relative error.
func TestLogLikelihood_MatchesNumericalIntegration(t *testing.T) {
	ys := []float64{0.12, -0.21, 0.15, 0.05, -0.08}
	const (
		nu    = 3.0
		lamb  = 0.1
		mubar = 0.0
		a     = 1.0
	)

	rows := make([][]float64, len(ys))
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	x, err := dataset.FromRows(rows)
	require.NoError(t, err)
	tr, err := tree.New(x, ys)
	require.NoError(t, err)
	rt, err := cart.New(tr, cart.WithPrior(nu, lamb, mubar, a))
	require.NoError(t, err)

	closed := rt.LogLikelihood()
	numeric := logMarginalNumeric(ys, nu, lamb, mubar, a)
	assert.InEpsilon(t, closed, numeric, 1e-6)
}

// TestLogDensity_PrefersTrueTopology generates outcomes from a known
// single-split partition and checks that the true topology scores a
// higher log density than a deliberately mismatched one in nearly every
// trial.
func TestLogDensity_PrefersTrueTopology(t *testing.T) {
	const (
		n      = 40
		trials = 20
		sd     = 0.05
	)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	x, err := dataset.FromRows(rows)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(42, 42))
	wins := 0
	for trial := 0; trial < trials; trial++ {
		y := make([]float64, n)
		for i := range y {
			mean := -0.3
			if i > 19 {
				mean = 0.3
			}
			y[i] = mean + sd*rng.NormFloat64()
		}

		truth, err := tree.New(x, y)
		require.NoError(t, err)
		_, _, ok := truth.Split(truth.Root(), tree.Rule{Feature: 0, Threshold: 19})
		require.True(t, ok)
		rtTrue, err := cart.New(truth, cart.WithPrior(3, 0.01, 0, 1))
		require.NoError(t, err)

		wrong, err := tree.New(x, y)
		require.NoError(t, err)
		_, _, ok = wrong.Split(wrong.Root(), tree.Rule{Feature: 0, Threshold: 4})
		require.True(t, ok)
		rtWrong, err := cart.New(wrong, cart.WithPrior(3, 0.01, 0, 1))
		require.NoError(t, err)

		if rtTrue.LogDensity() > rtWrong.LogDensity() {
			wins++
		}
	}
	assert.GreaterOrEqual(t, wins, trials-1, "true partition must dominate the mismatched one")
}

// TestParameter_Contract verifies the sampler-facing capability: the trace
// row layout, the no-op SetValue, and the prior redraw in
// SetStartingValue.
func TestParameter_Contract(t *testing.T) {
	tr := newFixture(t, 5)
	rt, err := cart.New(tr,
		cart.WithName("topology"),
		cart.WithTrack(false),
		cart.WithRand(rand.New(rand.NewPCG(5, 5))),
	)
	require.NoError(t, err)

	assert.Equal(t, "topology", rt.Name())
	assert.False(t, rt.Tracked())

	v := rt.Value()
	require.Len(t, v, 3)
	assert.Equal(t, rt.LogDensity(), v[0])
	assert.Equal(t, 1.0, v[1], "fresh tree has one terminal node")
	assert.Equal(t, 0.0, v[2])

	rt.SetValue([]float64{99, 99, 99}) // must not disturb anything
	assert.Equal(t, v, rt.Value())

	rt.SetStartingValue()
	term := len(rt.Tree().TerminalNodes())
	intern := len(rt.Tree().InternalNodes())
	assert.Equal(t, rt.Tree().NodeCount(), term+intern)
}

// TestRandomPosterior_PreservesInvariants runs a long chain of topology
// updates and checks structural consistency and a finite log density
// throughout.
func TestRandomPosterior_PreservesInvariants(t *testing.T) {
	tr := newFixture(t, 9)
	rt, err := cart.New(tr, cart.WithRand(rand.New(rand.NewPCG(9, 9))))
	require.NoError(t, err)
	rt.SetStartingValue()

	for i := 0; i < 500; i++ {
		v := rt.RandomPosterior()
		require.Len(t, v, 3)
		require.False(t, math.IsNaN(v[0]) || math.IsInf(v[0], 0), "log density must stay finite")
		require.Equal(t, rt.Tree().NodeCount(), int(v[1]+v[2]))
		for _, id := range rt.Tree().TerminalNodes() {
			require.GreaterOrEqual(t, rt.Tree().RoutedCount(id), 1)
		}
	}
}

// TestMove_String covers the move labels used in logs.
func TestMove_String(t *testing.T) {
	assert.Equal(t, "grow", cart.MoveGrow.String())
	assert.Equal(t, "prune", cart.MovePrune.String())
	assert.Equal(t, "change", cart.MoveChange.String())
	assert.Equal(t, "swap", cart.MoveSwap.String())
	assert.Equal(t, "unknown", cart.Move(17).String())
}
