// SPDX-License-Identifier: MIT
// Package trace_test verifies the sample store, the posterior summaries,
// the autocorrelation-time estimator, and the PNG diagnostics.

package trace_test

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bart/trace"
)

// TestSamples_AppendAndAccess verifies ordering, copying, and the access
// sentinels.
func TestSamples_AppendAndAccess(t *testing.T) {
	s := trace.NewSamples()
	assert.Empty(t, s.Names())
	assert.Equal(t, 0, s.Len("x"))

	row := []float64{1, 2}
	s.Append("x", row)
	s.Append("y", []float64{9})
	s.Append("x", []float64{3, 4})
	row[0] = 99 // must not leak into the store

	assert.Equal(t, []string{"x", "y"}, s.Names())
	assert.Equal(t, 2, s.Len("x"))

	rows, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, rows)

	_, err = s.Get("z")
	assert.ErrorIs(t, err, trace.ErrUnknownParameter)

	series, err := s.Element("x", 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, series)

	_, err = s.Element("x", 2)
	assert.ErrorIs(t, err, trace.ErrElementOutOfRange)
	_, err = s.Element("z", 0)
	assert.ErrorIs(t, err, trace.ErrUnknownParameter)
}

// TestSummarize_NormalDraws checks the summary of a large i.i.d. normal
// sample: median and credible intervals near their theoretical values and
// an autocorrelation time of about one.
func TestSummarize_NormalDraws(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	s := trace.NewSamples()
	const n = 50000
	for i := 0; i < n; i++ {
		s.Append("x", []float64{3 + 2*rng.NormFloat64()})
	}

	sum, err := s.Summarize("x", 0)
	require.NoError(t, err)

	assert.Equal(t, n, sum.N)
	assert.InDelta(t, 3.0, sum.Median, 0.05)
	assert.InDelta(t, 2.0, sum.StdDev, 0.05)
	assert.InDelta(t, 3-2*1.96, sum.CI95[0], 0.1)
	assert.InDelta(t, 3+2*1.96, sum.CI95[1], 0.1)
	assert.InDelta(t, 3-2.0, sum.CI68[0], 0.1)
	assert.InDelta(t, 3+2.0, sum.CI68[1], 0.1)
	assert.Less(t, sum.AutocorrT, 1.6, "i.i.d. draws should have tau near 1")
	assert.Greater(t, sum.EffectiveN, float64(n)/2)
}

// TestAutocorrTime_AR1 checks tau on a strongly correlated AR(1) chain
// against its theoretical value (1+phi)/(1-phi).
func TestAutocorrTime_AR1(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	const (
		n   = 200000
		phi = 0.9
	)
	series := make([]float64, n)
	for i := 1; i < n; i++ {
		series[i] = phi*series[i-1] + rng.NormFloat64()
	}

	tau := trace.AutocorrTime(series)
	// Theoretical tau = (1+phi)/(1-phi) = 19.
	assert.InDelta(t, 19.0, tau, 4.0)
}

// TestAutocorrTime_Degenerate covers the short and constant series floors.
func TestAutocorrTime_Degenerate(t *testing.T) {
	assert.Equal(t, 1.0, trace.AutocorrTime(nil))
	assert.Equal(t, 1.0, trace.AutocorrTime([]float64{5}))
	assert.Equal(t, 1.0, trace.AutocorrTime([]float64{2, 2, 2, 2}))
}

// TestPlots_WritePNGs exercises both diagnostics end to end into a temp
// directory.
func TestPlots_WritePNGs(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	s := trace.NewSamples()
	for i := 0; i < 500; i++ {
		s.Append("sigsqr", []float64{1 + 0.1*rng.NormFloat64()})
	}

	dir := t.TempDir()
	require.NoError(t, s.PlotTrace("sigsqr", 0, filepath.Join(dir, "trace.png")))
	require.NoError(t, s.PlotHistogram("sigsqr", 0, filepath.Join(dir, "hist.png")))

	assert.Error(t, s.PlotTrace("missing", 0, filepath.Join(dir, "x.png")))
}
