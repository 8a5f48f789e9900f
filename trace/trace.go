// SPDX-License-Identifier: MIT
package trace

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for trace access.
var (
	// ErrUnknownParameter indicates the requested name was never recorded.
	ErrUnknownParameter = errors.New("trace: unknown parameter")

	// ErrElementOutOfRange indicates an element index beyond the width of
	// the recorded draws.
	ErrElementOutOfRange = errors.New("trace: element index out of range")

	// ErrEmptyTrace indicates a parameter with no recorded draws.
	ErrEmptyTrace = errors.New("trace: no draws recorded")
)

// Samples holds the recorded draws of tracked parameters, keyed by name,
// in the order parameters were first appended.
type Samples struct {
	names []string
	draws map[string][][]float64
}

// NewSamples returns an empty sample store.
func NewSamples() *Samples {
	return &Samples{draws: make(map[string][][]float64)}
}

// Append records one draw (a vector, length 1 for scalars) for name.
// The value is copied. Complexity: O(len(value)).
func (s *Samples) Append(name string, value []float64) {
	if _, ok := s.draws[name]; !ok {
		s.names = append(s.names, name)
	}
	s.draws[name] = append(s.draws[name], append([]float64(nil), value...))
}

// Names returns the recorded parameter names in first-appended order.
func (s *Samples) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of draws recorded for name (0 when unknown).
func (s *Samples) Len(name string) int {
	return len(s.draws[name])
}

// Get returns a copy of all draws for name, safer than handing out the
// internal slices to be mutated by accident.
func (s *Samples) Get(name string) ([][]float64, error) {
	rows, ok := s.draws[name]
	if !ok {
		return nil, fmt.Errorf("trace: %q: %w", name, ErrUnknownParameter)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}

	return out, nil
}

// Element extracts the elem-th component of every draw of name as a flat
// series, the shape summaries and plots operate on.
func (s *Samples) Element(name string, elem int) ([]float64, error) {
	rows, ok := s.draws[name]
	if !ok {
		return nil, fmt.Errorf("trace: %q: %w", name, ErrUnknownParameter)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace: %q: %w", name, ErrEmptyTrace)
	}
	if elem < 0 || elem >= len(rows[0]) {
		return nil, fmt.Errorf("trace: %q[%d]: %w", name, elem, ErrElementOutOfRange)
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[elem]
	}

	return out, nil
}

// Summary is the posterior report for one element of one parameter.
type Summary struct {
	N          int        // number of draws
	Median     float64    //
	StdDev     float64    //
	CI68       [2]float64 // central 68% credible interval
	CI95       [2]float64 // central 95% credible interval
	CI99       [2]float64 // central 99% credible interval
	AutocorrT  float64    // integrated autocorrelation time
	EffectiveN float64    // N / AutocorrT
}

// Summarize computes the posterior summary for element elem of parameter
// name. Complexity: O(n log n) for the quantile sort plus O(n·tau) for the
// autocorrelation scan.
func (s *Samples) Summarize(name string, elem int) (Summary, error) {
	series, err := s.Element(name, elem)
	if err != nil {
		return Summary{}, err
	}

	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)

	quantile := func(p float64) float64 {
		return stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	tau := AutocorrTime(series)

	return Summary{
		N:          len(series),
		Median:     quantile(0.5),
		StdDev:     math.Sqrt(stat.Variance(series, nil)),
		CI68:       [2]float64{quantile(0.16), quantile(0.84)},
		CI95:       [2]float64{quantile(0.025), quantile(0.975)},
		CI99:       [2]float64{quantile(0.005), quantile(0.995)},
		AutocorrT:  tau,
		EffectiveN: float64(len(series)) / tau,
	}, nil
}

// AutocorrTime estimates the integrated autocorrelation time of a series
// with the initial-positive-sequence estimator: pair consecutive
// autocorrelations and sum pairs while they stay positive. The result is
// at least 1 (an uncorrelated chain).
func AutocorrTime(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 1
	}
	mean := stat.Mean(series, nil)
	c0 := 0.0
	for _, v := range series {
		c0 += (v - mean) * (v - mean)
	}
	if c0 == 0 {
		return 1
	}

	rho := func(lag int) float64 {
		acc := 0.0
		for i := 0; i+lag < n; i++ {
			acc += (series[i] - mean) * (series[i+lag] - mean)
		}

		return acc / c0
	}

	tau := 1.0
	for lag := 1; lag+1 < n; lag += 2 {
		pair := rho(lag) + rho(lag+1)
		if pair <= 0 {
			break
		}
		tau += 2 * pair
	}
	if tau < 1 {
		tau = 1
	}

	return tau
}
