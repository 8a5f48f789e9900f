// SPDX-License-Identifier: MIT
package dataset

import "errors"

// ErrConstantOutcome indicates that the outcome vector has zero range and
// cannot be min-max rescaled.
var ErrConstantOutcome = errors.New("dataset: outcome vector is constant")

// OutcomeScale records the affine transform applied by RescaleOutcome so a
// fitted value f on the rescaled axis maps back as Min + (f+0.5)*Span.
type OutcomeScale struct {
	Min  float64 // minimum of the original outcome
	Span float64 // max - min of the original outcome
}

// Invert maps a value from the rescaled [-0.5, 0.5] axis back to the
// original outcome axis. Complexity: O(1).
func (s OutcomeScale) Invert(v float64) float64 {
	return s.Min + (v+0.5)*s.Span
}

// RescaleOutcome min-max rescales y in place to the range [-0.5, 0.5] and
// returns the transform used. The ensemble applies this exactly once,
// before any member tree is constructed.
// Returns ErrInvalidDimensions for an empty vector and ErrConstantOutcome
// when max(y) == min(y).
// Complexity: O(n).
func RescaleOutcome(y []float64) (OutcomeScale, error) {
	if len(y) == 0 {
		return OutcomeScale{}, ErrInvalidDimensions
	}
	lo, hi := y[0], y[0]
	for _, v := range y[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return OutcomeScale{}, ErrConstantOutcome
	}
	span := hi - lo
	for i, v := range y {
		y[i] = (v-lo)/span - 0.5
	}

	return OutcomeScale{Min: lo, Span: span}, nil
}
