// Package dataset provides the tabular storage consumed by the tree engine:
// a dense, row-major covariate matrix and outcome-vector utilities.
//
// Description:
//
//	Rows are observations, columns are features. Dense stores elements in a
//	flat slice for cache friendliness; accessors are bounds-checked and
//	return a sentinel-wrapped error rather than panicking, except Value,
//	the unchecked hot-path read the tree filter loop uses.
//
//	RescaleOutcome implements the ensemble contract of mapping the outcome
//	vector into [-0.5, 0.5] once, before any tree is fit, and reports the
//	affine transform used so fitted values can be mapped back.
//
// Errors (sentinel):
//
//	– ErrInvalidDimensions  if requested dimensions are non-positive.
//	– ErrIndexOutOfBounds   if a row or column index is outside valid range.
//	– ErrRaggedRows         if FromRows receives rows of unequal length.
//	– ErrConstantOutcome    if RescaleOutcome receives a constant vector.
package dataset
