// Package trace stores posterior samples produced by the mcmc sampler and
// summarizes them: medians, credible intervals, autocorrelation
// timescales, effective sample sizes, and trace/histogram plots.
//
// Description:
//
//	Samples maps parameter names to their per-iteration vector draws in
//	insertion order. Summaries follow the usual posterior-report layout:
//	median, standard deviation, and the central 68/95/99% credible
//	intervals per vector element. The effective sample size divides the
//	chain length by the integrated autocorrelation time, estimated with
//	the initial-positive-sequence rule (sum paired autocorrelations until
//	a pair goes negative).
//
//	PlotTrace and PlotHistogram render PNG diagnostics through
//	gonum.org/v1/plot for a single element of a parameter's trace.
//
// Errors (sentinel):
//
//	– ErrUnknownParameter   if a name was never recorded.
//	– ErrElementOutOfRange  if an element index exceeds the draw width.
//	– ErrEmptyTrace         if a summary or plot is requested before any
//	  draw was appended.
package trace
