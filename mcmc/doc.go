// Package mcmc provides the generic sampling machinery around the tree
// engine: tracked parameters, proposal distributions, Metropolis and Gibbs
// steps, and the sampler loop that iterates them and records traces.
//
// Description:
//
//	A Parameter is anything the sampler can initialize, update, and
//	record: its capability is a name, a tracked flag, a current value,
//	SetStartingValue, and RandomPosterior (a conditional posterior draw).
//	Regression trees, the shared error variance, and per-leaf means all
//	implement it by composition; the sampler dispatches uniformly and
//	never inspects the concrete kind.
//
//	Steps come in two flavors. GibbsStep assigns the parameter its own
//	RandomPosterior draw. MetropolisStep perturbs a scalar parameter with
//	a Proposal and accepts on the Hastings ratio, using the proposal's
//	LogDensity both ways so asymmetric proposals (log-normal) are handled
//	correctly.
//
//	The Sampler owns an ordered step list and runs burn-in, thinning, and
//	sampling stages, appending each tracked parameter's value to a
//	trace.Samples store. Progress is logged through zap; the default
//	logger is a nop so library use stays silent.
//
// Errors (sentinel):
//
//	– ErrNoSteps        if Run is called with no steps added.
//	– ErrBadSampleSize  if the requested sample size is < 1.
//	– ErrBadThin        if the thinning interval is < 1.
//	– ErrBadCovariance  if a proposal covariance is not positive definite.
package mcmc
