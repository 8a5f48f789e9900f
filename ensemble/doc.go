// Package ensemble implements the BART sum-of-trees model: m regression
// trees whose leaf-output prior shrinks as 1/(k²·m) so their summed output
// keeps a fixed marginal scale regardless of ensemble size.
//
// Description:
//
//	The outcome vector is min-max rescaled to [-0.5, 0.5] exactly once,
//	before any member tree is constructed. Fitting proceeds by
//	backfitting sweeps: member tree j sees the outcome minus the current
//	fitted values of every OTHER member (its partial residual), performs
//	one Metropolis topology update, redraws its leaf means from their
//	conjugate conditional posterior, and folds its refreshed contribution
//	back into the running total fit. After a full sweep the shared error
//	variance is redrawn from its scaled-inverse-chi-square conditional
//	posterior given the ensemble residuals.
//
//	Variance and LeafMeans implement the mcmc.Parameter capability, so a
//	sampler can schedule them as ordinary Gibbs steps alongside the
//	member trees; Model.Step packages one full sweep for callers who do
//	not need step-level control.
//
// Errors (sentinel):
//
//	– ErrBadSize         if the ensemble size m is < 1.
//	– ErrBadOutputScale  if the output-scale hyperparameter k is <= 0.
//
// Construction also surfaces dataset.ErrConstantOutcome and the tree/cart
// constructor errors unchanged.
package ensemble
