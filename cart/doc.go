// Package cart implements a single Bayesian regression tree: the binary
// topology engine from package tree, augmented with a conjugate
// normal/inverse-gamma leaf model and the tree-shape prior that together
// form the Metropolis-Hastings target for topology moves.
//
// Description:
//
//	Under the conjugate model each leaf's mean and the shared error
//	variance integrate out in closed form, so the marginal likelihood of a
//	topology is a sum of per-leaf terms over sufficient statistics (count,
//	sample mean, sample variance). The tree-shape prior charges each
//	internal node alpha·(1+depth)^(−beta) for splitting, each terminal
//	node the complement for stopping, and divides by the discrete-uniform
//	support of the chosen rule (eligible features × routed rows).
//
//	RegressionTree implements the mcmc.Parameter capability: the external
//	sampler treats it like any other tracked parameter, and each
//	RandomPosterior call performs one Metropolis-within-Gibbs topology
//	update: snapshot, a uniformly mixed grow/prune/change/swap move,
//	accept with probability exp(Δ log density), restore on rejection.
//	The four moves are symmetric by construction (grow/prune and
//	change/swap pair up), so no Hastings correction is applied.
//
// Errors (sentinel):
//
//	– ErrNilTree    if the topology engine is nil.
//	– ErrBadPrior   if nu, lamb, or a is not positive.
//	– ErrBadGrowth  if alpha is outside (0,1) or beta is negative.
//
// A terminal node with zero routed observations reaching the likelihood
// indicates broken mutation logic and panics.
package cart
