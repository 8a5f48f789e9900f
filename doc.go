// Package bart is an in-memory engine for Bayesian Additive Regression
// Trees: sum-of-trees regression fit by Markov Chain Monte Carlo.
//
// 🚀 What is bart?
//
//	A pure-Go library that brings together:
//		• Topology engine: a mutable binary regression tree with four
//		  stochastic local moves (grow, prune, change, swap), transactional
//		  rollback, and derived terminal/internal node inventories
//		• Conjugate model: closed-form marginal likelihood and tree-shape
//		  prior under a normal/inverse-gamma leaf model
//		• Ensemble: m shrunken trees whose summed output targets a fixed
//		  marginal scale, refit against partial residuals (backfitting)
//		• MCMC driver: tracked parameters, Metropolis and Gibbs steps,
//		  scalar and multivariate proposal distributions
//		• Diagnostics: posterior sample traces, credible intervals,
//		  effective sample sizes, trace/histogram plots
//
// Everything is organized under focused subpackages:
//
//	dataset/  - dense row-major covariate matrix + outcome utilities
//	tree/     - Node arena and the binary tree topology engine
//	cart/     - single conjugate regression tree (prior/likelihood/posterior)
//	ensemble/ - BART ensemble, error-variance and leaf-mean Gibbs parameters
//	mcmc/     - parameters, proposals, steps, and the sampler loop
//	trace/    - posterior sample storage, summaries, and plotting
//
// Quick sketch:
//
//	x, _ := dataset.FromRows(rows)
//	t, _ := tree.New(x, y, tree.WithMinLeafSize(5))
//	rt, _ := cart.New(t)
//	rt.SetStartingValue()
//	for i := 0; i < 1000; i++ {
//		rt.RandomPosterior() // one Metropolis topology update
//	}
//
// Single-threaded by contract: a tree is a single mutable ownership graph
// held by one caller; nodes are never shared between trees.
package bart
