// SPDX-License-Identifier: MIT
package ensemble

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/bart/cart"
	"github.com/katalvlaran/bart/dataset"
	"github.com/katalvlaran/bart/tree"
)

// Sentinel errors returned by the Model constructor.
var (
	// ErrBadSize indicates an ensemble size below one.
	ErrBadSize = errors.New("ensemble: size must be >= 1")

	// ErrBadOutputScale indicates a non-positive output-scale hyperparameter.
	ErrBadOutputScale = errors.New("ensemble: output scale k must be > 0")
)

// Defaults for the sum-of-trees model. The leaf-mean prior spread is
// 0.5/(k·sqrt(m)), so with the outcome rescaled to [-0.5, 0.5] the summed
// leaf output stays within k prior standard deviations of the data range.
const (
	DefaultSize        = 50
	DefaultOutputScale = 2.0
)

// Model is the BART sum-of-trees regression model over a shared covariate
// matrix. Member trees never see the raw outcome: each holds its current
// partial residual, and the model owns the bookkeeping that keeps the
// per-member fitted values and their running total consistent.
type Model struct {
	x     *dataset.Dense
	y     []float64 // outcome, rescaled once to [-0.5, 0.5]
	scale dataset.OutcomeScale

	m       int     // number of member trees
	k       float64 // output-scale hyperparameter
	sigmu   float64 // leaf-mean prior standard deviation, 0.5/(k·sqrt(m))
	nu      float64 // variance-prior degrees of freedom
	q       float64 // variance-prior calibration quantile
	alpha   float64 // growth-prior base split probability
	beta    float64 // growth-prior depth decay
	minLeaf int

	rng    *rand.Rand
	logger *zap.Logger

	trees    []*cart.RegressionTree
	means    []*LeafMeans
	variance *Variance

	fits   [][]float64       // per-member fitted values on the rescaled axis
	total  []float64         // running sum of fits
	leaves []map[int]float64 // per-member leaf id -> current leaf mean
	sweeps int
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithSize sets the number of member trees.
func WithSize(m int) Option {
	return func(md *Model) { md.m = m }
}

// WithOutputScale sets the output-scale hyperparameter k. Larger k shrinks
// leaf means harder toward zero.
func WithOutputScale(k float64) Option {
	return func(md *Model) { md.k = k }
}

// WithVariancePrior sets the error-variance prior degrees of freedom and
// calibration quantile.
func WithVariancePrior(nu, q float64) Option {
	return func(md *Model) { md.nu, md.q = nu, q }
}

// WithGrowth sets the tree-shape prior shared by all member trees.
func WithGrowth(alpha, beta float64) Option {
	return func(md *Model) { md.alpha, md.beta = alpha, beta }
}

// WithMinLeafSize sets the minimum child size of every member tree's splits.
func WithMinLeafSize(n int) Option {
	return func(md *Model) { md.minLeaf = n }
}

// WithRand injects the random source shared by all member trees and Gibbs
// draws.
func WithRand(rng *rand.Rand) Option {
	return func(md *Model) {
		if rng != nil {
			md.rng = rng
		}
	}
}

// WithLogger sets the structured logger used for sweep progress. Defaults
// to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(md *Model) {
		if logger != nil {
			md.logger = logger
		}
	}
}

// New builds a sum-of-trees model over the given covariates and outcome.
// The outcome is copied and min-max rescaled to [-0.5, 0.5]; the rescale
// happens exactly once, before any member tree is constructed. Every member
// starts as a single root leaf holding the full (rescaled) outcome.
func New(x *dataset.Dense, y []float64, opts ...Option) (*Model, error) {
	if x == nil {
		return nil, tree.ErrNilData
	}
	if len(y) != x.Rows() {
		return nil, tree.ErrDimensionMismatch
	}

	md := &Model{
		x:       x,
		y:       append([]float64(nil), y...),
		m:       DefaultSize,
		k:       DefaultOutputScale,
		nu:      cart.DefaultNu,
		q:       cart.DefaultQuantile,
		alpha:   cart.DefaultAlpha,
		beta:    cart.DefaultBeta,
		minLeaf: tree.DefaultMinLeafSize,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(md)
	}
	if md.m < 1 {
		return nil, ErrBadSize
	}
	if md.k <= 0 {
		return nil, ErrBadOutputScale
	}
	if md.rng == nil {
		md.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	scale, err := dataset.RescaleOutcome(md.y)
	if err != nil {
		return nil, fmt.Errorf("ensemble: rescale outcome: %w", err)
	}
	md.scale = scale
	md.sigmu = 0.5 / (md.k * math.Sqrt(float64(md.m)))

	sigsqr := stat.Variance(md.y, nil)
	lamb := cart.CalibrateLamb(sigsqr, md.nu, md.q)
	md.variance = NewVariance(md.nu, lamb, md.rng)
	md.variance.SetResiduals(md.y)

	n := x.Rows()
	md.trees = make([]*cart.RegressionTree, md.m)
	md.means = make([]*LeafMeans, md.m)
	md.fits = make([][]float64, md.m)
	md.leaves = make([]map[int]float64, md.m)
	md.total = make([]float64, n)
	a := 1.0 / (md.sigmu * md.sigmu)
	for j := range md.trees {
		t, err := tree.New(x, md.y,
			tree.WithMinLeafSize(md.minLeaf),
			tree.WithRand(md.rng),
		)
		if err != nil {
			return nil, fmt.Errorf("ensemble: member %d: %w", j, err)
		}
		rt, err := cart.New(t,
			cart.WithPrior(md.nu, lamb, 0, a),
			cart.WithGrowth(md.alpha, md.beta),
			cart.WithName(fmt.Sprintf("tree_%d", j)),
			cart.WithTrack(false),
			cart.WithRand(md.rng),
		)
		if err != nil {
			return nil, fmt.Errorf("ensemble: member %d: %w", j, err)
		}
		md.trees[j] = rt
		md.means[j] = NewLeafMeans(rt, md.variance, 0, md.sigmu*md.sigmu, md.rng)
		md.fits[j] = make([]float64, n)
		md.leaves[j] = map[int]float64{t.Root(): 0}
	}

	return md, nil
}

// Size returns the number of member trees.
func (md *Model) Size() int { return md.m }

// Sigmu returns the leaf-mean prior standard deviation.
func (md *Model) Sigmu() float64 { return md.sigmu }

// Scale returns the outcome rescale transform.
func (md *Model) Scale() dataset.OutcomeScale { return md.scale }

// Variance returns the shared error-variance parameter.
func (md *Model) Variance() *Variance { return md.variance }

// Trees returns the member regression trees. The slice is shared; callers
// must not reorder it.
func (md *Model) Trees() []*cart.RegressionTree { return md.trees }

// Sweeps returns the number of completed backfitting sweeps.
func (md *Model) Sweeps() int { return md.sweeps }
