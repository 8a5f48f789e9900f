// SPDX-License-Identifier: MIT
package ensemble

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/bart/dataset"
	"github.com/katalvlaran/bart/tree"
)

// Step runs one full backfitting sweep. For each member tree j it
//
//  1. sets j's outcome to the partial residual y − Σ_{i≠j} fit_i,
//  2. performs one Metropolis topology update,
//  3. redraws j's leaf means from their conjugate posterior,
//  4. recomputes fit_j and folds the change into the running total,
//
// then redraws the shared error variance from the full-ensemble residuals.
func (md *Model) Step() {
	n := len(md.y)
	resid := make([]float64, n)

	for j, rt := range md.trees {
		for i := range resid {
			resid[i] = md.y[i] - (md.total[i] - md.fits[j][i])
		}
		if err := rt.Tree().SetOutcome(resid); err != nil {
			panic("ensemble: partial residual length drifted: " + err.Error())
		}

		rt.RandomPosterior()

		mus := md.means[j].RandomPosterior()
		md.means[j].SetValue(mus)

		newFit, leafValues := fittedValues(rt.Tree(), mus)
		for i := range newFit {
			md.total[i] += newFit[i] - md.fits[j][i]
		}
		md.fits[j] = newFit
		md.leaves[j] = leafValues
	}

	for i := range resid {
		resid[i] = md.y[i] - md.total[i]
	}
	md.variance.SetResiduals(resid)
	md.variance.SetValue(md.variance.RandomPosterior())

	md.sweeps++
}

// Fit runs the given number of backfitting sweeps, logging progress every
// logEvery sweeps through the model's logger.
func (md *Model) Fit(sweeps int) {
	const logEvery = 100
	for s := 0; s < sweeps; s++ {
		md.Step()
		if (s+1)%logEvery == 0 {
			md.logger.Info("backfitting sweep",
				zap.Int("sweep", md.sweeps),
				zap.Float64("sigsqr", md.variance.Value()[0]),
				zap.Float64("log_density", md.LogDensity()),
			)
		}
	}
}

// fittedValues evaluates one member tree at every training row: each row
// receives the mean of the leaf it routes to. mus follows the terminal
// inventory order. Also returns the leaf id -> mean map used for
// out-of-sample prediction.
func fittedValues(t *tree.Tree, mus []float64) ([]float64, map[int]float64) {
	fit := make([]float64, len(t.Outcome()))
	leafValues := make(map[int]float64, len(mus))
	for i, id := range t.TerminalNodes() {
		leafValues[id] = mus[i]
		_, rows := t.Filter(id)
		for r, in := range rows {
			if in {
				fit[r] = mus[i]
			}
		}
	}

	return fit, leafValues
}

// FittedValues returns the current in-sample fit on the original outcome
// axis.
func (md *Model) FittedValues() []float64 {
	out := make([]float64, len(md.total))
	for i, v := range md.total {
		out[i] = md.scale.Invert(v)
	}

	return out
}

// Residuals returns y − fit on the rescaled axis.
func (md *Model) Residuals() []float64 {
	out := make([]float64, len(md.y))
	for i := range out {
		out[i] = md.y[i] - md.total[i]
	}

	return out
}

// Predict evaluates the current ensemble state at new covariate rows,
// routing each row through every member's split rules and summing the leaf
// means, then maps the sum back to the original outcome axis.
func (md *Model) Predict(x *dataset.Dense) ([]float64, error) {
	if x == nil {
		return nil, tree.ErrNilData
	}
	if x.Cols() != md.x.Cols() {
		return nil, tree.ErrDimensionMismatch
	}

	out := make([]float64, x.Rows())
	for j, rt := range md.trees {
		t := rt.Tree()
		for i := range out {
			out[i] += md.leaves[j][routeRow(t, x, i)]
		}
	}
	for i, v := range out {
		out[i] = md.scale.Invert(v)
	}

	return out, nil
}

// routeRow follows split rules from the root down to a terminal node and
// returns its id.
func routeRow(t *tree.Tree, x *dataset.Dense, row int) int {
	id := t.Root()
	for {
		r, ok := t.RuleOf(id)
		if !ok {
			return id
		}
		left, right := t.Children(id)
		if x.Value(row, r.Feature) <= r.Threshold {
			id = left
		} else {
			id = right
		}
	}
}

// LogDensity returns the summed log posterior density of the member trees
// at their current partial residuals.
func (md *Model) LogDensity() float64 {
	sum := 0.0
	for _, rt := range md.trees {
		sum += rt.LogDensity()
	}

	return sum
}
