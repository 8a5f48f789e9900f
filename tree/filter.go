// SPDX-License-Identifier: MIT
// Package tree: data routing. Filter walks from a node up to the root,
// accumulating the inequality each ancestor's rule implies for membership
// in that ancestor's left (<=) or right (>) child.

package tree

// Filter computes which observations reach node id.
//
// rows is the row mask: rows[i] is true when observation i satisfies every
// ancestor constraint on the path from id to the root. cols is the
// per-feature mask: cols[f][i] is true when observation i satisfies the
// ancestor constraints that mention feature f (features never mentioned
// stay all-true); it is what ProposeRule and the split prior consult when
// counting candidates per feature.
//
// Complexity: O(depth(id) · rows) time, O(features · rows) memory.
func (t *Tree) Filter(id int) (cols [][]bool, rows []bool) {
	n := t.mustNode(id)
	nRows, nFeat := t.x.Rows(), t.x.Cols()

	cols = make([][]bool, nFeat)
	for f := range cols {
		cf := make([]bool, nRows)
		for i := range cf {
			cf[i] = true
		}
		cols[f] = cf
	}
	rows = make([]bool, nRows)
	for i := range rows {
		rows[i] = true
	}

	// Walk ancestors, narrowing the masks by each rule in turn.
	for n.parent != NoNode {
		p := t.mustNode(n.parent)
		if !p.hasRule {
			panic("tree: internal node without a rule")
		}
		f, thr := p.rule.Feature, p.rule.Threshold
		cf := cols[f]
		if n.isLeft {
			for i := 0; i < nRows; i++ {
				if t.x.Value(i, f) > thr {
					cf[i] = false
					rows[i] = false
				}
			}
		} else {
			for i := 0; i < nRows; i++ {
				if t.x.Value(i, f) <= thr {
					cf[i] = false
					rows[i] = false
				}
			}
		}
		n = p
	}

	return cols, rows
}

// RoutedCount returns the number of observations routed to node id.
// Complexity: same as Filter.
func (t *Tree) RoutedCount(id int) int {
	_, rows := t.Filter(id)

	return countTrue(rows)
}

// RoutedOutcomes collects the outcome values of the observations routed to
// node id, in row order. The likelihood evaluates leaf sufficient
// statistics from this slice.
// Complexity: same as Filter plus O(rows).
func (t *Tree) RoutedOutcomes(id int) []float64 {
	_, rows := t.Filter(id)
	out := make([]float64, 0, len(rows))
	for i, in := range rows {
		if in {
			out = append(out, t.y[i])
		}
	}

	return out
}

// EligibleSplits returns the number of observations routed to node id and
// the number of features with more than one distinct observed value among
// those observations, the discrete-uniform support sizes the tree-shape
// prior divides by.
// Complexity: O(features · rows).
func (t *Tree) EligibleSplits(id int) (nRows, nFeatures int) {
	_, rows := t.Filter(id)
	nRows = countTrue(rows)

	for f := 0; f < t.x.Cols(); f++ {
		var first float64
		seen, distinct := false, false
		for i, in := range rows {
			if !in {
				continue
			}
			v := t.x.Value(i, f)
			if !seen {
				first, seen = v, true
			} else if v != first {
				distinct = true
				break
			}
		}
		if distinct {
			nFeatures++
		}
	}

	return nRows, nFeatures
}

// ProposeRule draws a candidate split rule for node id: the feature
// uniformly at random over all features, the threshold uniformly over the
// observed values of that feature among observations routed to id.
// Returns (Rule{}, false) when no observation reaches id for the chosen
// feature; the caller aborts the enclosing move without mutating the tree.
func (t *Tree) ProposeRule(id int) (Rule, bool) {
	feature := t.rng.IntN(t.x.Cols())
	cols, _ := t.Filter(id)

	values := make([]float64, 0, len(cols[feature]))
	for i, in := range cols[feature] {
		if in {
			values = append(values, t.x.Value(i, feature))
		}
	}
	if len(values) == 0 {
		return Rule{}, false
	}

	return Rule{Feature: feature, Threshold: values[t.rng.IntN(len(values))]}, true
}

// countTrue returns the number of set entries in mask.
func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}

	return n
}
