// SPDX-License-Identifier: MIT
// Package tree: read-only accessors over the arena and the derived caches.

package tree

import "github.com/katalvlaran/bart/dataset"

// Root returns the root node id. Complexity: O(1).
func (t *Tree) Root() int { return t.root }

// NodeCount returns the number of live nodes. Complexity: O(1).
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Generation returns the commit counter: it increments once per committing
// mutation, so consumers can treat previously copied inventories as stale
// whenever it changes. Complexity: O(1).
func (t *Tree) Generation() uint64 { return t.generation }

// MinLeafSize returns the minimum child size enforced by Split.
func (t *Tree) MinLeafSize() int { return t.minLeaf }

// TerminalNodes returns a copy of the terminal node inventory, in the fixed
// right-before-left traversal order. Complexity: O(#terminal).
func (t *Tree) TerminalNodes() []int {
	return append([]int(nil), t.terminal...)
}

// InternalNodes returns a copy of the internal node inventory, in the fixed
// right-before-left traversal order. Complexity: O(#internal).
func (t *Tree) InternalNodes() []int {
	return append([]int(nil), t.internal...)
}

// Parent returns the parent id of node id, or NoNode for the root.
func (t *Tree) Parent(id int) int { return t.mustNode(id).parent }

// Children returns the (left, right) child ids of node id; both are NoNode
// for a terminal node.
func (t *Tree) Children(id int) (left, right int) {
	n := t.mustNode(id)

	return n.left, n.right
}

// Depth returns the depth of node id (root depth 0).
func (t *Tree) Depth(id int) int { return t.mustNode(id).depth }

// RuleOf returns the split rule of node id and whether one is set.
func (t *Tree) RuleOf(id int) (Rule, bool) {
	n := t.mustNode(id)

	return n.rule, n.hasRule
}

// IsTerminal reports whether node id is a leaf.
func (t *Tree) IsTerminal(id int) bool {
	n := t.mustNode(id)

	return n.left == NoNode && n.right == NoNode
}

// X returns the covariate matrix the tree routes. The matrix is shared
// with the caller and must not be mutated during a run.
func (t *Tree) X() *dataset.Dense { return t.x }

// Outcome returns the tree's outcome vector (a live reference, length
// X().Rows()). The ensemble overwrites it with partial residuals between
// sweeps via SetOutcome.
func (t *Tree) Outcome() []float64 { return t.y }

// SetOutcome replaces the outcome vector contents in place.
// Returns ErrDimensionMismatch when the length differs from the row count.
// Complexity: O(n).
func (t *Tree) SetOutcome(y []float64) error {
	if len(y) != t.x.Rows() {
		return ErrDimensionMismatch
	}
	copy(t.y, y)

	return nil
}

// Reset discards the whole topology and starts over from a single fresh
// root node. The id allocator keeps running: ids are never reused, so the
// new root's id is strictly greater than every id seen before.
// Complexity: O(#nodes).
func (t *Tree) Reset() {
	t.nodes = make(map[int]*Node)
	root := t.newNode(NoNode, false)
	t.root = root.id
	t.terminal = []int{root.id}
	t.internal = nil
	t.generation++
}
