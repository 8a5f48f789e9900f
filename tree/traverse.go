// SPDX-License-Identifier: MIT
// Package tree: stack-based traversal and stochastic generation. Recursive
// formulations are avoided on purpose: depth is controlled only by the
// growth prior, so an explicit stack keeps memory bounded by tree size.

package tree

import "math"

// recomputeNodes rebuilds both derived inventories with one traversal in
// the fixed order: visit the node, then its right subtree, then its left
// subtree. Terminal nodes (no children) go to the terminal list, internal
// nodes (both children) to the internal list; a one-child node is a broken
// invariant and panics.
// Complexity: O(#nodes).
func (t *Tree) recomputeNodes() {
	t.terminal = t.terminal[:0]
	t.internal = t.internal[:0]

	stack := make([]int, 0, len(t.nodes))
	stack = append(stack, t.root)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.mustNode(id)

		switch {
		case n.left == NoNode && n.right == NoNode:
			t.terminal = append(t.terminal, id)
		case n.left != NoNode && n.right != NoNode:
			t.internal = append(t.internal, id)
			// Left pushed first so the right subtree pops (and is fully
			// visited) before the left one.
			stack = append(stack, n.left, n.right)
		default:
			panic("tree: node with exactly one child")
		}
	}
}

// BuildUniform grows the subtree rooted at the terminal node id by drawing
// from the tree-shape prior: each visited node splits with probability
// alpha·(1+depth)^(−beta) on a proposed rule, and on a committed split its
// two fresh children are visited in turn. Calling it on a tree's root
// right after Reset draws an initial topology from the prior; that is the
// "fresh random starting tree" operation.
//
// A rejected rule proposal or a starved split simply stops extension at
// that node, mirroring the silent non-event contract of the moves.
func (t *Tree) BuildUniform(id int, alpha, beta float64) {
	stack := []int{id}
	for len(stack) > 0 {
		nid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.mustNode(nid)

		pSplit := alpha * math.Pow(1+float64(n.depth), -beta)
		if t.rng.Float64() >= pSplit {
			continue
		}
		r, ok := t.ProposeRule(nid)
		if !ok {
			continue
		}
		if left, right, committed := t.Split(nid, r); committed {
			stack = append(stack, left, right)
		}
	}
}
