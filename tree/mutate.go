// SPDX-License-Identifier: MIT
// Package tree: the four stochastic topology moves and the transactional
// split primitive they share. Every committing path ends by bumping the
// generation counter and rebuilding the node inventories; every rejecting
// path leaves the tree byte-for-byte as it was on entry.

package tree

// Split creates two children under the terminal node parent and applies
// rule r to it. The split commits only when BOTH children would receive at
// least MinLeafSize observations; otherwise both children are discarded,
// the rule is cleared, the id allocator is rewound, and (NoNode, NoNode,
// false) is returned.
//
// Splitting a non-terminal node is a caller defect and panics.
// Complexity: O(depth · rows) for the two child filters plus O(#nodes) for
// the inventory rebuild on commit.
func (t *Tree) Split(parent int, r Rule) (left, right int, ok bool) {
	p := t.mustNode(parent)
	if p.left != NoNode || p.right != NoNode || p.hasRule {
		panic("tree: split of a non-terminal node")
	}

	// Tentatively attach both children and the rule; the child filters
	// below read the rule off the parent.
	ln := t.newNode(parent, true)
	rn := t.newNode(parent, false)
	p.rule = r
	p.hasRule = true

	_, lRows := t.Filter(ln.id)
	_, rRows := t.Filter(rn.id)
	if countTrue(lRows) >= t.minLeaf && countTrue(rRows) >= t.minLeaf {
		t.generation++
		t.recomputeNodes()

		return ln.id, rn.id, true
	}

	// Roll back: discard children, clear the rule, rewind the allocator.
	delete(t.nodes, ln.id)
	delete(t.nodes, rn.id)
	p.left, p.right = NoNode, NoNode
	p.rule = Rule{}
	p.hasRule = false
	t.nextID -= 2

	return NoNode, NoNode, false
}

// Grow selects a terminal node uniformly at random, proposes a rule for
// it, and attempts a Split. Returns false when no valid rule is found or
// the split would starve a child.
func (t *Tree) Grow() bool {
	target := t.terminal[t.rng.IntN(len(t.terminal))]
	r, ok := t.ProposeRule(target)
	if !ok {
		return false
	}
	_, _, ok = t.Split(target, r)

	return ok
}

// Prune considers internal nodes whose two children are both terminal
// (checked directly on the child slots), picks one uniformly at random,
// and removes its children, making it terminal again. Returns false when
// no such sibling pair exists.
// Complexity: O(#internal) candidate scan plus the inventory rebuild.
func (t *Tree) Prune() bool {
	var candidates []int
	for _, id := range t.internal {
		n := t.nodes[id]
		if t.IsTerminal(n.left) && t.IsTerminal(n.right) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	p := t.mustNode(candidates[t.rng.IntN(len(candidates))])
	delete(t.nodes, p.left)
	delete(t.nodes, p.right)
	p.left, p.right = NoNode, NoNode
	p.rule = Rule{}
	p.hasRule = false

	t.generation++
	t.recomputeNodes()

	return true
}

// Change selects an internal node uniformly at random, proposes a fresh
// rule for it, and delegates to ChangeRule. Returns (Rule{}, false) when
// there is no internal node or no valid rule could be proposed.
func (t *Tree) Change() (Rule, bool) {
	if len(t.internal) == 0 {
		return Rule{}, false
	}
	target := t.internal[t.rng.IntN(len(t.internal))]
	r, ok := t.ProposeRule(target)
	if !ok {
		return Rule{}, false
	}

	return t.ChangeRule(target, r)
}

// ChangeRule tentatively replaces the rule of internal node id with r and
// re-filters both children. When either child would fall below MinLeafSize
// the original rule is restored exactly and (r, false) is returned: the
// returned rule always reflects the attempt, the tree only reflects it on
// commit. Topology is unchanged either way, so the node inventories are
// untouched; a commit still bumps the generation.
func (t *Tree) ChangeRule(id int, r Rule) (Rule, bool) {
	n := t.mustNode(id)
	if !n.hasRule || n.left == NoNode || n.right == NoNode {
		panic("tree: rule change on a terminal node")
	}

	prev := n.rule
	n.rule = r
	_, lRows := t.Filter(n.left)
	_, rRows := t.Filter(n.right)
	if countTrue(lRows) < t.minLeaf || countTrue(rRows) < t.minLeaf {
		n.rule = prev

		return r, false
	}
	t.generation++

	return r, true
}

// Swap considers parent/child pairs that are both internal. If none exist
// it returns false. When the chosen parent's two children carry an
// identical rule, the rules rotate three ways: the child rule moves to the
// parent and the parent's former rule moves to BOTH children. Otherwise an
// internal child is chosen and its rule is exchanged with the parent's.
//
// Either way the multiset of (feature, threshold) pairs across the
// affected nodes is preserved.
func (t *Tree) Swap() bool {
	// Candidate parents: internal nodes with at least one internal child,
	// collected in inventory order so the uniform pick is deterministic
	// for a fixed random stream.
	var parents []int
	seen := make(map[int]bool)
	for _, id := range t.internal {
		pid := t.nodes[id].parent
		if pid == NoNode || seen[pid] {
			continue
		}
		if p := t.nodes[pid]; p != nil && p.hasRule {
			seen[pid] = true
			parents = append(parents, pid)
		}
	}
	if len(parents) == 0 {
		return false
	}

	p := t.mustNode(parents[t.rng.IntN(len(parents))])
	ln, rn := t.mustNode(p.left), t.mustNode(p.right)

	// Both children share one rule: rotate three ways.
	if ln.hasRule && rn.hasRule && ln.rule == rn.rule {
		p.rule, ln.rule, rn.rule = ln.rule, p.rule, p.rule
		t.generation++

		return true
	}

	// Otherwise exchange with an internal child, chosen uniformly when
	// both qualify.
	var children []*Node
	if ln.hasRule {
		children = append(children, ln)
	}
	if rn.hasRule {
		children = append(children, rn)
	}
	c := children[t.rng.IntN(len(children))]
	p.rule, c.rule = c.rule, p.rule
	t.generation++

	return true
}
