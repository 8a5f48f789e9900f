// SPDX-License-Identifier: MIT
// Package tree: topology snapshots. The Metropolis driver snapshots before
// proposing a move and restores on rejection; Restore puts the tree back
// byte-for-byte, id allocator included.

package tree

// Snapshot is a deep copy of a Tree's topology state: arena, allocator,
// root, inventories, and generation. It shares the covariate matrix and
// outcome vector with the live tree (moves never touch those).
type Snapshot struct {
	nodes      map[int]Node
	nextID     int
	root       int
	terminal   []int
	internal   []int
	generation uint64
}

// Snapshot captures the current topology. The result stays valid however
// the tree is mutated afterwards.
// Complexity: O(#nodes).
func (t *Tree) Snapshot() *Snapshot {
	s := &Snapshot{
		nodes:      make(map[int]Node, len(t.nodes)),
		nextID:     t.nextID,
		root:       t.root,
		terminal:   append([]int(nil), t.terminal...),
		internal:   append([]int(nil), t.internal...),
		generation: t.generation,
	}
	for id, n := range t.nodes {
		s.nodes[id] = *n
	}

	return s
}

// Restore rewinds the tree to a previously captured snapshot. The snapshot
// is copied on the way in, so it may be restored more than once.
// Complexity: O(#nodes).
func (t *Tree) Restore(s *Snapshot) {
	t.nodes = make(map[int]*Node, len(s.nodes))
	for id, n := range s.nodes {
		cp := n
		t.nodes[id] = &cp
	}
	t.nextID = s.nextID
	t.root = s.root
	t.terminal = append([]int(nil), s.terminal...)
	t.internal = append([]int(nil), s.internal...)
	t.generation = s.generation
}
