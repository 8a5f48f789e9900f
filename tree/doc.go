// Package tree implements the mutable binary regression tree at the heart
// of the BART sampler: an arena of nodes supporting four stochastic local
// topology moves and the data-routing filter that decides which
// observations reach which leaf.
//
// Description:
//
//	A Tree owns the covariate matrix, the outcome vector, a per-tree node
//	allocator, and two derived inventories (terminal and internal node
//	ids). Nodes are stored in an arena keyed by integer id; parent/child
//	relationships are ids, never shared pointers, so trees can be
//	snapshotted and restored without aliasing.
//
//	The four moves:
//	  – Grow:   split a uniformly chosen terminal node on a proposed rule.
//	  – Prune:  collapse a uniformly chosen parent of two terminal children.
//	  – Change: re-draw the rule of a uniformly chosen internal node.
//	  – Swap:   exchange rules between an internal parent/child pair
//	            (three-way rotate when both children carry identical rules).
//
//	Every move is transactional: it either commits (rule applied, caches
//	recomputed, generation bumped) or leaves the tree byte-for-byte
//	unchanged. Expected non-events (no eligible node, no valid rule, a
//	split that would starve a child below the minimum leaf size) are
//	ordinary false returns, not errors.
//
//	Traversal order for the derived inventories is fixed: at each node the
//	right subtree is walked before the left, appending terminal nodes
//	(no children) and internal nodes (both children) as encountered.
//	All traversal and generation routines use an explicit stack, so memory
//	use is bounded by tree size rather than host call-stack limits.
//
// Concurrency:
//
//	Single-threaded by contract. A Tree is one mutable ownership graph held
//	by one caller; no internal locking is performed.
//
// Errors (sentinel, construction only):
//
//	– ErrNilData            if the covariate matrix is nil.
//	– ErrDimensionMismatch  if len(y) differs from the matrix row count.
//	– ErrBadMinLeaf         if the minimum leaf size is < 1.
//
// Broken invariants (an unknown node id, a node with exactly one child,
// an internal node without a rule) indicate a defect in mutation logic
// and panic with a "tree:"-prefixed message rather than being absorbed.
package tree
