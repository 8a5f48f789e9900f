// SPDX-License-Identifier: MIT
package tree

import (
	"errors"
	"math/rand/v2"

	"github.com/katalvlaran/bart/dataset"
)

// Sentinel errors returned by the Tree constructor.
var (
	// ErrNilData indicates that a nil covariate matrix was passed to New.
	ErrNilData = errors.New("tree: covariate matrix is nil")

	// ErrDimensionMismatch indicates that the outcome vector length differs
	// from the covariate matrix row count.
	ErrDimensionMismatch = errors.New("tree: outcome length does not match covariate rows")

	// ErrBadMinLeaf indicates that the minimum leaf size is not positive.
	ErrBadMinLeaf = errors.New("tree: minimum leaf size must be >= 1")
)

// NoNode is the sentinel id for an absent parent or child reference.
const NoNode = -1

// DefaultMinLeafSize is the minimum number of observations each child of a
// split must receive for the split to commit.
const DefaultMinLeafSize = 5

// Rule is a split rule: observations with covariate value <= Threshold on
// column Feature route to the left child, the rest to the right child.
// A rule lives on the node whose children it routes; leaves carry none.
type Rule struct {
	Feature   int
	Threshold float64
}

// Node is a single tree vertex in the arena. Parent and child references
// are node ids (NoNode when absent); ownership flows parent→child, the
// parent reference exists for upward navigation only.
//
// Invariant: a node is terminal iff hasRule is false iff both children are
// NoNode; a node with a rule has exactly two children.
type Node struct {
	id     int
	parent int
	left   int
	right  int
	isLeft bool // whether this node is its parent's left child
	depth  int  // parent depth + 1, root 0; fixed at construction

	rule    Rule
	hasRule bool
}

// Tree owns the full covariate matrix, the outcome vector, the node arena
// with its id allocator, and the derived terminal/internal inventories.
//
// The inventories are non-authoritative caches, rebuilt by a full traversal
// inside every committing mutation before it returns; generation increments
// on each commit so consumers can detect staleness of anything they copied.
type Tree struct {
	x       *dataset.Dense
	y       []float64
	minLeaf int
	rng     *rand.Rand

	nodes  map[int]*Node // live node arena, keyed by id
	nextID int           // per-tree allocator; ids strictly increase, never reused
	root   int

	terminal   []int // derived: terminal node ids in right-before-left order
	internal   []int // derived: internal node ids in right-before-left order
	generation uint64
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithMinLeafSize sets the minimum number of observations each child of a
// split must receive. Values < 1 are rejected by New with ErrBadMinLeaf.
func WithMinLeafSize(n int) Option {
	return func(t *Tree) { t.minLeaf = n }
}

// WithRand injects the random source used for node, feature, and threshold
// selection. Defaults to a PCG source seeded from the global generator.
func WithRand(rng *rand.Rand) Option {
	return func(t *Tree) {
		if rng != nil {
			t.rng = rng
		}
	}
}

// New creates a single-node Tree over the given covariates and outcome.
// The outcome slice is copied; the matrix is referenced, not copied.
// Complexity: O(n) for the outcome copy.
func New(x *dataset.Dense, y []float64, opts ...Option) (*Tree, error) {
	if x == nil {
		return nil, ErrNilData
	}
	if len(y) != x.Rows() {
		return nil, ErrDimensionMismatch
	}

	t := &Tree{
		x:       x,
		y:       append([]float64(nil), y...),
		minLeaf: DefaultMinLeafSize,
		nodes:   make(map[int]*Node),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.minLeaf < 1 {
		return nil, ErrBadMinLeaf
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	root := t.newNode(NoNode, false)
	t.root = root.id
	t.terminal = []int{root.id}
	t.internal = nil

	return t, nil
}

// newNode allocates a fresh node, registers it as the named child of parent
// (or as a detached root when parent is NoNode), and sets its depth.
// The id allocator only moves forward; rollback of a failed split is the
// single place allowed to rewind it (see Split).
func (t *Tree) newNode(parent int, isLeft bool) *Node {
	n := &Node{
		id:     t.nextID,
		parent: parent,
		left:   NoNode,
		right:  NoNode,
		isLeft: isLeft,
	}
	t.nextID++
	if parent != NoNode {
		p := t.mustNode(parent)
		if isLeft {
			p.left = n.id
		} else {
			p.right = n.id
		}
		n.depth = p.depth + 1
	}
	t.nodes[n.id] = n

	return n
}

// mustNode resolves a node id or panics: unknown ids signal a defect in the
// caller's bookkeeping, not an expected condition.
func (t *Tree) mustNode(id int) *Node {
	n, ok := t.nodes[id]
	if !ok {
		panic("tree: unknown node id")
	}

	return n
}
