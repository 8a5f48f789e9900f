// SPDX-License-Identifier: MIT
// Package tree_test benchmarks the hot paths of the topology engine: data
// routing, the grow/prune cycle, and the Metropolis snapshot round trip.

package tree_test

import (
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/bart/dataset"
	"github.com/katalvlaran/bart/tree"
)

// benchTree builds a 512-row, 8-feature tree grown to a realistic depth.
func benchTree(b *testing.B) *tree.Tree {
	b.Helper()

	rng := rand.New(rand.NewPCG(1, 1))
	rows := make([][]float64, 512)
	y := make([]float64, len(rows))
	for i := range rows {
		row := make([]float64, 8)
		for f := range row {
			row[f] = rng.Float64()
		}
		rows[i] = row
		y[i] = rng.NormFloat64()
	}
	x, err := dataset.FromRows(rows)
	if err != nil {
		b.Fatal(err)
	}
	tr, err := tree.New(x, y, tree.WithRand(rng))
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 64; i++ {
		tr.Grow()
	}

	return tr
}

func BenchmarkFilter(b *testing.B) {
	tr := benchTree(b)
	leaves := tr.TerminalNodes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Filter(leaves[i%len(leaves)])
	}
}

func BenchmarkGrowPrune(b *testing.B) {
	tr := benchTree(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			tr.Grow()
		} else {
			tr.Prune()
		}
	}
}

func BenchmarkSnapshotRestore(b *testing.B) {
	tr := benchTree(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Restore(tr.Snapshot())
	}
}
