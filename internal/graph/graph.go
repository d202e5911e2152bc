// Package graph holds the directed, unweighted graph that both traversal
// engines read. Nodes are dense indices in [0, n) owned by the Graph; the
// adjacency relation is stored as one bitset row per node.
package graph

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
)

var (
	// ErrIndexOutOfRange is returned when a node index falls outside [0, n).
	ErrIndexOutOfRange = errors.New("graph: node index out of range")

	// ErrInvalidSize is returned by New for a negative node count.
	ErrInvalidSize = errors.New("graph: invalid node count")
)

const wordBits = 64

// Graph is a dense directed adjacency relation over n nodes.
// It is not safe for concurrent mutation; once built it is read-only and
// may be shared by any number of concurrent traversals.
type Graph struct {
	n     int
	words int      // uint64 words per row
	adj   []uint64 // n rows of words each, row-major
	edges int
}

// New allocates a graph with n isolated nodes.
func New(n int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	words := (n + wordBits - 1) / wordBits
	return &Graph{
		n:     n,
		words: words,
		adj:   make([]uint64, n*words),
	}, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return g.n }

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Contains reports whether v is a valid node index.
func (g *Graph) Contains(v int) bool { return v >= 0 && v < g.n }

// AddEdge inserts the directed edge s→d. Inserting an existing edge is a no-op.
func (g *Graph) AddEdge(s, d int) error {
	if !g.Contains(s) || !g.Contains(d) {
		return fmt.Errorf("%w: edge %d->%d in a graph of %d nodes", ErrIndexOutOfRange, s, d, g.n)
	}
	i, mask := g.slot(s, d)
	if g.adj[i]&mask != 0 {
		return nil
	}
	g.adj[i] |= mask
	g.edges++
	return nil
}

// HasEdge reports whether the directed edge u→v exists.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.Contains(u) || !g.Contains(v) {
		return false
	}
	i, mask := g.slot(u, v)
	return g.adj[i]&mask != 0
}

// Neighbors yields every v with u→v in ascending order. The sequence is
// lazy and can be ranged over any number of times; an invalid u yields
// nothing.
func (g *Graph) Neighbors(u int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if !g.Contains(u) {
			return
		}
		row := g.adj[u*g.words : (u+1)*g.words]
		for wi, w := range row {
			for w != 0 {
				if !yield(wi*wordBits + bits.TrailingZeros64(w)) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// OutDegree returns the number of edges leaving u.
func (g *Graph) OutDegree(u int) int {
	if !g.Contains(u) {
		return 0
	}
	deg := 0
	for _, w := range g.adj[u*g.words : (u+1)*g.words] {
		deg += bits.OnesCount64(w)
	}
	return deg
}

// Edges yields every edge (u, v) ordered by u, then v.
func (g *Graph) Edges() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for u := 0; u < g.n; u++ {
			for v := range g.Neighbors(u) {
				if !yield(u, v) {
					return
				}
			}
		}
	}
}

func (g *Graph) slot(u, v int) (int, uint64) {
	return u*g.words + v/wordBits, 1 << (uint(v) % wordBits)
}
