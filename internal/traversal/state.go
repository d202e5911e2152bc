package traversal

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// Unreached is the distance of a node the run never discovered.
const Unreached = -1

// noParent marks the source and undiscovered nodes in State.parent.
const noParent = -1

// State is the per-run discovery bookkeeping: one discovered flag, one
// distance and one BFS-tree parent per node. A State belongs to exactly one
// run and is read-only once the engine returns it.
type State struct {
	source     int
	discovered []atomic.Bool
	distance   []int
	parent     []int
	order      []int
	levels     int
}

func newState(n, source int) *State {
	st := &State{
		source:     source,
		discovered: make([]atomic.Bool, n),
		distance:   make([]int, n),
		parent:     make([]int, n),
		order:      make([]int, 0, n),
	}
	for i := range st.distance {
		st.distance[i] = Unreached
		st.parent[i] = noParent
	}
	return st
}

// claim flips discovered[v] from false to true. Exactly one caller wins for
// any v, no matter how many goroutines race on it.
func (s *State) claim(v int) bool {
	if s.discovered[v].Load() {
		return false
	}
	return s.discovered[v].CompareAndSwap(false, true)
}

// settle records the distance and parent of a node whose claim was just won.
func (s *State) settle(v, dist, parent int) {
	s.distance[v] = dist
	s.parent[v] = parent
}

// Source returns the node the run started from.
func (s *State) Source() int { return s.source }

// Len returns the number of nodes covered by the State.
func (s *State) Len() int { return len(s.distance) }

// Discovered reports whether v was reached.
func (s *State) Discovered(v int) bool {
	if v < 0 || v >= len(s.discovered) {
		return false
	}
	return s.discovered[v].Load()
}

// Distance returns the hop count from the source to v, or Unreached.
func (s *State) Distance(v int) int {
	if v < 0 || v >= len(s.distance) {
		return Unreached
	}
	return s.distance[v]
}

// Distances returns a copy of the distance array indexed by node.
func (s *State) Distances() []int {
	return slices.Clone(s.distance)
}

// Parent returns the node v was discovered from, or -1 for the source and
// unreached nodes.
func (s *State) Parent(v int) int {
	if v < 0 || v >= len(s.parent) {
		return noParent
	}
	return s.parent[v]
}

// Order returns the discovered nodes in the order the engine settled them.
// Within one level Serial follows queue order, Parallel ascending index.
func (s *State) Order() []int {
	return slices.Clone(s.order)
}

// Reached returns how many nodes were discovered, the source included.
func (s *State) Reached() int { return len(s.order) }

// Levels returns the number of BFS levels expanded (eccentricity of the
// source plus one; 0 for an empty run).
func (s *State) Levels() int { return s.levels }

// PathTo returns the BFS-tree path source→…→v.
// Returns ErrNoPath if v was not reached.
func (s *State) PathTo(v int) ([]int, error) {
	if !s.Discovered(v) {
		return nil, fmt.Errorf("%w: node %d from %d", ErrNoPath, v, s.source)
	}
	path := make([]int, 0, s.distance[v]+1)
	for cur := v; cur != noParent; cur = s.parent[cur] {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path, nil
}
