package traversal

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

// Parallel runs a level-synchronous BFS from source with a fixed pool of
// workers per level (WithWorkers, default DefaultWorkers).
//
// Per level k:
//  1. the frontier is cut into at most P contiguous chunks;
//  2. each worker scans the neighbors of its chunk and claims undiscovered
//     targets atomically; the winner sets distance k+1 and buffers the node
//     locally;
//  3. Wait joins the workers, then the buffers are merged and sorted into
//     the frontier of level k+1.
//
// The context is checked before each level. Distances equal Serial's for
// every node.
func Parallel(g *graph.Graph, source int, opts ...Option) (*State, error) {
	o, err := prepare(g, source, opts)
	if err != nil {
		return nil, err
	}

	st := newState(g.Len(), source)
	st.claim(source)
	st.settle(source, 0, noParent)

	x := &expander{
		graph:   g,
		state:   st,
		buffers: make([][]int, o.Workers),
	}

	frontier := []int{source}
	for level := 0; len(frontier) > 0; level++ {
		if err := o.Ctx.Err(); err != nil {
			return st, err
		}
		st.levels = level + 1
		st.order = append(st.order, frontier...)
		o.OnLevel(level, len(frontier))

		if !o.depthAllows(level + 1) {
			break
		}
		frontier = x.expand(frontier, level)
	}
	return st, nil
}

// expander holds the state shared by the levels of one Parallel run.
// buffers[w] is touched only by worker w while a level runs.
type expander struct {
	graph   *graph.Graph
	state   *State
	buffers [][]int
}

// expand discovers every node at distance level+1 and returns them sorted.
func (x *expander) expand(frontier []int, level int) []int {
	workers := min(len(x.buffers), len(frontier))
	chunk := (len(frontier) + workers - 1) / workers

	// Rounding up the chunk size can leave trailing workers idle; only the
	// first used buffers hold this level's output.
	var eg errgroup.Group
	used := 0
	for lo := 0; lo < len(frontier); lo += chunk {
		hi := min(lo+chunk, len(frontier))
		w := used
		used++
		eg.Go(func() error {
			x.buffers[w] = x.scan(frontier[lo:hi], level+1, x.buffers[w][:0])
			return nil
		})
	}
	// Workers never fail; Wait is the level barrier.
	_ = eg.Wait()

	size := 0
	for _, buf := range x.buffers[:used] {
		size += len(buf)
	}
	next := make([]int, 0, size)
	for _, buf := range x.buffers[:used] {
		next = append(next, buf...)
	}
	slices.Sort(next)
	return next
}

// scan claims the undiscovered neighbors of chunk and appends the ones this
// worker won to local.
func (x *expander) scan(chunk []int, dist int, local []int) []int {
	for _, u := range chunk {
		for v := range x.graph.Neighbors(u) {
			if x.state.claim(v) {
				x.state.settle(v, dist, u)
				local = append(local, v)
			}
		}
	}
	return local
}
