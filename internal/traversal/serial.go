package traversal

import (
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

// Serial runs the reference single-threaded BFS from source.
//
// The queue is a slice with a moving head; every node is appended and
// popped at most once. On cancellation the partially filled State is
// returned together with the context error.
func Serial(g *graph.Graph, source int, opts ...Option) (*State, error) {
	o, err := prepare(g, source, opts)
	if err != nil {
		return nil, err
	}

	st := newState(g.Len(), source)
	st.claim(source)
	st.settle(source, 0, noParent)
	st.order = append(st.order, source)

	queue := make([]int, 0, g.Len())
	queue = append(queue, source)
	level := -1
	for head := 0; head < len(queue); {
		select {
		case <-o.Ctx.Done():
			return st, o.Ctx.Err()
		default:
		}

		u := queue[head]
		head++
		du := st.distance[u]

		// Queue entries are sorted by distance, so the first node of a new
		// level sees the whole level in queue[head-1:].
		if du > level {
			level = du
			st.levels = level + 1
			o.OnLevel(level, len(queue)-head+1)
		}
		if !o.depthAllows(du + 1) {
			continue
		}

		for v := range g.Neighbors(u) {
			if st.claim(v) {
				st.settle(v, du+1, u)
				st.order = append(st.order, v)
				queue = append(queue, v)
			}
		}
	}
	return st, nil
}
