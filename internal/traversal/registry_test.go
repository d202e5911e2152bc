package traversal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

func TestDefaultRegistry(t *testing.T) {
	r := traversal.NewDefaultRegistry()
	assert.Equal(t, []string{traversal.EngineParallel, traversal.EngineSerial}, r.Names())

	g := mustGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
	for _, name := range r.Names() {
		eng, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, eng.Name())

		st, err := eng.Traverse(g, 0, traversal.WithWorkers(2))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, st.Distances())
	}
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := traversal.NewRegistry().Get("dfs")
	assert.ErrorIs(t, err, traversal.ErrUnknownEngine)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := traversal.NewRegistry()
	fn := func(g *graph.Graph, source int, opts ...traversal.Option) (*traversal.State, error) {
		return traversal.Serial(g, source, opts...)
	}
	r.Register(traversal.NewTraverser("x", fn))
	assert.Panics(t, func() { r.Register(traversal.NewTraverser("x", fn)) })
}
