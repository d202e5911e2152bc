package graph_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/hopbfs/internal/edgelist"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

func TestNew_InvalidSize(t *testing.T) {
	_, err := graph.New(-1)
	require.ErrorIs(t, err, graph.ErrInvalidSize)

	g, err := graph.New(0)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, slices.Collect(g.Neighbors(0)))
}

func TestAddEdge_Directed(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 0))

	assert.True(t, g.HasEdge(1, 0))
	assert.False(t, g.HasEdge(0, 1), "edge 1->0 must not imply 0->1")
}

func TestAddEdge_Idempotent(t *testing.T) {
	once, _ := graph.New(3)
	twice, _ := graph.New(3)

	require.NoError(t, once.AddEdge(0, 1))
	require.NoError(t, twice.AddEdge(0, 1))
	require.NoError(t, twice.AddEdge(0, 1))

	assert.Equal(t, 1, twice.EdgeCount())
	assert.Equal(t, slices.Collect(once.Neighbors(0)), slices.Collect(twice.Neighbors(0)))
	assert.Equal(t, once.EdgeCount(), twice.EdgeCount())
}

func TestAddEdge_OutOfRange(t *testing.T) {
	g, _ := graph.New(3)
	for _, e := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		err := g.AddEdge(e[0], e[1])
		assert.True(t, errors.Is(err, graph.ErrIndexOutOfRange), "AddEdge(%d,%d): got %v", e[0], e[1], err)
	}
	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.HasEdge(-1, 0))
	assert.False(t, g.HasEdge(0, 3))
}

func TestNeighbors_AscendingAcrossWords(t *testing.T) {
	g, _ := graph.New(200)
	for _, v := range []int{199, 64, 3, 130, 63, 0, 65} {
		require.NoError(t, g.AddEdge(5, v))
	}
	want := []int{0, 3, 63, 64, 65, 130, 199}

	assert.Equal(t, want, slices.Collect(g.Neighbors(5)))
	// restartable
	assert.Equal(t, want, slices.Collect(g.Neighbors(5)))
	assert.Equal(t, len(want), g.OutDegree(5))
	assert.Equal(t, 0, g.OutDegree(6))
}

func TestNeighbors_EarlyBreak(t *testing.T) {
	g, _ := graph.New(10)
	for v := 0; v < 10; v++ {
		require.NoError(t, g.AddEdge(0, v))
	}
	var got []int
	for v := range g.Neighbors(0) {
		if v == 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestEdges_Ordered(t *testing.T) {
	g, _ := graph.New(4)
	require.NoError(t, g.AddEdge(2, 3))
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(0, 1))

	var got [][2]int
	for u, v := range g.Edges() {
		got = append(got, [2]int{u, v})
	}
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {2, 3}}, got)
}

func TestBuild(t *testing.T) {
	doc := &edgelist.Document{
		NodeCount: 4,
		Edges: []edgelist.Edge{
			{From: 0, To: 1, Line: 2},
			{From: 0, To: 1, Line: 2},
			{From: 2, To: 3, Line: 3},
		},
	}
	g, err := graph.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuild_OutOfRangeNamesLine(t *testing.T) {
	doc := &edgelist.Document{
		NodeCount: 2,
		Edges:     []edgelist.Edge{{From: 0, To: 1, Line: 2}, {From: 1, To: 7, Line: 5}},
	}
	_, err := graph.Build(doc)
	require.ErrorIs(t, err, graph.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "line 5")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n0 1 1 2\n"), 0o644))

	g, err := graph.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.EdgeCount())

	_, err = graph.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, edgelist.ErrFileNotFound)
}

func TestLoadFile_Sample(t *testing.T) {
	g, err := graph.LoadFile(filepath.Join("..", "..", "testdata", "test.txt"))
	require.NoError(t, err)
	assert.Equal(t, 10, g.Len())
	assert.Equal(t, 11, g.EdgeCount())
}
