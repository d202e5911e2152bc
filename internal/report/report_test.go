package report_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/report"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

// diamond is 0->1, 0->2, 1->3, 2->3 plus an isolated node 4.
func diamond(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(5)
	require.NoError(t, err)
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func runBoth(t *testing.T, g *graph.Graph, serialSrc, parallelSrc int) (*traversal.State, *traversal.State) {
	t.Helper()
	s, err := traversal.Serial(g, serialSrc)
	require.NoError(t, err)
	p, err := traversal.Parallel(g, parallelSrc, traversal.WithWorkers(3))
	require.NoError(t, err)
	return s, p
}

func TestWriteDistances_Golden(t *testing.T) {
	s, p := runBoth(t, diamond(t), 0, 0)

	var buf bytes.Buffer
	require.NoError(t, report.WriteDistances(&buf, s, p))

	gd := goldie.New(t)
	gd.Assert(t, "distances", buf.Bytes())
}

func TestWriteMatrix_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteMatrix(&buf, diamond(t)))

	gd := goldie.New(t)
	gd.Assert(t, "matrix", buf.Bytes())
}

func TestWriteMatrix_Empty(t *testing.T) {
	g, err := graph.New(0)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, report.WriteMatrix(&buf, g))
	assert.Equal(t, "Adjacency Matrix of the graph is: \n", buf.String())
}

func TestCompare_Match(t *testing.T) {
	s, p := runBoth(t, diamond(t), 0, 0)
	c := report.Compare(s, p)
	assert.True(t, c.Match)
	assert.Equal(t, 5, c.Nodes)
	assert.Empty(t, c.Mismatches)
}

func TestCompare_Mismatch(t *testing.T) {
	// Different sources stand in for a faulty engine.
	s, p := runBoth(t, diamond(t), 0, 1)
	c := report.Compare(s, p)
	assert.False(t, c.Match)
	assert.Equal(t, []report.Mismatch{
		{Node: 0, Serial: 0, Parallel: -1},
		{Node: 1, Serial: 1, Parallel: 0},
		{Node: 2, Serial: 1, Parallel: -1},
		{Node: 3, Serial: 2, Parallel: 1},
	}, c.Mismatches)
}

func TestSummarize(t *testing.T) {
	s, _ := runBoth(t, diamond(t), 0, 0)
	assert.Equal(t, report.Summary{Source: 0, Nodes: 5, Reached: 4, Levels: 3}, report.Summarize(s))
}
