package graph

import (
	"fmt"

	"github.com/gyaneshwarpardhi/hopbfs/internal/edgelist"
)

// Build constructs a Graph from a parsed edge-list document.
// All endpoints are range-checked here; a bad edge fails the whole build.
func Build(doc *edgelist.Document) (*Graph, error) {
	g, err := New(doc.NodeCount)
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("line %d: %w", e.Line, err)
		}
	}
	return g, nil
}

// LoadFile reads and builds the edge-list graph at path.
func LoadFile(path string) (*Graph, error) {
	doc, err := edgelist.Load(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}
