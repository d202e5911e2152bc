// Package report compares and prints the results of the two traversal
// engines.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

// Mismatch is a node whose distances differ between the engines.
type Mismatch struct {
	Node     int `json:"node"`
	Serial   int `json:"serial"`
	Parallel int `json:"parallel"`
}

// Comparison is the node-by-node verdict of two runs.
type Comparison struct {
	Match      bool       `json:"match"`
	Nodes      int        `json:"nodes"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Summary describes one run.
type Summary struct {
	Source  int `json:"source"`
	Nodes   int `json:"nodes"`
	Reached int `json:"reached"`
	Levels  int `json:"levels"`
}

// Summarize extracts the headline numbers of st.
func Summarize(st *traversal.State) Summary {
	return Summary{
		Source:  st.Source(),
		Nodes:   st.Len(),
		Reached: st.Reached(),
		Levels:  st.Levels(),
	}
}

// Compare checks the two distance arrays node by node.
func Compare(serial, parallel *traversal.State) Comparison {
	n := max(serial.Len(), parallel.Len())
	c := Comparison{Nodes: n}
	for v := 0; v < n; v++ {
		ds, dp := serial.Distance(v), parallel.Distance(v)
		if ds != dp {
			c.Mismatches = append(c.Mismatches, Mismatch{Node: v, Serial: ds, Parallel: dp})
		}
	}
	c.Match = len(c.Mismatches) == 0
	return c
}

const rule = "--------|--------|--------\n"

// WriteDistances prints the node-indexed distance table of both runs.
func WriteDistances(w io.Writer, serial, parallel *traversal.State) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Node ID\t|Serial\t |Parallel\n")
	fmt.Fprint(bw, "\t|Distance|Distance\n")
	fmt.Fprint(bw, rule)
	n := max(serial.Len(), parallel.Len())
	for v := 0; v < n; v++ {
		fmt.Fprintf(bw, "%d\t|%d\t |%d\n", v, serial.Distance(v), parallel.Distance(v))
	}
	fmt.Fprint(bw, rule)
	return bw.Flush()
}

// WriteMatrix dumps the adjacency matrix of g, one comma-separated row of
// 0/1 per node.
func WriteMatrix(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Adjacency Matrix of the graph is: ")
	for u := 0; u < g.Len(); u++ {
		for v := 0; v < g.Len(); v++ {
			if v > 0 {
				bw.WriteString(", ")
			}
			if g.HasEdge(u, v) {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
