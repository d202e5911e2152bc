// Package edgelist reads the plain-text edge-list format:
//
//	# comment lines are allowed before the header
//	4
//	0 1 0 2
//	1 3
//	2 3
//
// The first non-comment line is the node count. Every following line holds
// whitespace-separated (from, to) pairs; an unpaired trailing token on a
// line is ignored.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input line; dense rows of a large graph can
// be long.
const maxLineBytes = 16 << 20

// Edge is a directed s→d pair together with the line it was read from.
type Edge struct {
	From int
	To   int
	Line int
}

// Document is the parsed content of an edge-list file.
// Endpoints are not range-checked here; graph.Build does that.
type Document struct {
	Path      string
	NodeCount int
	Edges     []Edge
}

// Load opens path and parses it.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse reads an edge-list document from r.
func Parse(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	doc := &Document{NodeCount: -1}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if doc.NodeCount < 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			n, err := strconv.Atoi(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node count %q is not an integer", ErrFormat, lineNo, trimmed)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: line %d: negative node count %d", ErrFormat, lineNo, n)
			}
			doc.NodeCount = n
			continue
		}

		if err := parseEdges(doc, line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if doc.NodeCount < 0 {
		return nil, fmt.Errorf("%w: missing node count", ErrFormat)
	}
	return doc, nil
}

// parseEdges appends every complete (from, to) pair on line to doc.
func parseEdges(doc *Document, line string, lineNo int) error {
	tokens := strings.Fields(line)
	for i := 0; i+1 < len(tokens); i += 2 {
		from, err := strconv.Atoi(tokens[i])
		if err != nil {
			return fmt.Errorf("%w: line %d: edge source %q is not an integer", ErrFormat, lineNo, tokens[i])
		}
		to, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return fmt.Errorf("%w: line %d: edge target %q is not an integer", ErrFormat, lineNo, tokens[i+1])
		}
		doc.Edges = append(doc.Edges, Edge{From: from, To: to, Line: lineNo})
	}
	return nil
}
