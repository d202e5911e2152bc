package edgelist

import "errors"

var (
	// ErrFormat is returned when the node count or an edge token cannot be parsed.
	ErrFormat = errors.New("edgelist: malformed input")

	// ErrFileNotFound is returned by Load when the input file does not exist.
	ErrFileNotFound = errors.New("edgelist: file not found")

	// ErrIO is returned when the input cannot be read.
	ErrIO = errors.New("edgelist: read failed")
)
