package traversal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

var (
	// ErrNilGraph is returned when a traversal is started on a nil graph.
	ErrNilGraph = errors.New("traversal: graph is nil")

	// ErrOptionViolation is returned for an invalid Option value.
	ErrOptionViolation = errors.New("traversal: invalid option")

	// ErrNoPath is returned by State.PathTo for an unreached node.
	ErrNoPath = errors.New("traversal: no path")

	// ErrUnknownEngine is returned by Registry.Get for an unregistered name.
	ErrUnknownEngine = errors.New("traversal: unknown engine")
)

// DefaultWorkers is the Parallel pool size when WithWorkers is not given.
const DefaultWorkers = 4

// Options configures a traversal run.
type Options struct {
	// Ctx is checked between levels (Parallel) or dequeues (Serial).
	Ctx context.Context

	// Workers is the Parallel pool size. Serial ignores it.
	Workers int

	// MaxDepth stops discovery beyond this depth; 0 means no limit.
	MaxDepth int

	// OnLevel is called once per expanded level with its frontier size.
	OnLevel func(level, frontier int)

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns background context, DefaultWorkers, no depth limit
// and a no-op OnLevel hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Workers:  DefaultWorkers,
		MaxDepth: 0,
		OnLevel:  func(int, int) {},
	}
}

// WithContext sets the context used for early stop.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithWorkers sets the Parallel pool size (p >= 1).
func WithWorkers(p int) Option {
	return func(o *Options) {
		if p < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1, got %d", ErrOptionViolation, p)
			return
		}
		o.Workers = p
	}
}

// WithMaxDepth limits discovery to depth d (d >= 0; 0 means no limit).
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: max depth must be >= 0, got %d", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnLevel installs a per-level hook. It runs on the calling goroutine,
// never inside a worker.
func WithOnLevel(fn func(level, frontier int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLevel = fn
		}
	}
}

// prepare applies opts and validates the graph and source.
func prepare(g *graph.Graph, source int, opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if g == nil {
		return o, ErrNilGraph
	}
	if !g.Contains(source) {
		return o, fmt.Errorf("%w: source %d in a graph of %d nodes", graph.ErrIndexOutOfRange, source, g.Len())
	}
	return o, nil
}

// depthAllows reports whether nodes at depth d may be discovered.
func (o *Options) depthAllows(d int) bool {
	return o.MaxDepth == 0 || d <= o.MaxDepth
}
