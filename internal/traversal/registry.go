package traversal

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

// Engine names registered by NewDefaultRegistry.
const (
	EngineSerial   = "serial"
	EngineParallel = "parallel"
)

// Traverser is the interface every BFS engine satisfies.
type Traverser interface {
	// Name returns the key the engine is registered under.
	Name() string
	// Traverse runs the engine from source and returns its own State.
	Traverse(g *graph.Graph, source int, opts ...Option) (*State, error)
}

// Func adapts a plain engine function to Traverser.
type Func func(g *graph.Graph, source int, opts ...Option) (*State, error)

type namedFunc struct {
	name string
	fn   Func
}

func (n namedFunc) Name() string { return n.name }

func (n namedFunc) Traverse(g *graph.Graph, source int, opts ...Option) (*State, error) {
	return n.fn(g, source, opts...)
}

// NewTraverser wraps fn as a Traverser called name.
func NewTraverser(name string, fn Func) Traverser {
	return namedFunc{name: name, fn: fn}
}

// Registry maps engine names to Traversers.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Traverser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Traverser)}
}

// NewDefaultRegistry returns a Registry holding Serial and Parallel.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewTraverser(EngineSerial, Serial))
	r.Register(NewTraverser(EngineParallel, Parallel))
	return r
}

// Register adds an engine. Panics on duplicate names to surface misconfiguration early.
func (r *Registry) Register(t Traverser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.engines[t.Name()]; exists {
		panic(fmt.Sprintf("traversal registry: duplicate engine %q", t.Name()))
	}
	r.engines[t.Name()] = t
}

// Get returns the engine registered under name.
func (r *Registry) Get(name string) (Traverser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return t, nil
}

// Names returns all registered engine names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.engines))
	for k := range r.engines {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
