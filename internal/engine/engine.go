package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/logging"
	"github.com/gyaneshwarpardhi/hopbfs/internal/metrics"
	"github.com/gyaneshwarpardhi/hopbfs/internal/report"
	"github.com/gyaneshwarpardhi/hopbfs/internal/run"
	"github.com/gyaneshwarpardhi/hopbfs/internal/telemetry"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

var (
	// ErrQueueFull is returned when the run queue cannot accept another job.
	ErrQueueFull = errors.New("engine: run queue full")

	// ErrTimeout is returned when a job does not finish within run_timeout_ms.
	ErrTimeout = errors.New("engine: run timed out")

	// ErrNoGraph is returned when no graph has been loaded yet.
	ErrNoGraph = errors.New("engine: no graph loaded")
)

// Engine runs traversal jobs against the current graph on a bounded pool.
type Engine struct {
	graph    atomic.Pointer[graph.Graph]
	registry *traversal.Registry
	pool     *workerPool[*runJob, *run.Result]
	conf     *config.EngineConf
	logger   *slog.Logger
	tracer   trace.Tracer
}

type runJob struct {
	ctx context.Context
	req *run.Request
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer sets the tracer used for job and engine spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// New creates an Engine using conf and starts the worker pool. g may be nil
// until the first SwapGraph.
func New(ctx context.Context, g *graph.Graph, reg *traversal.Registry, conf config.EngineConf, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		conf:     &conf,
		logger:   logging.Discard(),
		tracer:   telemetry.Tracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if g != nil {
		e.SwapGraph(g)
	}

	e.pool = newWorkerPool[*runJob, *run.Result](
		ctx,
		conf.RunWorkers,
		conf.QueueDepth,
		func(_ context.Context, j *runJob) (*run.Result, error) {
			return e.process(j.ctx, j.req)
		},
	)
	return e
}

// SwapGraph atomically replaces the graph (used on hot-reload). Jobs already
// running keep the graph they started with.
func (e *Engine) SwapGraph(g *graph.Graph) {
	e.graph.Store(g)
	metrics.GraphNodes.Set(float64(g.Len()))
	metrics.GraphEdges.Set(float64(g.EdgeCount()))
}

// Graph returns the current graph, or nil.
func (e *Engine) Graph() *graph.Graph {
	return e.graph.Load()
}

// Workers returns the default ParallelBFS worker count.
func (e *Engine) Workers() int {
	return e.conf.Workers
}

// ProcessSync runs req on the pool and waits for its result.
func (e *Engine) ProcessSync(ctx context.Context, req *run.Request) (*run.Result, error) {
	if e.graph.Load() == nil {
		return nil, ErrNoGraph
	}

	timeout := time.Duration(e.conf.RunTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resultC := make(chan jobResult[*run.Result], 1)
	if !e.pool.Submit(&runJob{ctx: ctx, req: req}, resultC) {
		metrics.JobsDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.conf.QueueDepth)
	}
	metrics.JobsEnqueued.Inc()
	e.observeQueue()

	select {
	case res := <-resultC:
		if errors.Is(res.err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return res.value, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return nil, ctx.Err()
	}
}

// ProcessAsync enqueues req for background processing; the result is only
// logged. Returns false if the queue is full.
func (e *Engine) ProcessAsync(req *run.Request) bool {
	timeout := time.Duration(e.conf.RunTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	resultC := make(chan jobResult[*run.Result], 1)
	if !e.pool.Submit(&runJob{ctx: ctx, req: req}, resultC) {
		cancel()
		metrics.JobsDropped.Inc()
		return false
	}
	metrics.JobsEnqueued.Inc()
	e.observeQueue()

	go func() {
		defer cancel()
		select {
		case res := <-resultC:
			if res.err != nil {
				e.logger.Warn("async run failed", "request_id", req.ID, "source", req.Source, "error", res.err)
				return
			}
			e.logger.Info("async run complete",
				"request_id", req.ID,
				"run_id", res.value.RunID,
				"match", res.value.Comparison.Match,
				"duration_ms", res.value.DurationMs,
			)
		case <-ctx.Done():
			e.logger.Warn("async run timed out", "request_id", req.ID, "source", req.Source)
		}
	}()
	return true
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) observeQueue() {
	metrics.QueueUtilization.Set(e.QueueUtilization())
}

// process runs both engines from req.Source and compares their distances.
func (e *Engine) process(ctx context.Context, req *run.Request) (*run.Result, error) {
	defer e.observeQueue()
	g := e.graph.Load()
	if g == nil {
		return nil, ErrNoGraph
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, "hopbfs.job", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("request.id", req.ID),
		attribute.Int("bfs.source", req.Source),
		attribute.Int("graph.nodes", g.Len()),
	))
	defer span.End()

	workers := req.Workers
	if workers == 0 {
		workers = e.conf.Workers
	}
	opts := []traversal.Option{
		traversal.WithContext(ctx),
		traversal.WithWorkers(workers),
		traversal.WithMaxDepth(req.MaxDepth),
	}

	serial, serialRun, err := e.runEngine(ctx, traversal.EngineSerial, g, req.Source, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	parallel, parallelRun, err := e.runEngine(ctx, traversal.EngineParallel, g, req.Source, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := &run.Result{
		RunID:      runID,
		Source:     req.Source,
		Workers:    workers,
		Serial:     serialRun,
		Parallel:   parallelRun,
		Comparison: report.Compare(serial, parallel),
		DurationMs: time.Since(start).Milliseconds(),
	}

	metrics.JobsProcessed.Inc()
	metrics.Levels.Observe(float64(parallel.Levels()))
	span.SetAttributes(attribute.Bool("bfs.match", res.Comparison.Match))
	if !res.Comparison.Match {
		metrics.Mismatches.Inc()
		e.logger.Error("distance mismatch",
			"run_id", runID,
			"source", req.Source,
			"workers", workers,
			"mismatches", len(res.Comparison.Mismatches),
		)
	} else {
		e.logger.Debug("run complete", "run_id", runID, "source", req.Source, "reached", parallel.Reached())
	}
	return res, nil
}

func (e *Engine) runEngine(ctx context.Context, name string, g *graph.Graph, source int, opts []traversal.Option) (*traversal.State, run.EngineRun, error) {
	t, err := e.registry.Get(name)
	if err != nil {
		return nil, run.EngineRun{}, err
	}

	_, span := e.tracer.Start(ctx, "hopbfs.traverse."+name)
	defer span.End()
	opts = append(opts[:len(opts):len(opts)], traversal.WithOnLevel(func(level, frontier int) {
		span.AddEvent("level", trace.WithAttributes(
			attribute.Int("bfs.level", level),
			attribute.Int("bfs.frontier", frontier),
		))
	}))

	start := time.Now()
	st, err := t.Traverse(g, source, opts...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	metrics.RunDuration.WithLabelValues(name).Observe(elapsed)
	if err != nil {
		metrics.Runs.WithLabelValues(name, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, run.EngineRun{}, err
	}
	metrics.Runs.WithLabelValues(name, "success").Inc()
	span.SetAttributes(
		attribute.Int("bfs.levels", st.Levels()),
		attribute.Int("bfs.reached", st.Reached()),
	)

	return st, run.EngineRun{
		Engine:     name,
		Summary:    report.Summarize(st),
		Distances:  st.Distances(),
		DurationMs: elapsed,
	}, nil
}

// Shutdown drains the pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
