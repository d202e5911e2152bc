package commands

import (
	"log/slog"
	"sync"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/edgelist"
	"github.com/gyaneshwarpardhi/hopbfs/internal/engine"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
)

// graphReloader keeps the engine's graph in step with the graph section of
// the config: it rebuilds on config changes and owns the edge-list watcher.
// engine.* settings are fixed at startup.
type graphReloader struct {
	eng    *engine.Engine
	logger *slog.Logger

	mu   sync.Mutex
	conf config.GraphConf
	stop func()
}

func newGraphReloader(eng *engine.Engine, logger *slog.Logger) *graphReloader {
	return &graphReloader{eng: eng, logger: logger}
}

// Start records the startup graph settings and starts the watcher; the
// initial graph is loaded by the caller.
func (r *graphReloader) Start(conf config.GraphConf) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retarget(conf)
}

// Apply rebuilds the graph from conf.Path and re-targets the watcher when
// the path or the watch flag changed. A failed build keeps the old graph.
func (r *graphReloader) Apply(conf config.GraphConf) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conf.Path != "" {
		if g, err := graph.LoadFile(conf.Path); err != nil {
			r.logger.Warn("graph reload skipped", "path", conf.Path, "err", err)
		} else {
			r.eng.SwapGraph(g)
			r.logger.Info("graph loaded", "path", conf.Path, "nodes", g.Len(), "edges", g.EdgeCount())
		}
	}
	if conf.Path != r.conf.Path || conf.Watch != r.conf.Watch {
		r.retarget(conf)
	}
}

func (r *graphReloader) retarget(conf config.GraphConf) {
	r.conf = conf
	r.stopWatch()
	if !conf.Watch || conf.Path == "" {
		return
	}
	stop, err := edgelist.Watch(conf.Path, r.swap, func(err error) {
		r.logger.Warn("graph reload skipped", "err", err)
	})
	if err != nil {
		r.logger.Warn("graph watcher unavailable (hot-reload disabled)", "path", conf.Path, "err", err)
		return
	}
	r.stop = stop
}

func (r *graphReloader) swap(doc *edgelist.Document) {
	g, err := graph.Build(doc)
	if err != nil {
		r.logger.Warn("graph reload skipped", "path", doc.Path, "err", err)
		return
	}
	r.eng.SwapGraph(g)
	r.logger.Info("graph hot-reloaded", "path", doc.Path, "nodes", g.Len(), "edges", g.EdgeCount())
}

// Close stops the edge-list watcher.
func (r *graphReloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopWatch()
}

func (r *graphReloader) stopWatch() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}
