package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/engine"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/report"
	"github.com/gyaneshwarpardhi/hopbfs/internal/run"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader, logger *slog.Logger) http.Handler {
	h := &Handler{eng: eng, loader: loader, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/traversals", h.traverse)
	h.mux.HandleFunc("POST /v1/traversals/batch", h.traverseBatch)
	h.mux.HandleFunc("GET /v1/graph", h.describeGraph)
	h.mux.HandleFunc("GET /v1/graph/matrix", h.graphMatrix)
	h.mux.HandleFunc("POST /v1/graph/reload", h.reloadGraph)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(logger, h.mux)
}

// traversalRequest is the body of POST /v1/traversals. Source defaults to
// graph.source from the config when omitted.
type traversalRequest struct {
	ID       string `json:"id"`
	Source   *int   `json:"source"`
	Workers  int    `json:"workers"`
	MaxDepth int    `json:"max_depth"`
}

func (h *Handler) toRun(tr traversalRequest, now time.Time) *run.Request {
	req := &run.Request{
		ID:         tr.ID,
		Source:     h.loader.Config().Graph.Source,
		Workers:    tr.Workers,
		MaxDepth:   tr.MaxDepth,
		ReceivedAt: now,
	}
	if tr.Source != nil {
		req.Source = *tr.Source
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return req
}

// POST /v1/traversals runs both engines synchronously and compares them.
func (h *Handler) traverse(w http.ResponseWriter, r *http.Request) {
	var tr traversalRequest
	if err := json.NewDecoder(r.Body).Decode(&tr); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	res, err := h.eng.ProcessSync(r.Context(), h.toRun(tr, time.Now()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/traversals/batch queues up to maxBatchSize traversals.
func (h *Handler) traverseBatch(w http.ResponseWriter, r *http.Request) {
	var batch []traversalRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(batch) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one traversal")
		return
	}
	if len(batch) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(batch), maxBatchSize))
		return
	}
	if h.eng.Graph() == nil {
		writeError(w, http.StatusServiceUnavailable, engine.ErrNoGraph.Error())
		return
	}

	now := time.Now()
	queued := 0
	for _, tr := range batch {
		if h.eng.ProcessAsync(h.toRun(tr, now)) {
			queued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   uuid.NewString(),
		"total":    len(batch),
		"queued":   queued,
		"rejected": len(batch) - queued,
	})
}

// GET /v1/graph describes the loaded graph.
func (h *Handler) describeGraph(w http.ResponseWriter, r *http.Request) {
	g := h.eng.Graph()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, engine.ErrNoGraph.Error())
		return
	}
	cfg := h.loader.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"path":    cfg.Graph.Path,
		"source":  cfg.Graph.Source,
		"nodes":   g.Len(),
		"edges":   g.EdgeCount(),
		"workers": h.eng.Workers(),
	})
}

// GET /v1/graph/matrix dumps the adjacency matrix as text.
func (h *Handler) graphMatrix(w http.ResponseWriter, r *http.Request) {
	g := h.eng.Graph()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, engine.ErrNoGraph.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := report.WriteMatrix(w, g); err != nil {
		h.logger.Warn("matrix write failed", "error", err)
	}
}

// POST /v1/graph/reload re-reads the config and the graph file from disk.
func (h *Handler) reloadGraph(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cfg.Graph.Path == "" {
		writeError(w, http.StatusConflict, "graph.path is not configured")
		return
	}
	g, err := graph.LoadFile(cfg.Graph.Path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.eng.SwapGraph(g)
	h.logger.Info("graph reloaded", "path", cfg.Graph.Path, "nodes", g.Len(), "edges", g.EdgeCount())
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"nodes":    g.Len(),
		"edges":    g.EdgeCount(),
	})
}

// GET /healthz is always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz is 503 without a graph or when the run queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	switch {
	case h.eng.Graph() == nil:
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":            "no_graph",
			"queue_utilization": util,
		})
	case util > 0.8:
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":            "overloaded",
			"queue_utilization": util,
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "ready",
			"queue_utilization": util,
		})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrIndexOutOfRange), errors.Is(err, traversal.ErrOptionViolation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrNoGraph):
		return http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
