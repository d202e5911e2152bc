package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hopbfs_jobs_enqueued_total",
		Help: "Total number of traversal jobs placed on the run queue.",
	})

	JobsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hopbfs_jobs_processed_total",
		Help: "Total number of traversal jobs fully processed.",
	})

	JobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hopbfs_jobs_dropped_total",
		Help: "Total number of traversal jobs rejected due to a full queue.",
	})

	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopbfs_runs_total",
		Help: "Total number of engine runs, labelled by engine and status.",
	}, []string{"engine", "status"})

	Mismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hopbfs_distance_mismatches_total",
		Help: "Total number of jobs whose serial and parallel distances differed.",
	})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hopbfs_run_duration_ms",
		Help:    "Engine run latency in milliseconds, labelled by engine.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
	}, []string{"engine"})

	Levels = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hopbfs_levels",
		Help:    "Number of BFS levels expanded per job.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hopbfs_queue_utilization_ratio",
		Help: "Current run queue utilization (0–1).",
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hopbfs_graph_nodes",
		Help: "Node count of the currently loaded graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hopbfs_graph_edges",
		Help: "Edge count of the currently loaded graph.",
	})
)
