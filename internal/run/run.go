package run

import (
	"time"

	"github.com/gyaneshwarpardhi/hopbfs/internal/report"
)

// Request is the canonical input model for a traversal job.
type Request struct {
	ID         string    `json:"id"`
	Source     int       `json:"source"`
	Workers    int       `json:"workers"`   // 0 = engine default
	MaxDepth   int       `json:"max_depth"` // 0 = no limit
	ReceivedAt time.Time `json:"-"`
}

// EngineRun is the outcome of one engine within a job.
type EngineRun struct {
	Engine     string         `json:"engine"`
	Summary    report.Summary `json:"summary"`
	Distances  []int          `json:"distances"`
	DurationMs float64        `json:"duration_ms"`
}

// Result is the outcome of a job: both engine runs and their comparison.
type Result struct {
	RunID      string            `json:"run_id"`
	Source     int               `json:"source"`
	Workers    int               `json:"workers"`
	Serial     EngineRun         `json:"serial"`
	Parallel   EngineRun         `json:"parallel"`
	Comparison report.Comparison `json:"comparison"`
	DurationMs int64             `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
}
