package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"DEBUG":   true,
	"INFO":    true,
	"WARN":    true,
	"WARNING": true,
	"ERROR":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks the config for:
//   - a version string
//   - positive pool sizes, queue depth and timeout
//   - a non-negative source node
//   - known logging level and format
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Engine.Workers < 1 {
		errs = append(errs, fmt.Sprintf("engine.workers must be >= 1, got %d", cfg.Engine.Workers))
	}
	if cfg.Engine.RunWorkers < 1 {
		errs = append(errs, fmt.Sprintf("engine.run_workers must be >= 1, got %d", cfg.Engine.RunWorkers))
	}
	if cfg.Engine.QueueDepth < 1 {
		errs = append(errs, fmt.Sprintf("engine.queue_depth must be >= 1, got %d", cfg.Engine.QueueDepth))
	}
	if cfg.Engine.RunTimeoutMs < 1 {
		errs = append(errs, fmt.Sprintf("engine.run_timeout_ms must be >= 1, got %d", cfg.Engine.RunTimeoutMs))
	}
	if cfg.Graph.Source < 0 {
		errs = append(errs, fmt.Sprintf("graph.source must be >= 0, got %d", cfg.Graph.Source))
	}
	if cfg.Graph.Watch && cfg.Graph.Path == "" {
		errs = append(errs, "graph.watch requires graph.path")
	}
	if !validLogLevels[strings.ToUpper(cfg.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("invalid logging.level %q (valid options: DEBUG, INFO, WARN, ERROR)", cfg.Logging.Level))
	}
	if !validLogFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("invalid logging.format %q (valid options: text, json)", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
