package config

// Config is the top-level YAML structure.
type Config struct {
	Version string      `yaml:"version"`
	Engine  EngineConf  `yaml:"engine"`
	Graph   GraphConf   `yaml:"graph"`
	Logging LoggingConf `yaml:"logging"`
	Tracing TracingConf `yaml:"tracing"`
	Server  ServerConf  `yaml:"server"`
}

// EngineConf holds tunable concurrency settings.
type EngineConf struct {
	Workers      int `yaml:"workers"`     // ParallelBFS pool size per level
	RunWorkers   int `yaml:"run_workers"` // traversal jobs processed concurrently
	QueueDepth   int `yaml:"queue_depth"`
	RunTimeoutMs int `yaml:"run_timeout_ms"`
}

// GraphConf locates the edge-list input.
type GraphConf struct {
	Path   string `yaml:"path"`
	Source int    `yaml:"source"`
	Watch  bool   `yaml:"watch"` // hot-reload the graph when the file changes
}

// LoggingConf selects slog level and handler.
type LoggingConf struct {
	Level  string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `yaml:"format"` // text, json
}

// TracingConf configures OpenTelemetry export.
type TracingConf struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // OTLP/HTTP URL; empty = discard
}

// ServerConf configures the HTTP service.
type ServerConf struct {
	Addr string `yaml:"addr"`
}
