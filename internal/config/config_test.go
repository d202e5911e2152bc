package config_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
)

const sample = `version: v1
engine:
  workers: 8
  run_workers: 3
graph:
  path: graphs/test.txt
  source: 2
  watch: true
logging:
  level: DEBUG
  format: json
tracing:
  enabled: true
  endpoint: http://localhost:4318
server:
  addr: ":9090"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hopbfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse_ValuesAndDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.Equal(t, 3, cfg.Engine.RunWorkers)
	assert.Equal(t, 64, cfg.Engine.QueueDepth, "default")
	assert.Equal(t, 5000, cfg.Engine.RunTimeoutMs, "default")
	assert.Equal(t, config.GraphConf{Path: "graphs/test.txt", Source: 2, Watch: true}, cfg.Graph)
	assert.Equal(t, config.LoggingConf{Level: "DEBUG", Format: "json"}, cfg.Logging)
	assert.Equal(t, config.TracingConf{Enabled: true, Endpoint: "http://localhost:4318"}, cfg.Tracing)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.NoError(t, config.Validate(cfg))
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Version = ""
	cfg.Engine.Workers = -1
	cfg.Graph.Source = -3
	cfg.Graph.Watch = true
	cfg.Logging.Level = "LOUD"
	cfg.Logging.Format = "xml"

	err := config.Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{
		"version is required",
		"engine.workers",
		"graph.source",
		"graph.watch requires graph.path",
		"logging.level",
		"logging.format",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoader_LoadAndReload(t *testing.T) {
	path := writeConfig(t, sample)
	l, err := config.NewLoader(path)
	require.NoError(t, err)
	assert.Equal(t, 8, l.Config().Engine.Workers)
	assert.Equal(t, path, l.Path())

	var seen atomic.Int32
	l.OnChange(func(c *config.Config) { seen.Store(int32(c.Engine.Workers)) })

	require.NoError(t, os.WriteFile(path, []byte("version: v1\nengine:\n  workers: 2\n"), 0o644))
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Engine.Workers)
	assert.Equal(t, int32(2), seen.Load())
	assert.Same(t, cfg, l.Config())
}

func TestLoader_Errors(t *testing.T) {
	_, err := config.NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = config.NewLoader(writeConfig(t, "version: [unterminated"))
	assert.ErrorContains(t, err, "parse config")

	_, err = config.NewLoader(writeConfig(t, "engine:\n  workers: 2\n"))
	assert.ErrorContains(t, err, "version is required")
}

func TestLoader_ReloadKeepsOldConfigOnError(t *testing.T) {
	path := writeConfig(t, sample)
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("version: v1\nlogging:\n  level: LOUD\n"), 0o644))
	_, err = l.Reload()
	require.Error(t, err)
	assert.Equal(t, 8, l.Config().Engine.Workers)
}

func TestLoader_Watch(t *testing.T) {
	path := writeConfig(t, sample)
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("version: v2\n"), 0o644))
	require.Eventually(t, func() bool {
		return l.Config().Version == "v2"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStaticLoader(t *testing.T) {
	cfg := config.Default()
	l := config.NewStatic(cfg)
	assert.Empty(t, l.Path())

	var calls atomic.Int32
	l.OnChange(func(*config.Config) { calls.Add(1) })
	got, err := l.Reload()
	require.NoError(t, err)
	assert.Same(t, cfg, got)
	assert.Equal(t, int32(1), calls.Load())

	_, err = l.Watch()
	assert.Error(t, err)
}

func TestShippedConfig(t *testing.T) {
	l, err := config.NewLoader(filepath.Join("..", "..", "configs", "hopbfs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "testdata/test.txt", l.Config().Graph.Path)
	assert.Equal(t, 4, l.Config().Engine.Workers)
}

func TestLoader_WatchReportsInvalidReload(t *testing.T) {
	path := writeConfig(t, sample)
	l, err := config.NewLoader(path)
	require.NoError(t, err)

	var failures atomic.Int32
	l.OnError(func(error) { failures.Add(1) })
	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("version: v1\nlogging:\n  level: LOUD\n"), 0o644))
	require.Eventually(t, func() bool {
		return failures.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 8, l.Config().Engine.Workers)
}
