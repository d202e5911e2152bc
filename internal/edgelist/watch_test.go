package edgelist_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/hopbfs/internal/edgelist"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n0 1\n"), 0o644))

	var latest atomic.Pointer[edgelist.Document]
	stop, err := edgelist.Watch(path, func(doc *edgelist.Document) {
		latest.Store(doc)
	}, nil)
	require.NoError(t, err)
	defer stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("9\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("5\n0 1 1 2\n"), 0o644))

	require.Eventually(t, func() bool {
		doc := latest.Load()
		return doc != nil && doc.NodeCount == 5 && len(doc.Edges) == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_ReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n"), 0o644))

	var failures atomic.Int32
	stop, err := edgelist.Watch(path, func(*edgelist.Document) {}, func(error) {
		failures.Add(1)
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("not-a-number\n"), 0o644))

	require.Eventually(t, func() bool {
		return failures.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := edgelist.Watch(filepath.Join(t.TempDir(), "nope", "g.txt"), func(*edgelist.Document) {}, nil)
	require.Error(t, err)
}
