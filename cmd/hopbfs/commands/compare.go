package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/logging"
	"github.com/gyaneshwarpardhi/hopbfs/internal/report"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

// errMismatch makes compare exit non-zero when the engines disagree.
var errMismatch = errors.New("serial and parallel distances differ")

type compareOptions struct {
	input    string
	source   int
	workers  int
	maxDepth int
	matrix   bool
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both engines on an edge-list file and compare distances",
		Long: `Load an edge-list graph, run the serial and the parallel BFS from the
source node, print both distance columns and verify they match.

Example:
  hopbfs compare --input test.txt --source 0 --workers 4 --matrix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "test.txt", "Edge-list file")
	f.IntVarP(&opts.source, "source", "s", 0, "Source node")
	f.IntVarP(&opts.workers, "workers", "w", traversal.DefaultWorkers, "Parallel BFS workers per level")
	f.IntVar(&opts.maxDepth, "max-depth", 0, "Stop discovery beyond this depth (0 = unlimited)")
	f.BoolVar(&opts.matrix, "matrix", false, "Print the adjacency matrix first")
	return cmd
}

// fromConfig takes graph and engine settings from cfg for every flag the
// user did not set explicitly.
func (o *compareOptions) fromConfig(flags *pflag.FlagSet, cfg *config.Config) {
	if !flags.Changed("input") && cfg.Graph.Path != "" {
		o.input = cfg.Graph.Path
	}
	if !flags.Changed("source") {
		o.source = cfg.Graph.Source
	}
	if !flags.Changed("workers") {
		o.workers = cfg.Engine.Workers
	}
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions) error {
	out := cmd.OutOrStdout()
	logger := root.logger(cmd.ErrOrStderr())

	if root.cfgFile != "" {
		l, err := root.loader()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg := l.Config()
		opts.fromConfig(cmd.Flags(), cfg)
		logger = logging.New(cmd.ErrOrStderr(), cfg.Logging)
	}

	g, err := graph.LoadFile(opts.input)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "path", opts.input, "nodes", g.Len(), "edges", g.EdgeCount())

	// Echo the node-count header the way it was read.
	fmt.Fprintln(out, g.Len())

	if opts.matrix {
		if err := report.WriteMatrix(out, g); err != nil {
			return err
		}
	}

	reg := traversal.NewDefaultRegistry()
	tOpts := []traversal.Option{
		traversal.WithContext(cmd.Context()),
		traversal.WithWorkers(opts.workers),
		traversal.WithMaxDepth(opts.maxDepth),
	}

	states := make(map[string]*traversal.State, 2)
	elapsed := make(map[string]time.Duration, 2)
	for _, name := range []string{traversal.EngineSerial, traversal.EngineParallel} {
		t, err := reg.Get(name)
		if err != nil {
			return err
		}
		start := time.Now()
		st, err := t.Traverse(g, opts.source, tOpts...)
		if err != nil {
			return fmt.Errorf("%s bfs: %w", name, err)
		}
		elapsed[name] = time.Since(start)
		states[name] = st
		logger.Debug("bfs done", "engine", name, "reached", st.Reached(), "levels", st.Levels(), "elapsed", elapsed[name])
	}

	serial, parallel := states[traversal.EngineSerial], states[traversal.EngineParallel]
	if err := report.WriteDistances(out, serial, parallel); err != nil {
		return err
	}

	cmp := report.Compare(serial, parallel)
	sum := report.Summarize(parallel)
	detail := fmt.Sprintf(" source=%d reached=%d/%d levels=%d workers=%d serial=%s parallel=%s",
		sum.Source, sum.Reached, sum.Nodes, sum.Levels, opts.workers,
		elapsed[traversal.EngineSerial].Round(time.Microsecond),
		elapsed[traversal.EngineParallel].Round(time.Microsecond),
	)
	if !cmp.Match {
		fmt.Fprintln(out, failStyle.Render("MISMATCH")+detail)
		for _, m := range cmp.Mismatches {
			logger.Error("distance mismatch", "node", m.Node, "serial", m.Serial, "parallel", m.Parallel)
		}
		return fmt.Errorf("%w: %d of %d nodes", errMismatch, len(cmp.Mismatches), cmp.Nodes)
	}
	fmt.Fprintln(out, okStyle.Render("MATCH")+detail)
	return nil
}
