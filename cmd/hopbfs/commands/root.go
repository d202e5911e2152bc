package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/logging"
)

// Version is stamped at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

const envPrefix = "HOPBFS"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

// NewRootCmd builds the hopbfs command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "hopbfs",
		Short: "Serial and level-synchronous parallel BFS over edge-list graphs",
		Long: `hopbfs computes hop distances from a source node with a serial BFS and
a parallel level-synchronous BFS, and checks that both agree.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd.Flags())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "Path to hopbfs YAML config")
	pf.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-format", "", "Log format (text, json)")

	root.SetHelpFunc(renderHelp)
	root.AddCommand(newCompareCmd(opts), newServeCmd(opts))
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), failStyle.Render("error: ")+err.Error())
		return 1
	}
	return 0
}

func (o *rootOptions) initConfig(flags *pflag.FlagSet) error {
	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	o.v.AutomaticEnv()

	bindings := map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"server.addr":    "addr",
	}
	for key, name := range bindings {
		if f := flags.Lookup(name); f != nil {
			if err := o.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// loader returns a Loader for --config, or a static default config.
func (o *rootOptions) loader() (*config.Loader, error) {
	if o.cfgFile == "" {
		cfg := config.Default()
		o.applyOverrides(cfg)
		return config.NewStatic(cfg), config.Validate(cfg)
	}
	l, err := config.NewLoader(o.cfgFile)
	if err != nil {
		return nil, err
	}
	o.applyOverrides(l.Config())
	l.OnChange(o.applyOverrides)
	return l, config.Validate(l.Config())
}

// applyOverrides lays flag and HOPBFS_* environment values over cfg.
func (o *rootOptions) applyOverrides(cfg *config.Config) {
	if s := o.v.GetString("logging.level"); s != "" {
		cfg.Logging.Level = s
	}
	if s := o.v.GetString("logging.format"); s != "" {
		cfg.Logging.Format = s
	}
	if s := o.v.GetString("server.addr"); s != "" {
		cfg.Server.Addr = s
	}
	if s := o.v.GetString("tracing.endpoint"); s != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Endpoint = s
	}
}

// logger builds the CLI logger from flags and environment only.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	return logging.New(w, config.LoggingConf{
		Level:  o.v.GetString("logging.level"),
		Format: o.v.GetString("logging.format"),
	})
}

func renderHelp(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("HOPBFS "+Version))
	if cmd.Long != "" {
		fmt.Fprintln(out, cmd.Long)
	} else {
		fmt.Fprintln(out, cmd.Short)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("USAGE"))
	fmt.Fprintf(out, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(out, titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, titleStyle.Render("FLAGS"))
	visit := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-15s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(out, flagStyle.Render(line))
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	fmt.Fprintln(out)
}
