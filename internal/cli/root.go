package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/config"
	"github.com/vburojevic/faultline/internal/engine"
	"github.com/vburojevic/faultline/internal/logging"
	"github.com/vburojevic/faultline/internal/output"
)

// CLI is the root command structure for faultline
type CLI struct {
	// Global flags
	Format     string `short:"f" default:"${config_format}" enum:"text,table,ndjson" help:"Output format"`
	Quiet      bool   `short:"q" help:"Suppress progress notices (only emit results)"`
	Verbose    bool   `short:"v" help:"Show debug logging (URIs, attempts, page counts)"`
	ConfigFile string `name:"config" short:"c" type:"path" help:"Config file (default: first of ./.faultline.yaml, ~/.faultline.yaml, ~/.config/faultline/config.yaml)"`
	Pager      bool   `help:"Show text reports in a full-screen pager"`
	NoColor    bool   `help:"Disable styled text output"`

	// Commands
	Logs   LogsCmd   `cmd:"" help:"Count faults of the main query as a share of requests"`
	Rollup RollupCmd `cmd:"" help:"Rank the URLs hit by events matching a fault filter"`
	Oneoff OneoffCmd `cmd:"" help:"Count URLs for a preset query and write them to CSV"`
	Hourly HourlyCmd `cmd:"" help:"Count a query per hour"`
	Shell  ShellCmd  `cmd:"" help:"Read chat-style commands (logs 10m 0430, rollup fault=x) from stdin"`

	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Examples   ExamplesCmd   `cmd:"" help:"Show usage examples"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format     string
	Quiet      bool
	Verbose    bool
	Pager      bool
	NoColor    bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Context    context.Context
	Config     *config.Config
	ConfigFile string
	FlagsSet   map[string]bool

	// EngineOptions are appended when commands build an engine
	EngineOptions []engine.Option

	logger *zap.Logger
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:     cli.Format,
		Quiet:      cli.Quiet,
		Verbose:    cli.Verbose,
		Pager:      cli.Pager,
		NoColor:    cli.NoColor,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Config:     cfg,
		ConfigFile: cli.ConfigFile,
	}

	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}
	return g
}

// Logger returns the zap logger for this invocation, writing to Stderr
func (g *Globals) Logger() *zap.Logger {
	if g.logger == nil {
		g.logger = logging.New(g.Stderr, g.Verbose)
	}
	return g.logger
}

// styled reports whether text output goes to a terminal that should get colors
func (g *Globals) styled() bool {
	if g.NoColor || g.Format != output.FormatText {
		return false
	}
	return isTerminal(g.Stdout)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// sink builds the output sink for w, dropping notices in quiet mode
func (g *Globals) sink(w io.Writer) (output.Sink, error) {
	s, err := output.NewSink(g.Format, w, g.styled())
	if err != nil {
		return nil, err
	}
	if g.Quiet {
		return quietSink{s}, nil
	}
	return s, nil
}

// quietSink drops progress notices
type quietSink struct {
	output.Sink
}

func (quietSink) Notice(output.Notice) error { return nil }

// newEngine validates the config and builds an engine writing to sink
func (g *Globals) newEngine(sink output.Sink) (*engine.Engine, error) {
	cfg := g.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := append([]engine.Option{engine.WithLogger(g.Logger())}, g.EngineOptions...)
	return engine.New(cfg, sink, opts...), nil
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...any) {
	g.Logger().Debug(fmt.Sprintf(format, args...))
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == output.FormatNDJSON {
		return output.NewNDJSONWriter(globals.Stdout).Metadata(Version, Commit, BuildDate)
	}
	_, err := io.WriteString(globals.Stdout, "faultline version "+Version+" ("+Commit+", "+BuildDate+")\n")
	return err
}

// Version information (set at build time)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
