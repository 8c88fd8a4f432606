package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/salmon-run-stats/internal/logger"
	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
	"github.com/pfrederiksen/salmon-run-stats/internal/scraper"
	"github.com/pfrederiksen/salmon-run-stats/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// DefaultOutputName is the directory created next to the executable when --output is not set.
const DefaultOutputName = "SwedishLaplandFishing"

type options struct {
	output    string
	rivers    []string
	baseURL   string
	timeout   time.Duration
	format    string
	dryRun    bool
	keepGoing bool
	verbose   bool
	logLevel  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "salmon-run-stats",
		Short: "Extract salmon run statistics from Swedish Lapland Fishing",
		Long: `Extracts salmon run statistics from Swedish Lapland Fishing.
Each monitored river page is fetched, the yearly fish counts are pulled out of its
chart and written to <output>/<river><year>.txt as two comma separated lines:
dates, then counts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	bindFlags(cmd.Flags(), opts)

	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.output, "output", defaultOutputDir(), "Path to the output directory")
	fs.StringSliceVar(&opts.rivers, "river", nil, "Only process these rivers (repeatable, default all)")
	fs.StringVar(&opts.baseURL, "base-url", scraper.BaseURL, "Base URL the river name is appended to")
	fs.DurationVar(&opts.timeout, "timeout", scraper.Timeout, "HTTP timeout per river page")
	fs.StringVar(&opts.format, "format", string(FormatText), "Summary format: text or json")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Extract and report without writing files")
	fs.BoolVar(&opts.keepGoing, "keep-going", false, "Continue with the next river when one fails")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")
	fs.StringVar(&opts.logLevel, "log-level", string(logger.LevelWarn), "Minimum log level: debug, info, warn or error")

	fs.Lookup("base-url").Hidden = true
}

// defaultOutputDir places the output next to the executable
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultOutputName
	}
	return filepath.Join(filepath.Dir(exe), DefaultOutputName)
}

// run is the main command logic
func run(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	rivers, err := salmon.ParseRivers(opts.rivers)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	logger.DefaultMetrics().Reset()

	stdout := cmd.OutOrStdout()

	// stdout carries only the JSON document in json mode
	notices := stdout
	if format == FormatJSON {
		notices = cmd.ErrOrStderr()
	}

	var sink storage.Sink
	if opts.dryRun {
		dryRun, err := storage.NewDryRunSink(opts.output, notices)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		sink = dryRun
	} else {
		store, err := storage.New(opts.output)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		sink = store
	}

	sc := scraper.New(scraper.WithBaseURL(opts.baseURL), scraper.WithTimeout(opts.timeout))

	logger.Info("Starting run", logger.Fields{
		"rivers":  len(rivers),
		"output":  sink.Dir(),
		"dry_run": opts.dryRun,
	})

	runner := NewRunner(sc, sink, notices, opts.keepGoing)
	result, runErr := runner.Run(cmd.Context(), rivers)

	if format == FormatJSON || opts.verbose {
		snapshot := logger.GetMetricsSnapshot()
		result.Metrics = &snapshot
		if err := WriteOutput(stdout, result, format, opts.verbose); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return runErr
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
