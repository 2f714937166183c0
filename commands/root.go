package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/penwyp/go-timelog/internal/config"
	"github.com/penwyp/go-timelog/internal/data/aggregator"
	"github.com/penwyp/go-timelog/internal/data/parser"
	"github.com/penwyp/go-timelog/internal/data/timelog"
	"github.com/penwyp/go-timelog/internal/presentation/display"
	"github.com/penwyp/go-timelog/internal/presentation/interaction"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Config file, empty means the default search path
	configPath string

	rootCmd = &cobra.Command{
		Use:   "timelog [flags]",
		Short: "Personal time tracking on a plain text log",
		Long: `timelog keeps an append-only text log of what you worked on and when.

Each line is "YYYY-MM-DD HH:MM: PROJECT: detail". A line ending in "**" marks an arrival.
Without a subcommand timelog starts an interactive prompt: type a task and press enter to log
it, type a word to search the history, or press a number to repeat a listed task.

Prompt commands:
  l, list       show the latest entries
  s, summary    show day, week, month and year totals
  a*, *         log an arrival
  e, edit       open the log in your editor
  q, quit       leave

Examples:
  timelog                                  # Interactive prompt
  timelog summary --billable -o json       # Billable totals as JSON
  timelog report --month previous --send   # Mail last month's breakdown`,
		SilenceUsage: true,
		RunE:         runInteractive,
	}
)

const defaultLogFile = "~/.timelog/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.timelog/timelog.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// app holds the components shared by every command.
type app struct {
	cfg   *config.Config
	clock *util.TimeProvider
	store *timelog.Store
	agg   *aggregator.Aggregator
}

// setup initializes logging, loads the configuration and wires the core components.
func setup(cmd *cobra.Command) (*app, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := config.ExpandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return nil, err
	}

	result, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
		util.LogWarn(warning)
	}
	if result.Path != "" {
		util.LogDebug("Loaded config", util.Field{Key: "path", Value: result.Path})
	}

	cfg := result.Config
	clock, err := util.NewTimeProvider(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		clock: clock,
		store: timelog.NewStore(cfg.LogFile, parser.NewParser(clock.Location())),
		agg:   aggregator.NewAggregator(cfg),
	}, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	td := display.NewTerminalDisplay(cmd.OutOrStdout(), a.cfg.Currency)
	editor := interaction.ExecEditor{Command: a.cfg.Editor}
	session := interaction.NewSession(a.store, a.agg, td, editor, a.clock)

	util.LogDebug("Starting interactive session", util.Field{Key: "log_file", Value: a.cfg.LogFile})
	return session.Run(ctx, interaction.NewKeyboardReader(os.Stdin))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
