package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-timelog/internal/data/watcher"
	"github.com/penwyp/go-timelog/internal/presentation/display"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live summary that refreshes whenever the log changes",
	Long: `Clears the terminal and prints the banner and period summaries, then redraws them each
time the timelog file is written and every --interval, so day and week totals roll over at
midnight. Press Ctrl-C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", time.Minute,
		"Redraw interval when the log does not change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	if watchInterval <= 0 {
		return fmt.Errorf("invalid --interval %s", watchInterval)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(a.cfg.LogFile)
	if err != nil {
		return err
	}
	defer fw.Close()

	td := display.NewTerminalDisplay(cmd.OutOrStdout(), a.cfg.Currency)
	redraw := func() error { return redrawSummary(a, td) }
	if err := redraw(); err != nil {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	watchLoop(ctx, fw.Events(), ticker.C, redraw)
	td.Newline()
	return nil
}

// watchLoop redraws on every file event and tick until ctx is done or events is closed.
func watchLoop(ctx context.Context, events <-chan watcher.FileEvent, ticks <-chan time.Time, redraw func() error) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			util.LogDebug("Timelog changed",
				util.Field{Key: "path", Value: event.Path},
				util.Field{Key: "op", Value: event.Operation})
		case <-ticks:
		}

		if err := redraw(); err != nil {
			// The file may be mid-replace; the next event redraws.
			util.LogWarn("Redraw failed", util.Field{Key: "error", Value: err.Error()})
		}
	}
}

func redrawSummary(a *app, td *display.TerminalDisplay) error {
	entries, err := a.store.Entries()
	if err != nil {
		return err
	}

	now := a.clock.Now()
	td.Clear()
	td.Header(now, a.agg.Calendar().WorkingDays(now.Year()))
	return td.Summary(buildGroups(a, entries))
}
