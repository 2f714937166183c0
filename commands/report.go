package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/mailer"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/spf13/cobra"
)

var (
	reportMonth   string
	reportSince   string
	reportSend    bool
	reportVerbose bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the monthly hours breakdown and optionally mail it",
	Long: `Renders the hours of one calendar month per project and task.

The month is chosen with --month (yesterday, current, previous, lastweek) or pinned with
--since YYYY-MM-DD; both default to the report section of the config file. With --send the
breakdown is mailed to the configured recipients. Delivery problems are printed but never fail
the command, so it can run unattended from cron.

Tasks are keyed by everything after the first colon of a line, so "ACME: fix: login" is reported
as task "fix: login" of project ACME and is a different task from "ACME: fix login".`,
	Example: `  timelog report
  timelog report --month current -v
  timelog report --since 2025-03-01 --send`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportMonth, "month", "",
		"Month to report: yesterday, current, previous, lastweek (default from config)")
	reportCmd.Flags().StringVar(&reportSince, "since", "",
		"Report the month containing this date (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&reportSend, "send", false,
		"Mail the report to the configured recipients")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false,
		"Print every counted line with its hours")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	since, err := reportStart(a, a.clock.Now())
	if err != nil {
		return err
	}
	from, until := model.MonthRange(since)

	entries, err := a.store.Entries()
	if err != nil {
		return err
	}

	report := a.agg.Report(entries, from, until)
	out := cmd.OutOrStdout()

	if reportVerbose {
		for _, counted := range report.Counted {
			fmt.Fprintf(out, "%s: %s\n", counted.Entry.Raw, util.FormatHours(counted.Seconds))
		}
		fmt.Fprintln(out)
	}

	if report.Empty() {
		fmt.Fprintf(out, "No hours logged between %s and %s\n",
			from.Format("2006-01-02"), until.Format("2006-01-02"))
		return nil
	}

	text := formatter.NewReportFormatter(a.cfg.Report.LineWidth).Render(report)
	fmt.Fprint(out, text)

	if !reportSend {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if mailer.NewMailer(a.cfg.SMTP, out).Send(ctx, formatter.Title(from), text) {
		fmt.Fprintf(out, "Report sent to %d recipient(s)\n", len(a.cfg.SMTP.Recipients))
	}
	return nil
}

// reportStart resolves the first day of the reported month from the flags, falling back to the
// config file.
func reportStart(a *app, now time.Time) (time.Time, error) {
	since := reportSince
	month := reportMonth
	if since == "" && month == "" {
		since = a.cfg.Report.Since
		month = a.cfg.Report.Month
	}

	if since != "" {
		t, err := time.ParseInLocation("2006-01-02", since, a.clock.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since date %q: %w", since, err)
		}
		return t, nil
	}
	return model.ReportMonth(month).Since(now)
}
