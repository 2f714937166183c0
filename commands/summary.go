package commands

import (
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	summaryBillable bool
	summaryOutput   string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show time worked today, this week, this month and this year",
	Long: `Prints the worked time of each period. Billable totals leave out arrival markers,
non-billable projects and tasks whose detail starts with "-", and show the earnings at the
configured hourly price.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVarP(&summaryBillable, "billable", "b", false,
		"Only show billable totals")
	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", formatter.FormatText,
		"Output format (text, json, csv)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	f, err := formatter.NewFormatter(summaryOutput, cmd.OutOrStdout(), a.cfg.Currency)
	if err != nil {
		return err
	}

	entries, err := a.store.Entries()
	if err != nil {
		return err
	}

	groups := buildGroups(a, entries)
	if summaryBillable {
		groups = groups[1:]
	}
	return f.Format(groups)
}

// buildGroups summarizes every period for the ALL and BILLABLE groups.
func buildGroups(a *app, entries []model.Entry) []formatter.SummaryGroup {
	now := a.clock.Now()
	return formatter.BuildGroups(a.agg,
		a.agg.Summaries(entries, now, false),
		a.agg.Summaries(entries, now, true))
}
