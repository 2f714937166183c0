package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-timelog/internal/config"
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/export"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/spf13/cobra"
)

var exportDB string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Mirror the timelog into a SQLite database",
	Long: `Rewrites the entries table of a SQLite database with every timelog line, its project,
its billable flag and the seconds it owns, then prints this month's totals per project.`,
	Example: `  timelog export
  timelog export --db ./hours.db
  sqlite3 ~/.timelog/timelog.db 'SELECT project, SUM(seconds)/3600 FROM entries GROUP BY project'`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDB, "db", "~/.timelog/timelog.db",
		"SQLite database file")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	entries, err := a.store.Entries()
	if err != nil {
		return err
	}

	dbPath := config.ExpandPath(exportDB)
	if err := ensureDir(filepath.Dir(dbPath)); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	exporter, err := export.NewSQLiteExporter(dbPath)
	if err != nil {
		return err
	}
	defer exporter.Close()

	ctx := context.Background()
	n, err := exporter.Export(ctx, entries, a.agg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Exported %d entries to %s\n", n, dbPath)

	from, until := model.MonthRange(a.clock.Now())
	totals, err := exporter.ProjectTotals(ctx, from, until)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		return nil
	}

	fmt.Fprintf(out, "\n%s\n", util.Purple(fmt.Sprintf("Projects since %s::", from.Format("2006-01-02"))))
	for _, t := range totals {
		fmt.Fprintf(out, "%s %sh (%d entries)\n",
			util.PadRight(t.Project, 12, " "), util.FormatHours(t.Seconds), t.Entries)
	}
	return nil
}
