package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/aggregator"
	"github.com/penwyp/go-timelog/internal/util"

	_ "modernc.org/sqlite"
)

// ProjectTotal is the time stored for one project.
type ProjectTotal struct {
	Project string
	Seconds float64
	Entries int
}

// SQLiteExporter mirrors the timelog into a SQLite database for ad-hoc queries.
type SQLiteExporter struct {
	db *sql.DB
}

func NewSQLiteExporter(path string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	e := &SQLiteExporter{db: db}
	if err := e.init(); err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

func (e *SQLiteExporter) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		logged_at TEXT NOT NULL,
		raw TEXT NOT NULL,
		project TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		marker INTEGER NOT NULL DEFAULT 0,
		billable INTEGER NOT NULL DEFAULT 0,
		seconds REAL NOT NULL DEFAULT 0
	)
	`
	if _, err := e.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create entries table: %w", err)
	}
	_, err := e.db.Exec(`CREATE INDEX IF NOT EXISTS idx_entries_logged_at ON entries (logged_at)`)
	return err
}

// Export replaces the stored entries with entries, each with the seconds it owns.
func (e *SQLiteExporter) Export(ctx context.Context, entries []model.Entry, agg *aggregator.Aggregator) (int, error) {
	elapsed := agg.Elapsed(entries)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (logged_at, raw, project, detail, marker, billable, seconds) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.Time.Format(time.RFC3339),
			entry.Raw,
			entry.Project,
			entry.Detail,
			boolToInt(entry.Marker),
			boolToInt(agg.IsBillable(entry)),
			elapsed[i],
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %q: %w", entry.Raw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	util.LogInfof("Exported %d entries", len(entries))
	return len(entries), nil
}

// ProjectTotals sums stored seconds per project in [from, until], largest first.
func (e *SQLiteExporter) ProjectTotals(ctx context.Context, from, until time.Time) ([]ProjectTotal, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT project, SUM(seconds), COUNT(*)
		 FROM entries
		 WHERE project != '' AND logged_at >= ? AND logged_at <= ?
		 GROUP BY project
		 ORDER BY SUM(seconds) DESC, project`,
		from.Format(time.RFC3339), until.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []ProjectTotal
	for rows.Next() {
		var t ProjectTotal
		if err := rows.Scan(&t.Project, &t.Seconds, &t.Entries); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Count returns the number of stored entries.
func (e *SQLiteExporter) Count(ctx context.Context) (int, error) {
	var n int
	err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
