package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/aggregator"
)

// SummaryRow is one period summary with its grade.
type SummaryRow struct {
	Summary model.PeriodSummary
	Level   aggregator.Level
}

// SummaryGroup is a titled block of rows, e.g. ALL or BILLABLE.
type SummaryGroup struct {
	Title string
	Rows  []SummaryRow
}

// Formatter writes summary groups in one output format.
type Formatter interface {
	Format(groups []SummaryGroup) error
}

// Output formats accepted by NewFormatter
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// NewFormatter returns the formatter for format, writing to w.
func NewFormatter(format string, w io.Writer, currency string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewSummaryFormatter(w, currency), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (valid: text, json, csv)", format)
	}
}

// BuildGroups grades the ALL and BILLABLE summaries of every period.
func BuildGroups(agg *aggregator.Aggregator, all, billable []model.PeriodSummary) []SummaryGroup {
	toRows := func(summaries []model.PeriodSummary) []SummaryRow {
		rows := make([]SummaryRow, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, SummaryRow{Summary: s, Level: agg.Classify(s)})
		}
		return rows
	}

	return []SummaryGroup{
		{Title: "ALL", Rows: toRows(all)},
		{Title: "BILLABLE", Rows: toRows(billable)},
	}
}
