package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/data/aggregator"
	"github.com/penwyp/go-timelog/internal/util"
)

// SummaryFormatter writes coloured period summaries, one line per period.
type SummaryFormatter struct {
	out      io.Writer
	currency string
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer, currency string) *SummaryFormatter {
	return &SummaryFormatter{out: w, currency: currency}
}

func (f *SummaryFormatter) Format(groups []SummaryGroup) error {
	for _, group := range groups {
		if _, err := fmt.Fprintln(f.out, util.Purple(group.Title+"::")); err != nil {
			return err
		}
		for _, row := range group.Rows {
			if _, err := fmt.Fprintln(f.out, SummaryLine(row.Summary, row.Level, f.currency)); err != nil {
				return err
			}
		}
	}
	return nil
}

// SummaryLine renders "Week: 12 hours 5 minutes [~2.4h/wday]" coloured by level. Billable
// summaries show earnings instead of the daily average.
func SummaryLine(s model.PeriodSummary, level aggregator.Level, currency string) string {
	msg := fmt.Sprintf("%s: No work done yet", s.Period)
	if hm := util.FormatHM(s.Seconds); hm != "" {
		msg = fmt.Sprintf("%s: %s", s.Period, hm)
	}

	switch {
	case s.BillableOnly:
		msg = fmt.Sprintf("%s [~%s]", msg, util.FormatAmount(s.Earnings, currency))
	case s.Period != model.PeriodDay:
		msg = fmt.Sprintf("%s [~%.1fh/wday]", msg, s.AvgHoursPerDay)
	}

	return util.Colorize(msg, LevelColor(level))
}

// LevelColor maps a grade to its terminal colour.
func LevelColor(level aggregator.Level) int {
	switch level {
	case aggregator.LevelFair:
		return util.ColorYellow
	case aggregator.LevelGood:
		return util.ColorGreen
	case aggregator.LevelExcellent:
		return util.ColorCyan
	default:
		return util.ColorRed
	}
}
