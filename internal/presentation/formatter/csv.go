package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{out: w}
}

func (f *CSVFormatter) Format(groups []SummaryGroup) error {
	w := csv.NewWriter(f.out)

	headers := []string{"Group", "Period", "Since", "Hours", "Avg Hours/Day", "Earnings", "Level"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, group := range groups {
		for _, row := range group.Rows {
			s := row.Summary
			record := []string{
				group.Title,
				string(s.Period),
				s.Since.Format(time.DateOnly),
				fmt.Sprintf("%.2f", s.Hours),
				fmt.Sprintf("%.2f", s.AvgHoursPerDay),
				fmt.Sprintf("%.0f", s.Earnings),
				row.Level.String(),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
