package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-timelog/internal/core/constants"
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/util"
)

// ReportFormatter renders the monthly per-project breakdown as fixed-width text.
type ReportFormatter struct {
	width int
}

func NewReportFormatter(width int) *ReportFormatter {
	if width <= 0 {
		width = constants.DefaultLineWidth
	}
	return &ReportFormatter{width: width}
}

// Title returns "Monthly hours breakdown 25-01 (January 2025)" for the month starting at since.
func Title(since time.Time) string {
	return "Monthly hours breakdown " + since.Format(constants.ReportMonthLayout)
}

// Render returns the full report text: the grand total header followed by one block per project.
func (f *ReportFormatter) Render(report *model.Report) string {
	lines := []string{
		Title(report.From),
		fmt.Sprintf("Period: %s - %s",
			report.From.Format(constants.ReportTimeLayout), report.Until.Format(constants.ReportTimeLayout)),
		fmt.Sprintf("Total: %sh", util.FormatHours(report.TotalSeconds())),
		"",
	}

	for _, name := range report.ProjectNames() {
		lines = append(lines, f.projectBlock(report.Projects[name])...)
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func (f *ReportFormatter) projectBlock(p *model.ProjectReport) []string {
	lines := []string{util.PadRight(p.Name, f.width, " ") + " hrs"}

	for _, task := range SortTasks(p.Tasks) {
		row := util.Truncate("  "+task, f.width)
		row = util.PadRight(row, f.width, ".")
		lines = append(lines, row+" "+util.FormatHours(p.Tasks[task]))
	}

	lines = append(lines, util.PadLeft("TOTAL", f.width)+" "+util.FormatHours(p.Seconds), "", "")
	return lines
}

// SortTasks returns the task names of tasks ordered by CompareTasks.
func SortTasks(tasks map[string]float64) []string {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := CompareTasks(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
	return names
}

// CompareTasks orders task details case-insensitively, ignoring surrounding spaces. Details
// starting with "-" come first and are ordered among themselves without the dashes.
func CompareTasks(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	aDash := strings.HasPrefix(a, "-")
	bDash := strings.HasPrefix(b, "-")
	switch {
	case aDash && bDash:
		return CompareTasks(strings.Trim(a, "-"), strings.Trim(b, "-"))
	case aDash:
		return -1
	case bDash:
		return 1
	}
	return strings.Compare(a, b)
}
