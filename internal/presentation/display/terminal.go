package display

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/penwyp/go-timelog/internal/util"
)

// PromptText is printed before the user's input
const PromptText = "> "

const barSize = 15

// TerminalDisplay writes the interactive session output. It only ever appends to the terminal,
// with the exception of redrawing the current prompt line.
type TerminalDisplay struct {
	out      io.Writer
	currency string
}

func NewTerminalDisplay(w io.Writer, currency string) *TerminalDisplay {
	return &TerminalDisplay{out: w, currency: currency}
}

// Header prints the banner line and the day, month and year progress bars.
func (td *TerminalDisplay) Header(now time.Time, workingDays int) {
	title := fmt.Sprintf("[TIMELOG - W%d - %d wd/year]", util.WeekOfYear(now), workingDays)
	td.Println(util.Colorize(title, util.ColorLightPurple))
	td.Println(Bars(now))
}

// Bars renders "D:■■□□ 41.7% M:... Y:..." for the elapsed share of day, month and year.
func Bars(now time.Time) string {
	day := util.ProgressBar(float64(now.Hour()), 24, barSize, "D:")
	month := util.ProgressBar(float64(now.Day()), float64(util.DaysInMonth(now)), barSize, "M:")
	year := util.ProgressBar(float64(now.YearDay()), float64(util.DaysInYear(now.Year())), barSize, "Y:")
	return fmt.Sprintf("%s %s %s", day, month, year)
}

// Summary prints the ALL and BILLABLE period blocks.
func (td *TerminalDisplay) Summary(groups []formatter.SummaryGroup) error {
	return formatter.NewSummaryFormatter(td.out, td.currency).Format(groups)
}

// Matches prints numbered entries for selection, highlighting term.
func (td *TerminalDisplay) Matches(term string, limit int, matches []model.Entry) {
	if term != "" {
		td.Println(util.Purple(fmt.Sprintf("%d last matches for '%s':", limit, term)))
	}

	var highlight *regexp.Regexp
	if term != "" {
		highlight = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}

	lines := make([]string, 0, len(matches))
	for i, m := range matches {
		body := m.Body
		if highlight != nil {
			body = highlight.ReplaceAllLiteralString(body, util.Green(term))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", util.Yellow(fmt.Sprint(i)), body))
	}
	td.Println(strings.Join(lines, "\n"))
}

// Lines prints raw log lines.
func (td *TerminalDisplay) Lines(entries []model.Entry) {
	raw := make([]string, 0, len(entries))
	for _, e := range entries {
		raw = append(raw, e.Raw)
	}
	td.Println(strings.Join(raw, "\n"))
}

// TaskAdded confirms a newly written line.
func (td *TerminalDisplay) TaskAdded(line string) {
	td.Println("\nTask added: " + util.Green(strings.TrimSpace(line)))
}

// Prompt prints the prompt, optionally on a fresh line.
func (td *TerminalDisplay) Prompt(newline bool) {
	if newline {
		td.Print("\n")
	}
	td.Print(PromptText)
}

// Echo writes typed text as is.
func (td *TerminalDisplay) Echo(text string) {
	td.Print(text)
}

// Redraw clears the current line and prints the prompt with text.
func (td *TerminalDisplay) Redraw(text string) {
	td.Print(util.ClearLine + "\r" + PromptText + text)
}

// Error prints a non-fatal error.
func (td *TerminalDisplay) Error(err error) {
	td.Println("\n" + util.Colorize(err.Error(), util.ColorRed))
}

// Clear wipes the screen and moves the cursor home.
func (td *TerminalDisplay) Clear() {
	td.Print(util.ClearScreen + util.MoveCursorHome)
}

func (td *TerminalDisplay) Newline() {
	td.Print("\n")
}

func (td *TerminalDisplay) Println(text string) {
	td.Print(text + "\n")
}

func (td *TerminalDisplay) Print(text string) {
	_, _ = io.WriteString(td.out, text)
}
