package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisplay() (*TerminalDisplay, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewTerminalDisplay(&buf, "Eur"), &buf
}

func TestHeader(t *testing.T) {
	td, buf := newDisplay()
	now := time.Date(2025, time.March, 13, 12, 0, 0, 0, time.UTC)

	td.Header(now, 228)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, util.Colorize("[TIMELOG - W10 - 228 wd/year]", util.ColorLightPurple), lines[0])
	assert.Contains(t, lines[1], "D:")
	assert.Contains(t, lines[1], "M:")
	assert.Contains(t, lines[1], "Y:")
	assert.Contains(t, lines[1], "50.0%")
}

func TestMatches(t *testing.T) {
	td, buf := newDisplay()
	matches := []model.Entry{
		{Body: "ACME: Deploy api"},
		{Body: "BETA: deploy docs"},
	}

	td.Matches("deploy", 10, matches)

	out := buf.String()
	assert.Contains(t, out, util.Purple("10 last matches for 'deploy':"))
	assert.Contains(t, out, util.Yellow("0")+": ACME: "+util.Green("deploy")+" api")
	assert.Contains(t, out, util.Yellow("1")+": BETA: "+util.Green("deploy")+" docs")
}

func TestMatchesWithoutTerm(t *testing.T) {
	td, buf := newDisplay()
	td.Matches("", 10, []model.Entry{{Body: "ACME: x"}})

	assert.Equal(t, util.Yellow("0")+": ACME: x\n", buf.String())
}

func TestMatchesEscapesTerm(t *testing.T) {
	td, buf := newDisplay()
	td.Matches("a.b", 10, []model.Entry{{Body: "axb a.b"}})

	assert.Contains(t, buf.String(), ": axb "+util.Green("a.b"))
}

func TestPromptAndRedraw(t *testing.T) {
	td, buf := newDisplay()

	td.Prompt(false)
	td.Echo("ab")
	td.Redraw("a")
	td.Prompt(true)

	assert.Equal(t, "> ab\033[2K\r> a\n> ", buf.String())
}

func TestLinesAndTaskAdded(t *testing.T) {
	td, buf := newDisplay()

	td.Lines([]model.Entry{{Raw: "2025-01-01 08:00: arrived**"}, {Raw: "2025-01-01 09:00: A: x"}})
	td.TaskAdded("2025-01-01 10:00: A: y\n")
	td.Error(errors.New("boom"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "2025-01-01 08:00: arrived**\n2025-01-01 09:00: A: x\n"))
	assert.Contains(t, out, "\nTask added: "+util.Green("2025-01-01 10:00: A: y")+"\n")
	assert.Contains(t, out, util.Colorize("boom", util.ColorRed))
}

func TestSummary(t *testing.T) {
	td, buf := newDisplay()
	groups := []formatter.SummaryGroup{{Title: "ALL", Rows: []formatter.SummaryRow{
		{Summary: model.PeriodSummary{Period: model.PeriodDay, Seconds: 3600}},
	}}}

	require.NoError(t, td.Summary(groups))
	assert.Contains(t, buf.String(), "ALL::")
	assert.Contains(t, buf.String(), "Day: 1 hours")
}
