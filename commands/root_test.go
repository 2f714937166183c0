package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timelog/internal/core/constants"
	"github.com/penwyp/go-timelog/internal/data/watcher"
	"github.com/penwyp/go-timelog/internal/presentation/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marchLog = `2025-03-03 08:00: arrived**
2025-03-03 09:00: ACME: deploy
2025-03-03 10:30: SEN: standup
2025-03-03 12:00: ACME: -internal
`

// resetFlags restores every package-level flag variable between command runs.
func resetFlags() {
	debug = false
	configPath = ""
	summaryBillable = false
	summaryOutput = formatter.FormatText
	listLimit = constants.DefaultListLimit
	reportMonth = ""
	reportSince = ""
	reportSend = false
	reportVerbose = false
	exportDB = "~/.timelog/timelog.db"
	watchInterval = time.Minute
}

// writeFixture creates a timelog and a config pointing at it under a temporary HOME.
func writeFixture(t *testing.T, log string) (home, cfgPath string) {
	t.Helper()

	home = t.TempDir()
	t.Setenv("HOME", home)

	logPath := filepath.Join(home, "timelog.txt")
	require.NoError(t, os.WriteFile(logPath, []byte(log), 0644))

	cfgPath = filepath.Join(home, "timelog.yaml")
	cfg := "log_file: " + logPath + "\ntimezone: UTC\nsmtp:\n  password: secret\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return home, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEnsureDir(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	require.NoError(t, ensureDir(testDir))

	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	assert.NoError(t, ensureDir(testDir))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		cmd          string
		flag         string
		defaultValue string
		shorthand    string
	}{
		{"summary", "billable", "false", "b"},
		{"summary", "output", "text", "o"},
		{"list", "limit", "20", "n"},
		{"report", "month", "", ""},
		{"report", "since", "", ""},
		{"report", "send", "false", ""},
		{"report", "verbose", "false", "v"},
		{"export", "db", "~/.timelog/timelog.db", ""},
		{"watch", "interval", "1m0s", "i"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd+"/"+tt.flag, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.cmd})
			require.NoError(t, err)

			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, rootCmd.RunE)
}

func TestSummaryJSON(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "summary", "-o", "json")
	require.NoError(t, err)

	var groups []struct {
		Title     string           `json:"title"`
		Summaries []map[string]any `json:"summaries"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "ALL", groups[0].Title)
	assert.Equal(t, "BILLABLE", groups[1].Title)
	assert.Len(t, groups[0].Summaries, 4)
}

func TestSummaryBillableOnly(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "summary", "--billable", "-o", "csv")
	require.NoError(t, err)

	assert.NotContains(t, out, "ALL,")
	assert.Contains(t, out, "BILLABLE,Day")
	assert.Contains(t, out, "BILLABLE,Year")
}

func TestSummaryUnknownFormat(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	_, err := execute(t, "--config", cfgPath, "summary", "-o", "xml")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "list", "-n", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "ACME: -internal")
	assert.NotContains(t, out, "SEN: standup")
}

func TestListMissingLog(t *testing.T) {
	home, cfgPath := writeFixture(t, marchLog)
	require.NoError(t, os.Remove(filepath.Join(home, "timelog.txt")))

	_, err := execute(t, "--config", cfgPath, "list")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "report", "--since", "2025-03-15")
	require.NoError(t, err)

	assert.Contains(t, out, "Monthly hours breakdown 25-03 (March 2025)")
	assert.Contains(t, out, "Period: 2025-03-01 00:00:00 - 2025-03-31 23:59:59")
	assert.Contains(t, out, "Total: 3.00h")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "SEN")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  deploy") {
			assert.True(t, strings.HasSuffix(line, " 1.50"), line)
		}
	}
}

func TestReportVerbose(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "report", "--since", "2025-03-01", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, "2025-03-03 09:00: ACME: deploy: 1.50")
	assert.NotContains(t, out, "-internal: ")
}

func TestReportEmptyMonth(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "report", "--since", "2024-01-10", "--send")
	require.NoError(t, err)

	assert.Contains(t, out, "No hours logged between 2024-01-01 and 2024-01-31")
	assert.NotContains(t, out, "smtp")
}

func TestReportSendFailureExitsCleanly(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "report", "--since", "2025-03-01", "--send")
	require.NoError(t, err)

	assert.Contains(t, out, "smtp.host is not configured")
	assert.NotContains(t, out, "Report sent")
}

func TestReportInvalidInput(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	_, err := execute(t, "--config", cfgPath, "report", "--since", "03/01/2025")
	assert.Error(t, err)

	_, err = execute(t, "--config", cfgPath, "report", "--month", "someday")
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "conf", "timelog.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "price_hour: 170")
	assert.Contains(t, out, "attribution: opening")
}

func TestConfigShowMasksPassword(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "********")
}

func TestExport(t *testing.T) {
	home, cfgPath := writeFixture(t, marchLog)
	dbPath := filepath.Join(home, "db", "hours.db")

	out, err := execute(t, "--config", cfgPath, "export", "--db", dbPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Exported 4 entries to "+dbPath)
	assert.FileExists(t, dbPath)
}

func TestExportExpandsHome(t *testing.T) {
	home, cfgPath := writeFixture(t, marchLog)

	out, err := execute(t, "--config", cfgPath, "export", "--db", "~/db/hours.db")
	require.NoError(t, err)

	dbPath := filepath.Join(home, "db", "hours.db")
	assert.Contains(t, out, "Exported 4 entries to "+dbPath)
	assert.FileExists(t, dbPath)
}

func TestWatchLoopRedrawsOnTicksAndEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan watcher.FileEvent)
	ticks := make(chan time.Time)

	var redraws int
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, events, ticks, func() error {
			redraws++
			return nil
		})
	}()

	ticks <- time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	events <- watcher.FileEvent{Path: "timelog.txt", Operation: "WRITE"}
	ticks <- time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC)
	cancel()
	<-done

	assert.Equal(t, 3, redraws)
}

func TestWatchLoopStopsWhenEventsClose(t *testing.T) {
	events := make(chan watcher.FileEvent)
	close(events)

	var redraws int
	watchLoop(context.Background(), events, nil, func() error {
		redraws++
		return nil
	})
	assert.Zero(t, redraws)
}

func TestWatchLoopKeepsGoingAfterRedrawError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)

	var calls int
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, nil, ticks, func() error {
			calls++
			return os.ErrNotExist
		})
	}()

	ticks <- time.Now()
	ticks <- time.Now()
	cancel()
	<-done

	assert.Equal(t, 2, calls)
}

func TestWatchRejectsNonPositiveInterval(t *testing.T) {
	_, cfgPath := writeFixture(t, marchLog)

	_, err := execute(t, "--config", cfgPath, "watch", "--interval", "0s")
	assert.Error(t, err)
}

func TestReportKeepsColonsInTaskDetail(t *testing.T) {
	_, cfgPath := writeFixture(t, "2025-03-03 09:00: ACME: fix: login\n2025-03-03 10:00: ACME: review\n")

	out, err := execute(t, "--config", cfgPath, "report", "--since", "2025-03-01")
	require.NoError(t, err)

	assert.Contains(t, out, "  fix: login")
	assert.Contains(t, reportCmd.Long, `"fix: login"`)
}
