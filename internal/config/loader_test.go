package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	home := isolateHome(t)

	result, err := Load("")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "using default configuration")
	assert.Empty(t, result.Path)

	cfg := result.Config
	assert.Equal(t, filepath.Join(home, ".timelog", "timelog.txt"), cfg.LogFile)
	assert.Equal(t, "nano", cfg.Editor)
	assert.Equal(t, []string{"SEN", "NAR"}, cfg.NonBillable)
	assert.Equal(t, 170.0, cfg.PriceHour)
	assert.Equal(t, AttributionOpening, cfg.Attribution)
	assert.Equal(t, []float64{4, 6, 8}, cfg.HoursDayRange)
	assert.Equal(t, 11, cfg.OfficialHolidays[2025])
	assert.Equal(t, 80, cfg.Report.LineWidth)
	assert.Equal(t, 25, cfg.SMTP.Port)
}

func TestLoadExplicitMissingFileWarns(t *testing.T) {
	isolateHome(t)

	result, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not found")
	assert.Equal(t, "nano", result.Config.Editor)
}

func TestLoadYAML(t *testing.T) {
	home := isolateHome(t)
	path := writeConfig(t, "timelog.yaml", `
log_file: ~/work/log.txt
editor: vim
non_billable: [ sen , internal ]
price_hour: 95.5
attribution: Closing
official_holidays:
  2026: 10
report:
  month: current
smtp:
  host: mail.example.com
  port: 587
  recipients: "me@example.com, boss@example.com"
  tls: mandatory
`)

	result, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, path, result.Path)

	cfg := result.Config
	assert.Equal(t, filepath.Join(home, "work", "log.txt"), cfg.LogFile)
	assert.Equal(t, "vim", cfg.Editor)
	assert.Equal(t, []string{"sen", "internal"}, cfg.NonBillable)
	assert.Equal(t, 95.5, cfg.PriceHour)
	assert.Equal(t, AttributionClosing, cfg.Attribution)
	assert.Equal(t, 10, cfg.OfficialHolidays[2026])
	assert.Equal(t, "current", cfg.Report.Month)
	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, []string{"me@example.com", "boss@example.com"}, cfg.SMTP.Recipients)
	assert.Equal(t, "mandatory", cfg.SMTP.TLS)

	// untouched keys keep their defaults
	assert.Equal(t, "Eur", cfg.Currency)
	assert.Equal(t, 80, cfg.Report.LineWidth)
}

func TestLoadINI(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "timelog.ini", `[DEFAULT]
log_file = /tmp/timelog-test.txt
editor = emacs
non_billable = SEN,NAR,OPS
price_hour = 120
`)

	result, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	cfg := result.Config
	assert.Equal(t, "/tmp/timelog-test.txt", cfg.LogFile)
	assert.Equal(t, "emacs", cfg.Editor)
	assert.Equal(t, []string{"SEN", "NAR", "OPS"}, cfg.NonBillable)
	assert.Equal(t, 120.0, cfg.PriceHour)
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, "broken.yaml", "log_file: [unclosed\n")

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "could not read config file")
	assert.Empty(t, result.Path)
	assert.Equal(t, "nano", result.Config.Editor)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("TIMELOG_PRICE_HOUR", "80")
	t.Setenv("TIMELOG_NON_BILLABLE", "ADMIN,HOLIDAY")
	t.Setenv("TIMELOG_SMTP_HOST", "smtp.internal")

	result, err := Load("")
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 80.0, cfg.PriceHour)
	assert.Equal(t, []string{"ADMIN", "HOLIDAY"}, cfg.NonBillable)
	assert.Equal(t, "smtp.internal", cfg.SMTP.Host)
}

func TestLoadInvalidValues(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "attribution", content: "attribution: middle\n", wantErr: "invalid attribution"},
		{name: "hours range", content: "hours_day_range: [4, 6]\n", wantErr: "hours_day_range"},
		{name: "productivity", content: "productivity: 1.5\n", wantErr: "productivity"},
		{name: "line width", content: "report:\n  line_width: 5\n", wantErr: "line_width"},
		{name: "tls", content: "smtp:\n  tls: sometimes\n", wantErr: "smtp.tls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "timelog.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "conf", "timelog.yaml")

	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "must not overwrite")

	result, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, DefaultConfig(), result.Config)
}

func TestIsNonBillable(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsNonBillable("SEN"))
	assert.True(t, cfg.IsNonBillable(" nar "))
	assert.False(t, cfg.IsNonBillable("ACME"))
	assert.False(t, cfg.IsNonBillable(""))
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandPath("~/a/b"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative", ExpandPath("relative"))
}
