package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TIMELOG_LOG_FILE or TIMELOG_SMTP_HOST
const EnvPrefix = "TIMELOG"

// LoadResult carries the loaded configuration and how it was obtained
type LoadResult struct {
	Config *Config
	// Path is the file that was read, empty when only defaults applied
	Path string
	// Warnings are non-fatal problems such as a missing or unreadable file
	Warnings []string
}

// Load reads the configuration. With an explicit path only that file is tried; otherwise
// ~/.timelog/timelog.yaml and a timelog.yaml or timelog.ini next to the executable are searched.
// A missing or unreadable file falls back to defaults with a warning.
func Load(explicitPath string) (*LoadResult, error) {
	result := &LoadResult{}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := findConfigFile(explicitPath)
	switch {
	case path == "" && explicitPath != "":
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("config file %s not found, using default configuration", explicitPath))
	case path == "":
		result.Warnings = append(result.Warnings, "no config file found, using default configuration")
	default:
		if err := readFile(v, path); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("could not read config file: %v", err),
				"using default configuration")
		} else {
			result.Path = path
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

func readFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	// INI files keep their keys in the [DEFAULT] section
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		if section := v.Sub("default"); section != nil {
			return v.MergeConfigMap(section.AllSettings())
		}
	}
	return nil
}

func findConfigFile(explicitPath string) string {
	if explicitPath != "" {
		if fileExists(explicitPath) {
			return explicitPath
		}
		return ""
	}

	candidates := []string{DefaultPath()}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, "timelog.yaml"),
			filepath.Join(dir, "timelog.ini"))
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("editor", d.Editor)
	v.SetDefault("non_billable", d.NonBillable)
	v.SetDefault("price_hour", d.PriceHour)
	v.SetDefault("currency", d.Currency)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("attribution", d.Attribution)
	v.SetDefault("hours_day_range", d.HoursDayRange)
	v.SetDefault("productivity", d.Productivity)
	v.SetDefault("free_days_week", d.FreeDaysWeek)
	v.SetDefault("free_days_year", d.FreeDaysYear)

	holidays := make(map[string]interface{}, len(d.OfficialHolidays))
	for year, days := range d.OfficialHolidays {
		holidays[fmt.Sprint(year)] = days
	}
	v.SetDefault("official_holidays", holidays)

	v.SetDefault("report.month", d.Report.Month)
	v.SetDefault("report.since", d.Report.Since)
	v.SetDefault("report.line_width", d.Report.LineWidth)

	v.SetDefault("smtp.host", d.SMTP.Host)
	v.SetDefault("smtp.port", d.SMTP.Port)
	v.SetDefault("smtp.username", d.SMTP.Username)
	v.SetDefault("smtp.password", d.SMTP.Password)
	v.SetDefault("smtp.from", d.SMTP.From)
	v.SetDefault("smtp.recipients", d.SMTP.Recipients)
	v.SetDefault("smtp.tls", d.SMTP.TLS)
}

func normalize(cfg *Config) {
	cfg.LogFile = ExpandPath(cfg.LogFile)
	cfg.NonBillable = cleanList(cfg.NonBillable)
	cfg.SMTP.Recipients = cleanList(cfg.SMTP.Recipients)
	cfg.Attribution = strings.ToLower(strings.TrimSpace(cfg.Attribution))
	cfg.SMTP.TLS = strings.ToLower(strings.TrimSpace(cfg.SMTP.TLS))
	cfg.Report.Month = strings.ToLower(strings.TrimSpace(cfg.Report.Month))
	sort.Float64s(cfg.HoursDayRange)
}

// cleanList trims items and drops empty ones, also splitting any item that still holds commas.
func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks values that would make summaries meaningless
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	if c.Attribution != AttributionClosing && c.Attribution != AttributionOpening {
		return fmt.Errorf("invalid attribution %q (valid: %s, %s)", c.Attribution, AttributionClosing, AttributionOpening)
	}
	if len(c.HoursDayRange) != 3 {
		return fmt.Errorf("hours_day_range needs exactly 3 values (minimum, optimal, excellent), got %d", len(c.HoursDayRange))
	}
	if c.PriceHour < 0 {
		return fmt.Errorf("price_hour must not be negative")
	}
	if c.Productivity <= 0 || c.Productivity > 1 {
		return fmt.Errorf("productivity must be in (0, 1], got %v", c.Productivity)
	}
	if c.FreeDaysWeek < 0 || c.FreeDaysWeek > 7 {
		return fmt.Errorf("free_days_week must be between 0 and 7, got %d", c.FreeDaysWeek)
	}
	if c.Report.LineWidth < 20 {
		return fmt.Errorf("report.line_width must be at least 20, got %d", c.Report.LineWidth)
	}
	switch c.SMTP.TLS {
	case "mandatory", "opportunistic", "none":
	default:
		return fmt.Errorf("invalid smtp.tls %q (valid: mandatory, opportunistic, none)", c.SMTP.TLS)
	}
	return nil
}

// IsNonBillable reports whether project is configured as non-billable (case-insensitive)
func (c *Config) IsNonBillable(project string) bool {
	project = strings.TrimSpace(project)
	for _, nb := range c.NonBillable {
		if strings.EqualFold(nb, project) {
			return true
		}
	}
	return false
}

// ExpandPath resolves a leading "~/" against the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
