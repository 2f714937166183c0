package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	AttributionClosing = "closing"
	AttributionOpening = "opening"
)

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		LogFile:          filepath.Join(HomeDir(), "timelog.txt"),
		Editor:           "nano",
		NonBillable:      []string{"SEN", "NAR"},
		PriceHour:        170,
		Currency:         "Eur",
		Timezone:         "Local",
		Attribution:      AttributionOpening,
		HoursDayRange:    []float64{4, 6, 8},
		Productivity:     0.7,
		FreeDaysWeek:     2,
		FreeDaysYear:     22,
		OfficialHolidays: map[int]int{2025: 11},
		Report: ReportConfig{
			Month:     "previous",
			LineWidth: 80,
		},
		SMTP: SMTPConfig{
			Port: 25,
			TLS:  "opportunistic",
		},
	}
}

// HomeDir returns ~/.timelog
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timelog"
	}
	return filepath.Join(home, ".timelog")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(HomeDir(), "timelog.yaml")
}

// Marshal renders cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteDefault writes the default configuration to path, refusing to overwrite an existing file
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := []byte("# timelog configuration\n")
	return os.WriteFile(path, append(header, data...), 0600)
}
