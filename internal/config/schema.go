package config

// Config is the full timelog configuration. It is loaded once and passed explicitly to every
// component.
type Config struct {
	// LogFile is the timelog text file
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// Editor is launched by the edit command with "+9999999 <log_file>"
	Editor string `yaml:"editor" mapstructure:"editor"`

	// NonBillable projects never count as billable time
	NonBillable []string `yaml:"non_billable" mapstructure:"non_billable"`

	// PriceHour and Currency turn billable hours into earnings
	PriceHour float64 `yaml:"price_hour" mapstructure:"price_hour"`
	Currency  string  `yaml:"currency" mapstructure:"currency"`

	Timezone string `yaml:"timezone" mapstructure:"timezone"`

	// Attribution decides which entry owns the interval between two entries: "closing" (the
	// later entry) or "opening" (the earlier entry)
	Attribution string `yaml:"attribution" mapstructure:"attribution"`

	// Work calendar and targets
	HoursDayRange    []float64   `yaml:"hours_day_range" mapstructure:"hours_day_range"`
	Productivity     float64     `yaml:"productivity" mapstructure:"productivity"`
	FreeDaysWeek     int         `yaml:"free_days_week" mapstructure:"free_days_week"`
	FreeDaysYear     int         `yaml:"free_days_year" mapstructure:"free_days_year"`
	OfficialHolidays map[int]int `yaml:"official_holidays" mapstructure:"official_holidays"`

	Report ReportConfig `yaml:"report" mapstructure:"report"`
	SMTP   SMTPConfig   `yaml:"smtp" mapstructure:"smtp"`
}

// ReportConfig configures the monthly report
type ReportConfig struct {
	// Month is yesterday, current, previous or lastweek
	Month string `yaml:"month" mapstructure:"month"`
	// Since overrides Month with an explicit YYYY-MM-DD date
	Since     string `yaml:"since" mapstructure:"since"`
	LineWidth int    `yaml:"line_width" mapstructure:"line_width"`
}

// SMTPConfig configures the report mailer
type SMTPConfig struct {
	Host       string   `yaml:"host" mapstructure:"host"`
	Port       int      `yaml:"port" mapstructure:"port"`
	Username   string   `yaml:"username" mapstructure:"username"`
	Password   string   `yaml:"password" mapstructure:"password"`
	From       string   `yaml:"from" mapstructure:"from"`
	Recipients []string `yaml:"recipients" mapstructure:"recipients"`
	// TLS is mandatory, opportunistic or none
	TLS string `yaml:"tls" mapstructure:"tls"`
}
