package model

import (
	"sort"
	"time"
)

// PeriodSummary is the worked time of one period.
type PeriodSummary struct {
	Period         Period    `json:"period"`
	Since          time.Time `json:"since"`
	BillableOnly   bool      `json:"billableOnly"`
	Seconds        float64   `json:"seconds"`
	Hours          float64   `json:"hours"`
	AvgHoursPerDay float64   `json:"avgHoursPerDay"`
	Earnings       float64   `json:"earnings,omitempty"`
}

// ProjectReport accumulates seconds per task detail for one project.
type ProjectReport struct {
	Name    string             `json:"name"`
	Seconds float64            `json:"seconds"`
	Tasks   map[string]float64 `json:"tasks"`
}

// Add credits seconds to a task detail and to the project total.
func (p *ProjectReport) Add(detail string, seconds float64) {
	if p.Tasks == nil {
		p.Tasks = make(map[string]float64)
	}
	p.Tasks[detail] += seconds
	p.Seconds += seconds
}

// CountedEntry records how many seconds an entry contributed to a report.
type CountedEntry struct {
	Entry   Entry   `json:"entry"`
	Seconds float64 `json:"seconds"`
}

// Report is the per-project breakdown over a date range.
type Report struct {
	From     time.Time                 `json:"from"`
	Until    time.Time                 `json:"until"`
	Projects map[string]*ProjectReport `json:"projects"`
	Counted  []CountedEntry            `json:"-"`
}

// NewReport creates an empty report for the range.
func NewReport(from, until time.Time) *Report {
	return &Report{
		From:     from,
		Until:    until,
		Projects: make(map[string]*ProjectReport),
	}
}

// Project returns the named project, creating it on first use.
func (r *Report) Project(name string) *ProjectReport {
	p, ok := r.Projects[name]
	if !ok {
		p = &ProjectReport{Name: name, Tasks: make(map[string]float64)}
		r.Projects[name] = p
	}
	return p
}

// ProjectNames returns project names in ascending order.
func (r *Report) ProjectNames() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalSeconds sums every project.
func (r *Report) TotalSeconds() float64 {
	var total float64
	for _, p := range r.Projects {
		total += p.Seconds
	}
	return total
}

// Empty reports whether nothing was counted.
func (r *Report) Empty() bool {
	return len(r.Projects) == 0
}
