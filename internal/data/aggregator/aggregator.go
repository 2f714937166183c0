package aggregator

import (
	"time"

	"github.com/penwyp/go-timelog/internal/config"
	"github.com/penwyp/go-timelog/internal/core/model"
	"github.com/penwyp/go-timelog/internal/util"
)

// Level grades the average hours per working day against the configured targets.
type Level int

const (
	LevelLow Level = iota
	LevelFair
	LevelGood
	LevelExcellent
)

func (l Level) String() string {
	switch l {
	case LevelFair:
		return "fair"
	case LevelGood:
		return "good"
	case LevelExcellent:
		return "excellent"
	default:
		return "low"
	}
}

// Aggregator turns parsed entries into elapsed-time totals.
type Aggregator struct {
	nonBillable  func(project string) bool
	attribution  string
	calendar     util.WorkCalendar
	hoursRange   []float64
	productivity float64
	priceHour    float64
}

// NewAggregator builds an Aggregator from the loaded configuration.
func NewAggregator(cfg *config.Config) *Aggregator {
	return &Aggregator{
		nonBillable: cfg.IsNonBillable,
		attribution: cfg.Attribution,
		calendar: util.WorkCalendar{
			FreeDaysWeek:     cfg.FreeDaysWeek,
			FreeDaysYear:     cfg.FreeDaysYear,
			OfficialHolidays: cfg.OfficialHolidays,
		},
		hoursRange:   cfg.HoursDayRange,
		productivity: cfg.Productivity,
		priceHour:    cfg.PriceHour,
	}
}

// Calendar returns the work calendar used for averages.
func (a *Aggregator) Calendar() util.WorkCalendar {
	return a.calendar
}

// IsBillable reports whether e counts towards billable time. Markers, non-billable projects and
// details starting with "-" are excluded. Entries without a project are billable.
func (a *Aggregator) IsBillable(e model.Entry) bool {
	if e.Marker {
		return false
	}
	if e.HasProject() && a.nonBillable(e.Project) {
		return false
	}
	return !e.NonBillableDetail()
}

func (a *Aggregator) openingAttribution() bool {
	return a.attribution == config.AttributionOpening
}

// PeriodSummary totals the time worked since the start of period. Entries must be in file order.
func (a *Aggregator) PeriodSummary(entries []model.Entry, period model.Period, now time.Time, billableOnly bool) model.PeriodSummary {
	start := period.Since(now)
	since := start

	var total float64
	var owner *model.Entry
	for i := range entries {
		e := entries[i]
		if e.Time.Before(since) {
			continue
		}

		if a.openingAttribution() {
			if owner != nil && (!billableOnly || a.IsBillable(*owner)) {
				total += e.Time.Sub(since).Seconds()
			}
			since = e.Time
			if e.Marker {
				owner = nil
			} else {
				owner = &entries[i]
			}
			continue
		}

		if e.Marker {
			since = e.Time
			continue
		}
		if !billableOnly || a.IsBillable(e) {
			total += e.Time.Sub(since).Seconds()
		}
		since = e.Time
	}

	hours := total / 3600
	summary := model.PeriodSummary{
		Period:         period,
		Since:          start,
		BillableOnly:   billableOnly,
		Seconds:        total,
		Hours:          hours,
		AvgHoursPerDay: a.AverageHoursPerDay(period, now, hours),
	}
	if billableOnly {
		summary.Earnings = hours * a.priceHour
	}
	return summary
}

// Summaries returns one summary per period, day first.
func (a *Aggregator) Summaries(entries []model.Entry, now time.Time, billableOnly bool) []model.PeriodSummary {
	periods := model.AllPeriods()
	out := make([]model.PeriodSummary, 0, len(periods))
	for _, p := range periods {
		out = append(out, a.PeriodSummary(entries, p, now, billableOnly))
	}
	return out
}

// AverageHoursPerDay spreads hours over the working days of period.
func (a *Aggregator) AverageHoursPerDay(period model.Period, now time.Time, hours float64) float64 {
	if hours == 0 {
		return 0
	}

	days := 1
	switch period {
	case model.PeriodWeek:
		days = 7 - a.calendar.FreeDaysWeek
	case model.PeriodMonth:
		days = util.DaysInMonth(now) - 4*a.calendar.FreeDaysWeek
	case model.PeriodYear:
		days = a.calendar.WorkingDays(now.Year())
	}
	if days <= 0 {
		days = 1
	}
	return hours / float64(days)
}

// Classify grades a summary's daily average. Billable summaries are held to targets scaled by the
// expected productivity.
func (a *Aggregator) Classify(s model.PeriodSummary) Level {
	if len(a.hoursRange) < 3 {
		return LevelLow
	}

	scale := 1.0
	if s.BillableOnly {
		scale = a.productivity
	}

	switch avg := s.AvgHoursPerDay; {
	case avg < a.hoursRange[0]*scale:
		return LevelLow
	case avg < a.hoursRange[1]*scale:
		return LevelFair
	case avg < a.hoursRange[2]*scale:
		return LevelGood
	default:
		return LevelExcellent
	}
}

// Report breaks the range [from, until] down per project and task detail. The first entry in range
// only anchors the running start; markers and entries without a project never own time.
func (a *Aggregator) Report(entries []model.Entry, from, until time.Time) *model.Report {
	report := model.NewReport(from, until)

	var since time.Time
	var prev *model.Entry
	for i := range entries {
		e := &entries[i]
		if e.Time.Before(from) || e.Time.After(until) {
			continue
		}
		if prev == nil {
			since = e.Time
			prev = e
			continue
		}

		seconds := e.Time.Sub(since).Seconds()
		owner := e
		if a.openingAttribution() {
			owner = prev
		}
		since = e.Time
		prev = e

		if owner.Marker || !owner.HasProject() || seconds <= 0 {
			continue
		}

		report.Project(owner.Project).Add(owner.Detail, seconds)
		report.Counted = append(report.Counted, model.CountedEntry{Entry: *owner, Seconds: seconds})
	}

	util.LogDebugf("Report %s - %s: %d projects, %d counted entries",
		from.Format(time.DateOnly), until.Format(time.DateOnly), len(report.Projects), len(report.Counted))
	return report
}

// Elapsed returns the seconds owned by each entry, index aligned with entries. Markers own
// nothing; with closing attribution the first entry owns nothing, with opening attribution the
// last one does not.
func (a *Aggregator) Elapsed(entries []model.Entry) []float64 {
	out := make([]float64, len(entries))
	for i := 1; i < len(entries); i++ {
		seconds := entries[i].Time.Sub(entries[i-1].Time).Seconds()
		owner := i
		if a.openingAttribution() {
			owner = i - 1
		}
		if entries[owner].Marker || seconds <= 0 {
			continue
		}
		out[owner] = seconds
	}
	return out
}
