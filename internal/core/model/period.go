package model

import (
	"fmt"
	"strings"
	"time"
)

// Period is a reporting window ending now.
type Period string

const (
	PeriodDay   Period = "Day"
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
	PeriodYear  Period = "Year"
)

// AllPeriods lists the periods in the order they are summarized.
func AllPeriods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}
}

// ParsePeriod accepts a period name in any case.
func ParsePeriod(s string) (Period, error) {
	for _, p := range AllPeriods() {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (valid: day, week, month, year)", s)
}

// Since returns the start of the period containing now: midnight today, Monday of the current
// week, the 1st of the month or January 1st.
func (p Period) Since(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodWeek:
		return today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return today
	}
}

// ReportMonth selects which calendar month the monthly report covers.
type ReportMonth string

const (
	ReportYesterday ReportMonth = "yesterday"
	ReportCurrent   ReportMonth = "current"
	ReportPrevious  ReportMonth = "previous"
	ReportLastWeek  ReportMonth = "lastweek"
)

// Since returns the first day of the selected month.
func (m ReportMonth) Since(now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var ref time.Time
	switch ReportMonth(strings.ToLower(string(m))) {
	case ReportYesterday:
		ref = today.AddDate(0, 0, -1)
	case ReportCurrent:
		ref = today
	case ReportPrevious:
		ref = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	case ReportLastWeek:
		ref = today.AddDate(0, 0, -7)
	default:
		return time.Time{}, fmt.Errorf("unknown report month %q (valid: yesterday, current, previous, lastweek)", m)
	}
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, now.Location()), nil
}

// MonthRange returns the closed range from the 1st of since's month to its last second.
func MonthRange(since time.Time) (from, until time.Time) {
	from = time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, since.Location())
	until = from.AddDate(0, 1, 0).Add(-time.Second)
	return from, until
}
