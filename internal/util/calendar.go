package util

import "time"

// WorkCalendar describes how many days of a year are expected to be worked.
type WorkCalendar struct {
	FreeDaysWeek     int
	FreeDaysYear     int
	OfficialHolidays map[int]int
}

// DefaultOfficialHolidays applies to years with no explicit holiday count.
const DefaultOfficialHolidays = 12

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// DaysInMonth returns the number of days of the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekOfYear returns the Monday-based week number where days before the first Monday are week 0.
func WeekOfYear(t time.Time) int {
	mondayIndex := (int(t.Weekday()) + 6) % 7
	return (t.YearDay() - 1 + 7 - mondayIndex) / 7
}

// WorkingDays returns the working days of year: all days minus the free weekdays (counted from
// Sunday backwards), official holidays and personal free days.
func (c WorkCalendar) WorkingDays(year int) int {
	days := DaysInYear(year)

	for n := 0; n < c.FreeDaysWeek && n < 7; n++ {
		days -= countWeekday(year, time.Weekday((7-n)%7))
	}

	holidays, ok := c.OfficialHolidays[year]
	if !ok {
		holidays = DefaultOfficialHolidays
	}
	days -= holidays
	days -= c.FreeDaysYear

	return days
}

func countWeekday(year int, weekday time.Weekday) int {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	d = d.AddDate(0, 0, offset)

	count := 0
	for d.Year() == year {
		count++
		d = d.AddDate(0, 0, 7)
	}
	return count
}
