package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 365, DaysInYear(2025))
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(1900))
	assert.Equal(t, 366, DaysInYear(2000))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, DaysInMonth(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, DaysInMonth(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysInMonth(time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)))
}

func TestWeekOfYear(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{name: "before first monday", date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), expected: 0},
		{name: "first monday", date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), expected: 1},
		{name: "first sunday after", date: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), expected: 1},
		{name: "year starting monday", date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), expected: 1},
		{name: "end of year", date: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), expected: 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekOfYear(tt.date))
		})
	}
}

func TestWorkingDays(t *testing.T) {
	cal := WorkCalendar{
		FreeDaysWeek:     2,
		FreeDaysYear:     22,
		OfficialHolidays: map[int]int{2025: 11},
	}

	// 2025: 365 days - 52 Sundays - 52 Saturdays - 11 holidays - 22 free days
	assert.Equal(t, 228, cal.WorkingDays(2025))

	// 2024 has no explicit holidays: 366 - 52 - 52 - 12 - 22
	assert.Equal(t, 228, cal.WorkingDays(2024))

	noWeekends := WorkCalendar{}
	assert.Equal(t, 365-DefaultOfficialHolidays, noWeekends.WorkingDays(2025))
}
