package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	// Wednesday
	ref := time.Date(2024, 7, 24, 15, 30, 0, 0, time.Local)
	start := StartOfWeek(ref)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2024-07-22", start.Format(DateFormat))
	assert.Equal(t, 0, start.Hour())
}

func TestStartOfWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	ref := time.Date(2024, 7, 28, 9, 0, 0, 0, time.Local)
	start := StartOfWeek(ref)

	assert.Equal(t, "2024-07-22", start.Format(DateFormat))
}

func TestStartOfWeekOnMonday(t *testing.T) {
	ref := time.Date(2024, 7, 22, 0, 0, 0, 0, time.Local)
	start := StartOfWeek(ref)

	assert.Equal(t, "2024-07-22", start.Format(DateFormat))
}

func TestWeekDates(t *testing.T) {
	ref := time.Date(2024, 7, 24, 12, 0, 0, 0, time.Local)
	dates := WeekDates(ref)

	require.Len(t, dates, 7)
	assert.Equal(t, "2024-07-22", dates[0])
	assert.Equal(t, "2024-07-28", dates[6])
	assert.Contains(t, dates, ref.Format(DateFormat))

	// Strictly increasing day by day
	for i := 1; i < len(dates); i++ {
		prev, err := time.ParseInLocation(DateFormat, dates[i-1], time.Local)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1).Format(DateFormat), dates[i])
	}
}

func TestWeekDatesAcrossMonthBoundary(t *testing.T) {
	// Saturday 2024-08-31; the week runs Aug 26 through Sep 1
	ref := time.Date(2024, 8, 31, 23, 59, 0, 0, time.Local)
	dates := WeekDates(ref)

	assert.Equal(t, "2024-08-26", dates[0])
	assert.Equal(t, "2024-09-01", dates[6])
}

func TestTodayDateStringFormat(t *testing.T) {
	today := TodayDateString()

	parsed, err := time.ParseInLocation(DateFormat, today, time.Local)
	require.NoError(t, err)
	assert.Equal(t, today, parsed.Format(DateFormat))
}
