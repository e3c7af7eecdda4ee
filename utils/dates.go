package utils

import "time"

// DateFormat is the wire format for calendar dates, no time component.
const DateFormat = "2006-01-02"

func TodayDateString() string {
	return time.Now().Format(DateFormat)
}

// StartOfWeek returns the Monday of the week containing ref, truncated to
// midnight in ref's location.
func StartOfWeek(ref time.Time) time.Time {
	offset := (int(ref.Weekday()) + 6) % 7
	monday := ref.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, ref.Location())
}

// WeekDates returns the 7 dates of the week containing ref, Monday through
// Sunday, as YYYY-MM-DD strings.
func WeekDates(ref time.Time) []string {
	start := StartOfWeek(ref)
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(DateFormat)
	}
	return dates
}
