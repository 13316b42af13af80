package timeutil

import "time"

// Window boundaries are computed in UTC so every deployment resets at the
// same moment regardless of server locale.

// StartOfDayUTC returns midnight UTC of the given time's day.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDayUTC returns midnight UTC of the day after the given time.
// This is the reset boundary for daily rate-limit windows.
func NextDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).AddDate(0, 0, 1)
}

// StartOfMonthUTC returns midnight UTC on the 1st of the given time's month.
func StartOfMonthUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthUTC returns midnight UTC on the 1st of the following month.
// This is the reset boundary for the monthly upstream quota.
func NextMonthUTC(t time.Time) time.Time {
	return StartOfMonthUTC(t).AddDate(0, 1, 0)
}

// SameDayUTC reports whether two times fall on the same UTC calendar day.
func SameDayUTC(a, b time.Time) bool {
	return StartOfDayUTC(a).Equal(StartOfDayUTC(b))
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
