package schedule

import "time"

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// DateRange returns every calendar day from start to end inclusive as
// YYYY-MM-DD strings in ascending order. Days are stepped in UTC so the
// result never depends on the host timezone. A malformed bound or an end
// before start yields an empty slice.
func DateRange(start, end string) []string {
	from, err := time.ParseInLocation(DayLayout, start, time.UTC)
	if err != nil {
		return nil
	}
	to, err := time.ParseInLocation(DayLayout, end, time.UTC)
	if err != nil {
		return nil
	}

	dates := make([]string, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DayLayout))
	}
	return dates
}

// CurrentMonth returns the first and last day of now's month, the default
// window when a user has no saved range settings.
func CurrentMonth(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DayLayout), last.Format(DayLayout)
}

// ValidDay reports whether s is a well-formed calendar day.
func ValidDay(s string) bool {
	_, err := time.ParseInLocation(DayLayout, s, time.UTC)
	return err == nil
}
