package salmon

import "time"

// CalendarDate builds a UTC midnight date from a one-based month.
// ok is false when the triple does not name a real calendar day (e.g. February 30)
// or the year is outside 1-9999.
func CalendarDate(year, month, day int) (t time.Time, ok bool) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes overflow (Feb 30 -> Mar 2), so compare the round trip
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
