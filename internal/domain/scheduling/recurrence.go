package scheduling

import (
	"time"
)

// Cadence is how often a schedule fires
type Cadence string

const (
	CadenceDaily     Cadence = "DAILY"
	CadenceWeekly    Cadence = "WEEKLY"
	CadenceMonthly   Cadence = "MONTHLY"
	CadenceQuarterly Cadence = "QUARTERLY"
)

// IsValid checks if the cadence is valid
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceQuarterly:
		return true
	}
	return false
}

// String returns the string representation
func (c Cadence) String() string {
	return string(c)
}

// Next returns the run following the given one. Monthly and quarterly
// cadences aim for anchorDay and clamp to the last day of shorter months,
// so a schedule anchored on the 31st fires on Feb 28 and again on Mar 31.
func (c Cadence) Next(after time.Time, anchorDay int) time.Time {
	switch c {
	case CadenceDaily:
		return after.AddDate(0, 0, 1)
	case CadenceWeekly:
		return after.AddDate(0, 0, 7)
	case CadenceMonthly:
		return addMonthsClamped(after, 1, anchorDay)
	case CadenceQuarterly:
		return addMonthsClamped(after, 3, anchorDay)
	default:
		return after.AddDate(0, 0, 1)
	}
}

// addMonthsClamped advances by whole months, targeting anchorDay but never
// spilling into the following month the way time.AddDate does.
func addMonthsClamped(t time.Time, months, anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = t.Day()
	}

	year, month, _ := t.Date()
	month += time.Month(months)
	for month > time.December {
		month -= 12
		year++
	}

	day := anchorDay
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
