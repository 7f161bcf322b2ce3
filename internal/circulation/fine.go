// internal/circulation/fine.go
package circulation

import "time"

// FineRatePerDay is the flat fine charged per overdue day.
const FineRatePerDay = 5.0

// Fine computes the overdue days and fine for a return: whole days past the
// due date, clamped at zero, times the daily rate. Early and on-time
// returns incur no fine.
func Fine(due, actual time.Time) (overdueDays int, amount float64) {
	overdueDays = int(midnight(actual).Sub(midnight(due)) / (24 * time.Hour))
	if overdueDays < 0 {
		overdueDays = 0
	}
	return overdueDays, float64(overdueDays) * FineRatePerDay
}

// midnight truncates a timestamp to its calendar date in UTC, so the day
// difference is unaffected by time-of-day or zone.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
