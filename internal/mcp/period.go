package mcp

import (
	"fmt"
	"time"
)

// periodWindow computes the inclusive [start, end] window for a summary
// period anchored at the given date. Weeks run Monday through Sunday;
// months are the calendar month containing the anchor.
func periodWindow(period string, anchor time.Time) (time.Time, time.Time, error) {
	switch period {
	case "day":
		return anchor, anchor, nil
	case "week":
		// time.Weekday counts from Sunday; shift so Monday is day zero.
		offset := (int(anchor.Weekday()) + 6) % 7
		start := anchor.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil
	case "month":
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(0, 1, -1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("period must be 'day', 'week' or 'month', got %q", period)
	}
}

// windowDates lists every date of the inclusive window in order.
func windowDates(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
