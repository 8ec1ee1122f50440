// Package schedule normalizes session time windows and detects
// overlaps between them.  All comparisons treat a window as the
// half-open interval [start, end): a session ending exactly when
// another begins does not conflict with it.
package schedule

import (
	"strings"
	"time"
)

// clockLayouts are the formats accepted for one side of a legacy time
// range, tried in order.  Imported programmes mix 12-hour and 24-hour
// notation.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04:05",
	"15:04",
}

// ParseLegacyRange resolves a human-entered schedule string such as
// "10:00 AM - 11:30 AM" or "14:00-15:30" against a calendar day,
// returning the normalized window in UTC.  The separator may be "-",
// an en dash, or the word "to".  Parsing is best-effort: malformed or
// empty input returns ok=false and callers degrade to "no schedule"
// rather than raising an error.  A range that ends at or before its
// start is treated as crossing midnight only when both sides parsed in
// 12-hour notation; otherwise it is rejected.
func ParseLegacyRange(day time.Time, raw string) (start, end time.Time, ok bool) {
	if day.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, time.Time{}, false
	}

	var left, right string
	for _, sep := range []string{"–", " to ", "-"} {
		if i := strings.Index(raw, sep); i > 0 {
			left = strings.TrimSpace(raw[:i])
			right = strings.TrimSpace(raw[i+len(sep):])
			break
		}
	}
	if left == "" || right == "" {
		return time.Time{}, time.Time{}, false
	}

	startClock, twelveHourStart, ok := parseClock(left)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	endClock, twelveHourEnd, ok := parseClock(right)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start = base.Add(startClock)
	end = base.Add(endClock)
	if !end.After(start) {
		if twelveHourStart && twelveHourEnd {
			end = end.Add(24 * time.Hour)
		} else {
			return time.Time{}, time.Time{}, false
		}
	}
	return start, end, true
}

// parseClock parses one side of a range into an offset from midnight.
// The second return reports whether the value used 12-hour notation.
func parseClock(s string) (time.Duration, bool, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second
		twelveHour := strings.Contains(layout, "PM")
		return d, twelveHour, true
	}
	return 0, false, false
}
