package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

// TestParseLegacyRangeFormats checks the accepted clock notations and
// separators against the same expected window.
func TestParseLegacyRangeFormats(t *testing.T) {
	cases := []string{
		"10:00 AM - 11:30 AM",
		"10:00AM-11:30AM",
		"10:00 AM to 11:30 AM",
		"10:00 AM – 11:30 AM",
		"10:00-11:30",
		"10:00:00 - 11:30:00",
	}
	wantStart := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 6, 12, 11, 30, 0, 0, time.UTC)

	for _, raw := range cases {
		start, end, ok := ParseLegacyRange(day, raw)
		require.True(t, ok, "raw %q", raw)
		require.True(t, start.Equal(wantStart), "raw %q start %v", raw, start)
		require.True(t, end.Equal(wantEnd), "raw %q end %v", raw, end)
	}
}

// TestParseLegacyRangeAfternoon checks that PM times land in the
// afternoon.
func TestParseLegacyRangeAfternoon(t *testing.T) {
	start, end, ok := ParseLegacyRange(day, "1:00 PM - 2:15 PM")
	require.True(t, ok)
	require.Equal(t, 13, start.Hour())
	require.Equal(t, 14, end.Hour())
	require.Equal(t, 15, end.Minute())
}

// TestParseLegacyRangeMidnightCrossing checks that a 12-hour range
// ending past midnight rolls into the next day, while the same shape
// in 24-hour notation is rejected as inverted.
func TestParseLegacyRangeMidnightCrossing(t *testing.T) {
	start, end, ok := ParseLegacyRange(day, "10:00 PM - 1:00 AM")
	require.True(t, ok)
	require.Equal(t, 22, start.Hour())
	require.Equal(t, day.Day()+1, end.Day())
	require.Equal(t, 1, end.Hour())

	_, _, ok = ParseLegacyRange(day, "22:00-01:00")
	require.False(t, ok)
}

// TestParseLegacyRangeMalformed checks that unusable input degrades to
// ok=false instead of an error or a bogus window.
func TestParseLegacyRangeMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"all day",
		"10:00 AM",
		"10:00 AM -",
		"- 11:00 AM",
		"25:00-26:00",
		"10:00 AM - lunch",
	}
	for _, raw := range cases {
		_, _, ok := ParseLegacyRange(day, raw)
		require.False(t, ok, "raw %q", raw)
	}
}

// TestParseLegacyRangeZeroDay checks that a missing anchor day makes
// any range unusable.
func TestParseLegacyRangeZeroDay(t *testing.T) {
	_, _, ok := ParseLegacyRange(time.Time{}, "10:00 AM - 11:00 AM")
	require.False(t, ok)
}

// TestParseLegacyRangeEqualEndpoints checks that a zero-length range
// in 24-hour notation is rejected.
func TestParseLegacyRangeEqualEndpoints(t *testing.T) {
	_, _, ok := ParseLegacyRange(day, "10:00-10:00")
	require.False(t, ok)
}
