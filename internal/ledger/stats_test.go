package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/event-registration/internal/model"
)

func eventSnapshot(capacity, registered int) *model.Event {
	return &model.Event{ID: 1, Capacity: capacity, RegisteredCount: registered}
}

// TestCalculateStatsHalfFull checks the basic derivation for a
// half-full event.
func TestCalculateStatsHalfFull(t *testing.T) {
	stats := CalculateStats(eventSnapshot(100, 50))
	require.Equal(t, Stats{Available: 50, FillRate: 50.0, SoldOut: false, AlmostFull: false}, stats)
}

// TestCalculateStatsZeroCapacity checks that a zero-capacity event
// reports a fill rate of 0 and is sold out, with no division by zero.
func TestCalculateStatsZeroCapacity(t *testing.T) {
	stats := CalculateStats(eventSnapshot(0, 0))
	require.Equal(t, Stats{Available: 0, FillRate: 0, SoldOut: true, AlmostFull: false}, stats)
}

// TestCalculateStatsRounding checks that the fill rate is rounded to
// one decimal place.
func TestCalculateStatsRounding(t *testing.T) {
	stats := CalculateStats(eventSnapshot(3, 1))
	require.Equal(t, 33.3, stats.FillRate)

	stats = CalculateStats(eventSnapshot(3, 2))
	require.Equal(t, 66.7, stats.FillRate)
}

// TestCalculateStatsAlmostFull checks the 90 percent threshold: 89
// percent is not almost full, 90 percent is.
func TestCalculateStatsAlmostFull(t *testing.T) {
	require.False(t, CalculateStats(eventSnapshot(100, 89)).AlmostFull)

	stats := CalculateStats(eventSnapshot(100, 90))
	require.True(t, stats.AlmostFull)
	require.False(t, stats.SoldOut)
}

// TestCalculateStatsSoldOut checks that a sold-out event is never also
// reported as almost full, and that over-capacity counters clamp
// available to zero.
func TestCalculateStatsSoldOut(t *testing.T) {
	stats := CalculateStats(eventSnapshot(100, 100))
	require.Equal(t, 0, stats.Available)
	require.True(t, stats.SoldOut)
	require.False(t, stats.AlmostFull)

	over := CalculateStats(eventSnapshot(100, 104))
	require.Equal(t, 0, over.Available)
	require.True(t, over.SoldOut)
}

// TestCalculateStatsIsReadOnly checks that computing stats twice over
// the same snapshot yields identical results and leaves the event
// untouched.
func TestCalculateStatsIsReadOnly(t *testing.T) {
	ev := eventSnapshot(200, 123)
	first := CalculateStats(ev)
	second := CalculateStats(ev)
	require.Equal(t, first, second)
	require.Equal(t, 123, ev.RegisteredCount)
}
