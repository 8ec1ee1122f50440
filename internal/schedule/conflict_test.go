package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/event-registration/internal/model"
)

func timedSession(id uint64, start, end time.Time) *model.Session {
	return &model.Session{ID: id, EventID: 1, Title: "Session", StartsAt: start, EndsAt: end}
}

func legacySession(id uint64, day time.Time, raw string) *model.Session {
	return &model.Session{ID: id, EventID: 1, Title: "Session", Day: day, LegacyTime: raw}
}

func at(h, m int) time.Time {
	return time.Date(2026, 6, 12, h, m, 0, 0, time.UTC)
}

// TestOverlapsHalfOpen checks the interval semantics: overlapping
// windows clash, touching endpoints do not.
func TestOverlapsHalfOpen(t *testing.T) {
	require.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 30), at(11, 30)))
	require.True(t, Overlaps(at(10, 30), at(11, 30), at(10, 0), at(11, 0)))
	require.False(t, Overlaps(at(10, 0), at(11, 0), at(11, 0), at(12, 0)))
	require.False(t, Overlaps(at(11, 0), at(12, 0), at(10, 0), at(11, 0)))
}

// TestFindConflictOverlap checks that adding a session overlapping one
// already on the agenda reports that session, while a back-to-back
// session fits.
func TestFindConflictOverlap(t *testing.T) {
	agenda := timedSession(1, at(10, 0), at(11, 0))
	agenda.Title = "Opening Keynote"
	sessions := map[uint64]*model.Session{1: agenda}

	overlapping := timedSession(2, at(10, 30), at(11, 30))
	clash := FindConflict(overlapping, []uint64{1}, sessions)
	require.NotNil(t, clash)
	require.Equal(t, uint64(1), clash.ID)
	require.Equal(t, "Opening Keynote", clash.Title)

	backToBack := timedSession(3, at(11, 0), at(12, 0))
	require.Nil(t, FindConflict(backToBack, []uint64{1}, sessions))
}

// TestFindConflictFirstInAgendaOrder checks that with several clashing
// sessions, the one earliest in agenda order is reported.
func TestFindConflictFirstInAgendaOrder(t *testing.T) {
	sessions := map[uint64]*model.Session{
		1: timedSession(1, at(10, 0), at(12, 0)),
		2: timedSession(2, at(10, 30), at(11, 30)),
	}
	candidate := timedSession(3, at(10, 45), at(11, 15))

	clash := FindConflict(candidate, []uint64{2, 1}, sessions)
	require.NotNil(t, clash)
	require.Equal(t, uint64(2), clash.ID)
}

// TestFindConflictLegacyWindows checks that sessions scheduled with
// legacy time strings resolve and clash against explicitly timed ones.
func TestFindConflictLegacyWindows(t *testing.T) {
	day := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	agenda := legacySession(1, day, "10:00 AM - 11:30 AM")
	sessions := map[uint64]*model.Session{1: agenda}

	candidate := timedSession(2, at(11, 0), at(12, 0))
	require.NotNil(t, FindConflict(candidate, []uint64{1}, sessions))

	later := timedSession(3, at(11, 30), at(12, 30))
	require.Nil(t, FindConflict(later, []uint64{1}, sessions))
}

// TestFindConflictSkipsUnusable checks the degradation rules: agenda
// IDs that do not resolve, sessions without a usable window and a
// candidate without a window never produce a conflict.
func TestFindConflictSkipsUnusable(t *testing.T) {
	day := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	sessions := map[uint64]*model.Session{
		1: legacySession(1, day, "see printed programme"),
		2: timedSession(2, at(10, 0), at(11, 0)),
	}

	candidate := timedSession(3, at(10, 0), at(11, 0))
	clash := FindConflict(candidate, []uint64{99, 1, 2}, sessions)
	require.NotNil(t, clash)
	require.Equal(t, uint64(2), clash.ID)

	windowless := legacySession(4, day, "")
	require.Nil(t, FindConflict(windowless, []uint64{1, 2}, sessions))
}

// TestFindConflictIgnoresSelf checks that re-adding a session already
// on the agenda does not conflict with itself.
func TestFindConflictIgnoresSelf(t *testing.T) {
	s := timedSession(1, at(10, 0), at(11, 0))
	sessions := map[uint64]*model.Session{1: s}
	require.Nil(t, FindConflict(s, []uint64{1}, sessions))
}
