package schedule

import (
	"time"

	"github.com/gatherly/event-registration/internal/model"
)

// Window resolves a session's normalized [start, end) interval.  When
// the session carries explicit times those win; otherwise the legacy
// schedule string is parsed against the session's day.  ok is false
// when no usable window exists, in which case the session cannot
// conflict with anything.
func Window(s *model.Session) (start, end time.Time, ok bool) {
	if !s.StartsAt.IsZero() && !s.EndsAt.IsZero() && s.EndsAt.After(s.StartsAt) {
		return s.StartsAt, s.EndsAt, true
	}
	return ParseLegacyRange(s.Day, s.LegacyTime)
}

// Overlaps reports whether two half-open intervals intersect.  Touching
// endpoints do not overlap: [10:00, 11:00) and [11:00, 12:00) are
// compatible.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict checks a candidate session against the sessions already
// on a user's agenda and returns the first one whose window overlaps
// the candidate's, scanning existingIDs in their given order.  IDs that
// do not resolve in sessions are skipped, as are sessions without a
// usable window; neither is an error.  A nil return means the
// candidate fits.  FindConflict is side-effect-free; the caller decides
// whether a conflict blocks the add, warns, or is overridden.
func FindConflict(candidate *model.Session, existingIDs []uint64, sessions map[uint64]*model.Session) *model.Session {
	candStart, candEnd, ok := Window(candidate)
	if !ok {
		return nil
	}
	for _, id := range existingIDs {
		existing, found := sessions[id]
		if !found || existing == nil {
			continue
		}
		if existing.ID == candidate.ID {
			continue
		}
		start, end, ok := Window(existing)
		if !ok {
			continue
		}
		if Overlaps(candStart, candEnd, start, end) {
			return existing
		}
	}
	return nil
}
