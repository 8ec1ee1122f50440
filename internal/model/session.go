package model

import "time"

// Session represents a single talk or activity inside an event's
// programme.  StartsAt/EndsAt are the normalized schedule window and
// may be zero for sessions imported from legacy programmes, in which
// case Day plus LegacyTime carry the original human-entered schedule
// string (e.g. "10:00 AM - 11:30 AM").  Conflict detection resolves
// the window once at the boundary via the schedule package.
//
// Fields:
//
//	ID         – primary key identifier.
//	EventID    – event this session belongs to.
//	Title      – session title.
//	Speaker    – presenter name, free-form.
//	StartsAt   – normalized start (zero when only legacy data exists).
//	EndsAt     – normalized end (zero when only legacy data exists).
//	Day        – calendar day used to anchor LegacyTime.
//	LegacyTime – raw schedule string from imported programmes.
//	CreatedAt  – creation timestamp.
type Session struct {
	ID         uint64    // sessions.id
	EventID    uint64    // sessions.event_id
	Title      string    // sessions.title
	Speaker    string    // sessions.speaker
	StartsAt   time.Time // sessions.starts_at (nullable)
	EndsAt     time.Time // sessions.ends_at (nullable)
	Day        time.Time // sessions.day (nullable)
	LegacyTime string    // sessions.legacy_time (nullable)
	CreatedAt  time.Time // sessions.created_at
}

// AgendaEntry marks a session a user has added to their personal
// agenda.  Agenda rows are scoped per user; nothing outside the agenda
// handlers mutates them.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the agenda.
//	SessionID – session that was added.
//	CreatedAt – when the session was added.
type AgendaEntry struct {
	ID        uint64    // agenda_entries.id
	UserID    uint64    // agenda_entries.user_id
	SessionID uint64    // agenda_entries.session_id
	CreatedAt time.Time // agenda_entries.created_at
}
