package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gatherly/event-registration/internal/model"
)

// SessionRepo provides persistence for event programme sessions.
// Sessions imported from legacy programmes store their schedule as a
// raw string (legacy_time) anchored to a calendar day; newly created
// sessions carry explicit starts_at/ends_at.  Nullable time columns
// scan to the zero time.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

const sessionColumns = `id, event_id, title, speaker, starts_at, ends_at, day, legacy_time, created_at`

func scanSession(scan func(dest ...any) error) (*model.Session, error) {
	var s model.Session
	var startsAt, endsAt, day sql.NullTime
	var legacy sql.NullString
	err := scan(&s.ID, &s.EventID, &s.Title, &s.Speaker, &startsAt, &endsAt, &day, &legacy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if startsAt.Valid {
		s.StartsAt = startsAt.Time.UTC()
	}
	if endsAt.Valid {
		s.EndsAt = endsAt.Time.UTC()
	}
	if day.Valid {
		s.Day = day.Time.UTC()
	}
	if legacy.Valid {
		s.LegacyTime = legacy.String
	}
	return &s, nil
}

// Create inserts a session and populates its generated ID.  Zero times
// and empty legacy strings are stored as NULL.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (event_id, title, speaker, starts_at, ends_at, day, legacy_time)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		s.EventID, s.Title, s.Speaker,
		nullTime(s.StartsAt), nullTime(s.EndsAt), nullTime(s.Day), nullString(s.LegacyTime))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func nullString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// GetByID returns a single session or sql.ErrNoRows.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row.Scan)
}

// ListByEvent returns all sessions of an event in programme order.
func (r *SessionRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE event_id = ? ORDER BY starts_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetByIDs returns the sessions for the given IDs keyed by ID.  IDs
// that do not resolve are simply absent from the map; conflict
// detection treats them as skippable rather than as errors.
func (r *SessionRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*model.Session, error) {
	result := make(map[uint64]*model.Session, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id IN (` +
		strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		result[s.ID] = s
	}
	return result, rows.Err()
}
