package repository

import (
	"context"
	"database/sql"
)

// AgendaRepo provides persistence for personal agendas.  Each row
// marks one session a user has added; agendas are keyed per user so
// operations on different users never contend.
type AgendaRepo struct {
	db *sql.DB
}

// NewAgendaRepo returns an AgendaRepo bound to the given database.
func NewAgendaRepo(db *sql.DB) *AgendaRepo { return &AgendaRepo{db: db} }

// SessionIDs returns the IDs of the sessions on the user's agenda in
// the order they were added.  An empty agenda returns an empty slice.
func (r *AgendaRepo) SessionIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	const q = `SELECT session_id FROM agenda_entries WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add inserts a session onto the user's agenda.  Adding a session that
// is already present is a no-op thanks to the unique (user_id,
// session_id) key; the INSERT IGNORE keeps the operation idempotent.
func (r *AgendaRepo) Add(ctx context.Context, userID, sessionID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO agenda_entries (user_id, session_id) VALUES (?, ?)`,
		userID, sessionID)
	return err
}

// Remove deletes a session from the user's agenda and reports whether
// a row was actually removed.
func (r *AgendaRepo) Remove(ctx context.Context, userID, sessionID uint64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM agenda_entries WHERE user_id = ? AND session_id = ?`,
		userID, sessionID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
