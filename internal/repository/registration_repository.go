package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gatherly/event-registration/internal/model"
)

// RegistrationRepo provides persistence for registrations.  The
// waitlist is implicit: WAITLISTED rows for an event ordered by
// created_at (ID as tie-breaker) form the FIFO queue, so no separate
// queue table exists to drift out of sync.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a RegistrationRepo bound to the given
// database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationColumns = `id, user_id, event_id, ticket_tier_id, status, ticket_number, created_at, updated_at`

func scanRegistration(scan func(dest ...any) error) (*model.Registration, error) {
	var reg model.Registration
	err := scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.TicketTierID,
		&reg.Status, &reg.TicketNumber, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// CreateTx inserts a registration within the caller's transaction and
// populates the generated ID and timestamps.  The row must be written
// in the same transaction that reserved its capacity so the counters
// and the registration set stay consistent.
func (r *RegistrationRepo) CreateTx(ctx context.Context, tx *sql.Tx, reg *model.Registration) error {
	const q = `INSERT INTO registrations (user_id, event_id, ticket_tier_id, status, ticket_number)
        VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		reg.UserID, reg.EventID, reg.TicketTierID, reg.Status, reg.TicketNumber)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM registrations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, reg.ID).Scan(&reg.CreatedAt, &reg.UpdatedAt)
}

// GetByID returns a single registration or sql.ErrNoRows.
func (r *RegistrationRepo) GetByID(ctx context.Context, id uint64) (*model.Registration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	return scanRegistration(row.Scan)
}

// GetForUpdateTx loads a registration row with an exclusive lock so a
// cancellation cannot race another cancellation of the same row.
// Returns sql.ErrNoRows when missing.
func (r *RegistrationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Registration, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ? FOR UPDATE`, id)
	return scanRegistration(row.Scan)
}

// UpdateStatusTx sets a registration's status within the caller's
// transaction.
func (r *RegistrationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.RegistrationStatus) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE registrations SET status = ? WHERE id = ?`, status, id)
	return err
}

// WaitlistedForUpdateTx returns the event's waitlist, oldest entry
// first, locking the rows so promotion cannot race a concurrent
// cancellation of a waitlisted entry.  The ordering (created_at, then
// id) matches the FIFO promotion contract.
func (r *RegistrationRepo) WaitlistedForUpdateTx(ctx context.Context, tx *sql.Tx, eventID uint64) ([]model.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations
        WHERE event_id = ? AND status = 'WAITLISTED'
        ORDER BY created_at, id
        FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *reg)
	}
	return entries, rows.Err()
}

// UserRegistrationDetail is a registration joined with its event and
// tier for display to the registrant.  WaitlistPosition is 1-based and
// only set for WAITLISTED registrations.
type UserRegistrationDetail struct {
	ID               uint64    `json:"id"`
	EventID          uint64    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventStartsAt    time.Time `json:"event_starts_at"`
	TierID           uint64    `json:"ticket_tier_id"`
	TierName         string    `json:"tier_name"`
	PriceCents       uint32    `json:"price_cents"`
	Status           string    `json:"status"`
	TicketNumber     string    `json:"ticket_number"`
	WaitlistPosition *int      `json:"waitlist_position,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListByUser returns the user's registrations with event and tier
// details, newest first.  Waitlisted rows carry their current queue
// position, computed against older waitlisted rows for the same event.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]UserRegistrationDetail, error) {
	const q = `SELECT r.id, r.event_id, e.title, e.starts_at,
            t.id, t.name, t.price_cents,
            r.status, r.ticket_number, r.created_at,
            CASE WHEN r.status = 'WAITLISTED' THEN (
                SELECT COUNT(*) + 1 FROM registrations w
                WHERE w.event_id = r.event_id AND w.status = 'WAITLISTED'
                  AND (w.created_at < r.created_at OR (w.created_at = r.created_at AND w.id < r.id))
            ) ELSE NULL END
        FROM registrations r
        JOIN events e ON e.id = r.event_id
        JOIN ticket_tiers t ON t.id = r.ticket_tier_id
        WHERE r.user_id = ?
        ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]UserRegistrationDetail, 0)
	for rows.Next() {
		var d UserRegistrationDetail
		var pos sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.EventTitle, &d.EventStartsAt,
			&d.TierID, &d.TierName, &d.PriceCents,
			&d.Status, &d.TicketNumber, &d.CreatedAt, &pos,
		); err != nil {
			return nil, err
		}
		if pos.Valid {
			p := int(pos.Int64)
			d.WaitlistPosition = &p
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// EventRegistrationDetail is a registration row as shown to the
// event's organizer.
type EventRegistrationDetail struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	TierID       uint64    `json:"ticket_tier_id"`
	TierName     string    `json:"tier_name"`
	Status       string    `json:"status"`
	TicketNumber string    `json:"ticket_number"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListByEventForOwner returns all registrations for an event after
// verifying the caller organizes it.  Returns sql.ErrNoRows when the
// event does not exist and ErrForbidden when owned by someone else.
func (r *RegistrationRepo) ListByEventForOwner(ctx context.Context, eventID, organizerID uint64) ([]EventRegistrationDetail, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT organizer_id FROM events WHERE id = ?`, eventID).Scan(&ownerID)
	if err != nil {
		return nil, err
	}
	if ownerID != organizerID {
		return nil, ErrForbidden
	}
	const q = `SELECT r.id, r.user_id, t.id, t.name, r.status, r.ticket_number, r.created_at
        FROM registrations r
        JOIN ticket_tiers t ON t.id = r.ticket_tier_id
        WHERE r.event_id = ?
        ORDER BY r.created_at`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]EventRegistrationDetail, 0)
	for rows.Next() {
		var d EventRegistrationDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.TierID, &d.TierName,
			&d.Status, &d.TicketNumber, &d.CreatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
