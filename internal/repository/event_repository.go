package repository

import (
	"context"
	"database/sql"

	"github.com/gatherly/event-registration/internal/model"
)

// EventRepo provides persistence for events and their ticket tiers.
// Counter columns (events.registered_count, ticket_tiers.sold) are
// only written by the Apply...Tx methods, which the capacity ledger
// calls while holding the event row lock.  All timestamps are UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so orchestrating code can open
// transactions spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, organizer_id, title, description, capacity, registered_count,
    waitlist_enabled, status, starts_at, ends_at, created_at, updated_at`

func scanEvent(row *sql.Row) (*model.Event, error) {
	var ev model.Event
	err := row.Scan(
		&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Description, &ev.Capacity,
		&ev.RegisteredCount, &ev.WaitlistEnabled, &ev.Status,
		&ev.StartsAt, &ev.EndsAt, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create inserts an event and its tiers in a single transaction and
// populates the generated IDs.  New events always start in DRAFT with
// zeroed counters regardless of what the caller set.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event, tiers []model.TicketTier) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO events
        (organizer_id, title, description, capacity, registered_count, waitlist_enabled, status, starts_at, ends_at)
        VALUES (?, ?, ?, ?, 0, ?, 'DRAFT', ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		ev.OrganizerID, ev.Title, ev.Description, ev.Capacity,
		ev.WaitlistEnabled, ev.StartsAt.UTC(), ev.EndsAt.UTC(),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	ev.Status = model.EventDraft
	ev.RegisteredCount = 0

	const tierQ = `INSERT INTO ticket_tiers (event_id, name, price_cents, quantity, sold)
        VALUES (?, ?, ?, ?, 0)`
	for i := range tiers {
		res, err := tx.ExecContext(ctx, tierQ, ev.ID, tiers[i].Name, tiers[i].PriceCents, tiers[i].Quantity)
		if err != nil {
			return err
		}
		tid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		tiers[i].ID = uint64(tid)
		tiers[i].EventID = ev.ID
		tiers[i].Sold = 0
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single event or sql.ErrNoRows.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
}

// GetForUpdateTx loads an event row with an exclusive lock.  Every
// capacity operation on the event takes this lock first, so concurrent
// reservations and releases for one event serialize while other events
// stay unaffected.  Returns sql.ErrNoRows when the event is missing.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Event, error) {
	return scanEvent(tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ? FOR UPDATE`, id))
}

// GetTierForUpdateTx loads one tier of an event with an exclusive
// lock.  A missing tier returns (nil, nil): tier existence is a
// business decision for the ledger, not a storage failure.
func (r *EventRepo) GetTierForUpdateTx(ctx context.Context, tx *sql.Tx, eventID, tierID uint64) (*model.TicketTier, error) {
	const q = `SELECT id, event_id, name, price_cents, quantity, sold, created_at, updated_at
        FROM ticket_tiers WHERE id = ? AND event_id = ? FOR UPDATE`
	var t model.TicketTier
	err := tx.QueryRowContext(ctx, q, tierID, eventID).Scan(
		&t.ID, &t.EventID, &t.Name, &t.PriceCents, &t.Quantity, &t.Sold,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// TiersByEvent returns all tiers of an event in creation order.
func (r *EventRepo) TiersByEvent(ctx context.Context, eventID uint64) ([]model.TicketTier, error) {
	const q = `SELECT id, event_id, name, price_cents, quantity, sold, created_at, updated_at
        FROM ticket_tiers WHERE event_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tiers []model.TicketTier
	for rows.Next() {
		var t model.TicketTier
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.PriceCents, &t.Quantity, &t.Sold,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// TiersByEventTx returns the event's tiers keyed by ID, within the
// caller's transaction.  The ledger uses this during promotion to
// check tier room; the event row lock already serializes the read.
func (r *EventRepo) TiersByEventTx(ctx context.Context, tx *sql.Tx, eventID uint64) (map[uint64]model.TicketTier, error) {
	const q = `SELECT id, event_id, name, price_cents, quantity, sold, created_at, updated_at
        FROM ticket_tiers WHERE event_id = ?`
	rows, err := tx.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tiers := make(map[uint64]model.TicketTier)
	for rows.Next() {
		var t model.TicketTier
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.PriceCents, &t.Quantity, &t.Sold,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tiers[t.ID] = t
	}
	return tiers, rows.Err()
}

// ApplyReserveTx increments the tier's sold count and, for a confirmed
// admission, the event's registered count.  Callers must hold the
// event row lock and have validated the admission with the ledger's
// decision rules first.
func (r *EventRepo) ApplyReserveTx(ctx context.Context, tx *sql.Tx, eventID, tierID uint64, confirmed bool) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE ticket_tiers SET sold = sold + 1 WHERE id = ? AND event_id = ?`,
		tierID, eventID); err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE events SET registered_count = registered_count + 1 WHERE id = ?`, eventID)
	return err
}

// ApplyReleaseTx decrements the tier's sold count and, when the
// released registration was confirmed, the event's registered count.
// The decrements are guarded so a double release can never drive a
// counter negative.
func (r *EventRepo) ApplyReleaseTx(ctx context.Context, tx *sql.Tx, eventID, tierID uint64, wasConfirmed bool) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE ticket_tiers SET sold = sold - 1 WHERE id = ? AND event_id = ? AND sold > 0`,
		tierID, eventID); err != nil {
		return err
	}
	if !wasConfirmed {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE events SET registered_count = registered_count - 1 WHERE id = ? AND registered_count > 0`,
		eventID)
	return err
}

// ApplyPromotionTx increments the event's registered count for a
// waitlist promotion.  The tier's sold count is untouched: the
// promoted registration has held its tier stock since it was created.
func (r *EventRepo) ApplyPromotionTx(ctx context.Context, tx *sql.Tx, eventID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE events SET registered_count = registered_count + 1 WHERE id = ?`, eventID)
	return err
}

// UpdateStatus transitions an event between lifecycle states, checking
// ownership and transition legality in one statement sequence.  It
// returns sql.ErrNoRows when the event does not exist, ErrForbidden
// when the caller is not the organizer and ErrConflict when the
// transition is not allowed from the current status.
func (r *EventRepo) UpdateStatus(ctx context.Context, eventID, organizerID uint64, next model.EventStatus) error {
	var legalFrom []model.EventStatus
	switch next {
	case model.EventPublished:
		legalFrom = []model.EventStatus{model.EventDraft}
	case model.EventCancelled, model.EventCompleted:
		legalFrom = []model.EventStatus{model.EventPublished}
	default:
		return ErrConflict
	}

	var ownerID uint64
	var current model.EventStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT organizer_id, status FROM events WHERE id = ?`, eventID,
	).Scan(&ownerID, &current)
	if err != nil {
		return err
	}
	if ownerID != organizerID {
		return ErrForbidden
	}
	legal := false
	for _, from := range legalFrom {
		if current == from {
			legal = true
		}
	}
	if !legal {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE events SET status = ? WHERE id = ? AND status = ?`,
		next, eventID, current)
	return err
}

// ListPublished returns all PUBLISHED events, soonest first.
func (r *EventRepo) ListPublished(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE status = 'PUBLISHED' ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(
			&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Description, &ev.Capacity,
			&ev.RegisteredCount, &ev.WaitlistEnabled, &ev.Status,
			&ev.StartsAt, &ev.EndsAt, &ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
