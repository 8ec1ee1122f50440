package model

import "time"

// EventStatus enumerates the lifecycle states of an event.  Only
// PUBLISHED events accept registrations; the other states reject
// them with EventNotAvailable.
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"     // created but not yet open for registration
	EventPublished EventStatus = "PUBLISHED" // open for registration
	EventCancelled EventStatus = "CANCELLED" // withdrawn by the organizer
	EventCompleted EventStatus = "COMPLETED" // finished; registration closed
)

// Event represents a registerable event created by an organizer.  The
// RegisteredCount column is the authoritative confirmed-registration
// counter and is mutated only by the capacity ledger inside a
// transaction that holds the event row lock.
//
// Fields:
//
//	ID              – primary key identifier.
//	OrganizerID     – user who owns the event.
//	Title           – display title.
//	Description     – free-form description.
//	Capacity        – maximum number of CONFIRMED registrations.
//	RegisteredCount – current number of CONFIRMED registrations.
//	WaitlistEnabled – whether registrations past capacity are waitlisted.
//	Status          – lifecycle state (see EventStatus).
//	StartsAt        – when the event begins.
//	EndsAt          – when the event ends.
//	CreatedAt       – creation timestamp.
//	UpdatedAt       – last update timestamp.
type Event struct {
	ID              uint64      // events.id
	OrganizerID     uint64      // events.organizer_id
	Title           string      // events.title
	Description     string      // events.description
	Capacity        int         // events.capacity
	RegisteredCount int         // events.registered_count
	WaitlistEnabled bool        // events.waitlist_enabled
	Status          EventStatus // events.status
	StartsAt        time.Time   // events.starts_at
	EndsAt          time.Time   // events.ends_at
	CreatedAt       time.Time   // events.created_at
	UpdatedAt       time.Time   // events.updated_at
}

// IsFull reports whether the event has no confirmed slots remaining.
func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// TicketTier is a priced category of tickets with its own independent
// stock.  Sold counts every registration holding tier stock, including
// waitlisted ones; it is mutated only by the capacity ledger.
//
// Fields:
//
//	ID         – primary key identifier.
//	EventID    – event this tier belongs to.
//	Name       – display name (e.g. "General", "VIP").
//	PriceCents – price in cents; zero for free tiers.
//	Quantity   – total stock available in this tier.
//	Sold       – stock currently held (confirmed + waitlisted).
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type TicketTier struct {
	ID         uint64    // ticket_tiers.id
	EventID    uint64    // ticket_tiers.event_id
	Name       string    // ticket_tiers.name
	PriceCents uint32    // ticket_tiers.price_cents
	Quantity   int       // ticket_tiers.quantity
	Sold       int       // ticket_tiers.sold
	CreatedAt  time.Time // ticket_tiers.created_at
	UpdatedAt  time.Time // ticket_tiers.updated_at
}

// Remaining returns the tier stock not yet held by any registration.
func (t *TicketTier) Remaining() int {
	if t.Sold >= t.Quantity {
		return 0
	}
	return t.Quantity - t.Sold
}
