package model

import "time"

// RegistrationStatus enumerates the lifecycle states of a registration.
// A registration is created CONFIRMED or WAITLISTED; WAITLISTED may
// become CONFIRMED through promotion; both may become CANCELLED.
// PENDING is reserved for externally initiated flows that have not yet
// settled (e.g. an import in progress) and never originates from the
// registration service itself.
type RegistrationStatus string

const (
	RegistrationConfirmed  RegistrationStatus = "CONFIRMED"
	RegistrationPending    RegistrationStatus = "PENDING"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
	RegistrationWaitlisted RegistrationStatus = "WAITLISTED"
)

// Registration records a user's registration for an event under a
// specific ticket tier.  The waitlist has no table of its own: the set
// of WAITLISTED registrations for an event, ordered by CreatedAt with
// ID as tie-breaker, is the waitlist.
//
// Fields:
//
//	ID           – primary key identifier.
//	UserID       – user who registered.
//	EventID      – event being registered for.
//	TicketTierID – tier whose stock this registration holds.
//	Status       – lifecycle state (see RegistrationStatus).
//	TicketNumber – globally unique human-readable ticket identifier.
//	CreatedAt    – creation timestamp; defines waitlist order.
//	UpdatedAt    – last update timestamp.
type Registration struct {
	ID           uint64             // registrations.id
	UserID       uint64             // registrations.user_id
	EventID      uint64             // registrations.event_id
	TicketTierID uint64             // registrations.ticket_tier_id
	Status       RegistrationStatus // registrations.status
	TicketNumber string             // registrations.ticket_number
	CreatedAt    time.Time          // registrations.created_at
	UpdatedAt    time.Time          // registrations.updated_at
}
