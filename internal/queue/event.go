// Package queue defines the message payloads exchanged over the
// broker and the background consumer that drains them.  Messages are
// published only after the originating database transaction has
// committed; they are advisory and never part of the ledger's
// consistency guarantees.
package queue

// Queue names used for registration lifecycle notifications.
const (
	RegistrationQueueName = "registration.settled"
	PromotionQueueName    = "waitlist.promoted"
)

// RegistrationSettledEvent is published when a registration commits in
// CONFIRMED or WAITLISTED state, or transitions to CANCELLED.  It
// carries enough for downstream consumers (email sender, analytics) to
// act without querying the primary database.
type RegistrationSettledEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	UserID         uint64 `json:"user_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	TicketTierID   uint64 `json:"ticket_tier_id"`
	Status         string `json:"status"`
	TicketNumber   string `json:"ticket_number"`
	OccurredAt     string `json:"occurred_at"`
}

// WaitlistPromotedEvent is published for each registration the ledger
// promoted from the waitlist after a cancellation freed a slot.
type WaitlistPromotedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	UserID         uint64 `json:"user_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	TicketNumber   string `json:"ticket_number"`
	PromotedAt     string `json:"promoted_at"`
}
