// Package ledger is the single source of truth for capacity arithmetic.
// It decides whether a registration attempt is confirmed, waitlisted or
// rejected, and applies every counter mutation for events and ticket
// tiers inside a transaction that holds the event row lock.  The
// decision rules themselves are pure functions so they can be tested
// without a database.
package ledger

import "errors"

// Business rejections returned by the ledger.  These are stable
// outcomes of the event's current state, never retried, and handlers
// surface the specific reason to the caller.
var (
	// ErrEventNotAvailable is returned when the event is not in
	// PUBLISHED status.  Handlers should translate this into 422.
	ErrEventNotAvailable = errors.New("event is not open for registration")

	// ErrCapacityFull is returned when the event is at capacity and
	// the waitlist is disabled.  Handlers should translate this into
	// 409.
	ErrCapacityFull = errors.New("event is at full capacity")

	// ErrInvalidTier is returned when the referenced ticket tier does
	// not exist on the event.  Handlers should translate this into 422.
	ErrInvalidTier = errors.New("ticket tier does not exist on this event")

	// ErrTierSoldOut is returned when the tier's stock is exhausted.
	// Handlers should translate this into 409.
	ErrTierSoldOut = errors.New("ticket tier is sold out")

	// ErrNotFound is returned when an event, registration or session
	// ID does not resolve.  Handlers should translate this into 404.
	ErrNotFound = errors.New("not found")
)

// ErrTransientStore classifies persistence failures (connection loss,
// deadlock, lock wait timeout) that are safe to retry with backoff, as
// opposed to the business rejections above which reflect stable state.
// Storage errors crossing the service boundary are wrapped with this
// sentinel so callers can test with errors.Is.
var ErrTransientStore = errors.New("transient store error")
