package ledger

import "github.com/gatherly/event-registration/internal/model"

// Admission is the class a successful reservation falls into.
type Admission int

const (
	// AdmissionConfirmed means a confirmed slot was reserved: both the
	// event's registered count and the tier's sold count increment.
	AdmissionConfirmed Admission = iota + 1

	// AdmissionWaitlisted means the event is full but the waitlist is
	// open: only the tier's sold count increments, and the
	// registration joins the FIFO waitlist.
	AdmissionWaitlisted
)

// String returns the registration status an admission maps to.
func (a Admission) String() string {
	if a == AdmissionWaitlisted {
		return string(model.RegistrationWaitlisted)
	}
	return string(model.RegistrationConfirmed)
}

// Decide applies the admission rules to a snapshot of an event and the
// requested tier, returning the admission class or exactly one business
// rejection.  The tier argument is nil when the requested tier does not
// resolve on the event.
//
// Rejections surface in a fixed precedence order so concurrent callers
// always observe the same reason for the same state:
// event-not-available, then capacity-full, then invalid-tier, then
// tier-sold-out.  In particular a full event with the waitlist disabled
// rejects with ErrCapacityFull regardless of tier state.
//
// Decide is pure; callers must hold the event row lock so the snapshot
// cannot move between the check and the subsequent counter update.
func Decide(ev *model.Event, tier *model.TicketTier) (Admission, error) {
	if ev.Status != model.EventPublished {
		return 0, ErrEventNotAvailable
	}
	if ev.IsFull() && !ev.WaitlistEnabled {
		return 0, ErrCapacityFull
	}
	if tier == nil || tier.EventID != ev.ID {
		return 0, ErrInvalidTier
	}
	if tier.Sold >= tier.Quantity {
		return 0, ErrTierSoldOut
	}
	if ev.IsFull() {
		return AdmissionWaitlisted, nil
	}
	return AdmissionConfirmed, nil
}
