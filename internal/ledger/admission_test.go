package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/event-registration/internal/model"
)

func publishedEvent(capacity, registered int, waitlist bool) *model.Event {
	return &model.Event{
		ID:              1,
		Capacity:        capacity,
		RegisteredCount: registered,
		WaitlistEnabled: waitlist,
		Status:          model.EventPublished,
	}
}

func tierWithStock(quantity, sold int) *model.TicketTier {
	return &model.TicketTier{ID: 10, EventID: 1, Name: "General", Quantity: quantity, Sold: sold}
}

// TestDecideConfirmed checks the happy path: a published event with
// room and a tier with stock admits as CONFIRMED.
func TestDecideConfirmed(t *testing.T) {
	admission, err := Decide(publishedEvent(100, 50, false), tierWithStock(40, 10))
	require.NoError(t, err)
	require.Equal(t, AdmissionConfirmed, admission)
	require.Equal(t, "CONFIRMED", admission.String())
}

// TestDecideWaitlisted checks that a full event with the waitlist
// enabled admits as WAITLISTED when the tier still has stock.
func TestDecideWaitlisted(t *testing.T) {
	admission, err := Decide(publishedEvent(100, 100, true), tierWithStock(120, 100))
	require.NoError(t, err)
	require.Equal(t, AdmissionWaitlisted, admission)
	require.Equal(t, "WAITLISTED", admission.String())
}

// TestDecideCapacityFull checks that a full event with the waitlist
// disabled rejects outright.
func TestDecideCapacityFull(t *testing.T) {
	_, err := Decide(publishedEvent(100, 100, false), tierWithStock(120, 100))
	require.ErrorIs(t, err, ErrCapacityFull)
}

// TestDecideEventNotAvailable checks that every non-PUBLISHED status
// rejects before anything else is inspected.
func TestDecideEventNotAvailable(t *testing.T) {
	for _, status := range []model.EventStatus{model.EventDraft, model.EventCancelled, model.EventCompleted} {
		ev := publishedEvent(100, 0, false)
		ev.Status = status
		_, err := Decide(ev, tierWithStock(40, 0))
		require.ErrorIs(t, err, ErrEventNotAvailable, "status %s", status)
	}
}

// TestDecideInvalidTier checks that a missing tier or a tier that
// belongs to a different event rejects as invalid.
func TestDecideInvalidTier(t *testing.T) {
	_, err := Decide(publishedEvent(100, 0, false), nil)
	require.ErrorIs(t, err, ErrInvalidTier)

	foreign := tierWithStock(40, 0)
	foreign.EventID = 2
	_, err = Decide(publishedEvent(100, 0, false), foreign)
	require.ErrorIs(t, err, ErrInvalidTier)
}

// TestDecideTierSoldOut checks that an exhausted tier rejects even
// though the event still has overall capacity.
func TestDecideTierSoldOut(t *testing.T) {
	_, err := Decide(publishedEvent(100, 50, false), tierWithStock(40, 40))
	require.ErrorIs(t, err, ErrTierSoldOut)
}

// TestDecidePrecedence pins the rejection order: a full, waitlist-less
// event reports capacity-full even when the requested tier would also
// have been invalid or sold out.
func TestDecidePrecedence(t *testing.T) {
	full := publishedEvent(100, 100, false)

	_, err := Decide(full, nil)
	require.ErrorIs(t, err, ErrCapacityFull)

	_, err = Decide(full, tierWithStock(40, 40))
	require.ErrorIs(t, err, ErrCapacityFull)

	// With the waitlist open, tier problems become visible again.
	open := publishedEvent(100, 100, true)
	_, err = Decide(open, nil)
	require.ErrorIs(t, err, ErrInvalidTier)
	_, err = Decide(open, tierWithStock(40, 40))
	require.ErrorIs(t, err, ErrTierSoldOut)
}
