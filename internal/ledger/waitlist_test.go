package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/event-registration/internal/model"
)

func waitlisted(id uint64, tierID uint64, createdAt time.Time) model.Registration {
	return model.Registration{
		ID:           id,
		EventID:      1,
		TicketTierID: tierID,
		Status:       model.RegistrationWaitlisted,
		CreatedAt:    createdAt,
	}
}

func tierMap(tiers ...model.TicketTier) map[uint64]model.TicketTier {
	m := make(map[uint64]model.TicketTier, len(tiers))
	for _, t := range tiers {
		m[t.ID] = t
	}
	return m
}

// TestSelectPromotionsFIFO checks that entries are promoted oldest
// first and that the slot count caps the selection.
func TestSelectPromotionsFIFO(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.Registration{
		waitlisted(3, 10, base.Add(2*time.Minute)),
		waitlisted(1, 10, base),
		waitlisted(2, 10, base.Add(time.Minute)),
	}
	tiers := tierMap(model.TicketTier{ID: 10, EventID: 1, Quantity: 50, Sold: 10})

	promoted := SelectPromotions(entries, tiers, 2)
	require.Len(t, promoted, 2)
	require.Equal(t, uint64(1), promoted[0].ID)
	require.Equal(t, uint64(2), promoted[1].ID)
}

// TestSelectPromotionsTieBreak checks that entries created at the same
// instant promote in ID order.
func TestSelectPromotionsTieBreak(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.Registration{
		waitlisted(7, 10, at),
		waitlisted(4, 10, at),
	}
	tiers := tierMap(model.TicketTier{ID: 10, EventID: 1, Quantity: 50, Sold: 10})

	promoted := SelectPromotions(entries, tiers, 1)
	require.Len(t, promoted, 1)
	require.Equal(t, uint64(4), promoted[0].ID)
}

// TestSelectPromotionsSkipsShrunkTier checks that an entry whose tier
// was shrunk below its outstanding holds is skipped without blocking
// younger entries on healthy tiers.
func TestSelectPromotionsSkipsShrunkTier(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.Registration{
		waitlisted(1, 10, base),
		waitlisted(2, 20, base.Add(time.Minute)),
	}
	tiers := tierMap(
		model.TicketTier{ID: 10, EventID: 1, Quantity: 5, Sold: 8}, // shrunk below holds
		model.TicketTier{ID: 20, EventID: 1, Quantity: 50, Sold: 10},
	)

	promoted := SelectPromotions(entries, tiers, 1)
	require.Len(t, promoted, 1)
	require.Equal(t, uint64(2), promoted[0].ID)
}

// TestSelectPromotionsSkipsUnknownTierAndWrongStatus checks that
// entries with an unresolvable tier or a non-waitlisted status are
// never selected.
func TestSelectPromotionsSkipsUnknownTierAndWrongStatus(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cancelled := waitlisted(1, 10, base)
	cancelled.Status = model.RegistrationCancelled
	entries := []model.Registration{
		cancelled,
		waitlisted(2, 99, base.Add(time.Minute)), // tier 99 unknown
		waitlisted(3, 10, base.Add(2*time.Minute)),
	}
	tiers := tierMap(model.TicketTier{ID: 10, EventID: 1, Quantity: 50, Sold: 10})

	promoted := SelectPromotions(entries, tiers, 3)
	require.Len(t, promoted, 1)
	require.Equal(t, uint64(3), promoted[0].ID)
}

// TestSelectPromotionsEmptyInputs checks the degenerate cases: no
// slots or no entries select nothing, and the input slice is left in
// its original order.
func TestSelectPromotionsEmptyInputs(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.Registration{
		waitlisted(2, 10, base.Add(time.Minute)),
		waitlisted(1, 10, base),
	}
	tiers := tierMap(model.TicketTier{ID: 10, EventID: 1, Quantity: 50, Sold: 10})

	require.Nil(t, SelectPromotions(entries, tiers, 0))
	require.Nil(t, SelectPromotions(nil, tiers, 1))

	_ = SelectPromotions(entries, tiers, 1)
	require.Equal(t, uint64(2), entries[0].ID, "input order must be preserved")
}
