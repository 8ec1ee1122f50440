package ledger

import (
	"sort"

	"github.com/gatherly/event-registration/internal/model"
)

// SelectPromotions picks the waitlisted registrations to confirm after
// capacity has freed up.  Entries are considered oldest first
// (CreatedAt, then ID for determinism) and at most slots entries are
// selected.  An entry is skipped — left waitlisted — when its tier no
// longer has room for the stock it already holds, which only happens
// after an organizer shrank the tier's quantity below its outstanding
// holds.  Skipped entries do not block younger entries on other tiers.
//
// Tier stock is not re-reserved here: a waitlisted registration
// consumed its tier stock when it was created, so promotion only moves
// the entry's slot from the waitlist into the confirmed count.
//
// SelectPromotions is pure; the caller applies the status flips and
// counter increments inside the same transaction that freed the slot.
func SelectPromotions(entries []model.Registration, tiers map[uint64]model.TicketTier, slots int) []model.Registration {
	if slots <= 0 || len(entries) == 0 {
		return nil
	}
	ordered := make([]model.Registration, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	promoted := make([]model.Registration, 0, slots)
	for _, entry := range ordered {
		if len(promoted) == slots {
			break
		}
		if entry.Status != model.RegistrationWaitlisted {
			continue
		}
		tier, ok := tiers[entry.TicketTierID]
		if !ok || tier.Sold > tier.Quantity {
			continue
		}
		promoted = append(promoted, entry)
	}
	return promoted
}
