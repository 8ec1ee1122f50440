package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gatherly/event-registration/internal/model"
	"github.com/gatherly/event-registration/internal/repository"
)

// CapacityLedger owns Event.RegisteredCount and TicketTier.Sold.  All
// mutations of those counters go through TryReserveTx and ReleaseTx,
// which must run inside a caller-owned transaction.  Both methods start
// by locking the event row with SELECT ... FOR UPDATE, which serializes
// every capacity operation on one event while operations on different
// events proceed in parallel.
//
// The caller is responsible for committing or rolling back the
// transaction; the ledger never commits.  External side effects
// (notifications) must wait until after the commit.
type CapacityLedger struct {
	events        *repository.EventRepo
	registrations *repository.RegistrationRepo
}

// NewCapacityLedger constructs a CapacityLedger.  Both repositories
// must be non-nil.
func NewCapacityLedger(events *repository.EventRepo, registrations *repository.RegistrationRepo) *CapacityLedger {
	if events == nil || registrations == nil {
		panic("nil repository passed to NewCapacityLedger")
	}
	return &CapacityLedger{events: events, registrations: registrations}
}

// TryReserveTx atomically checks the admission rules and applies the
// corresponding counter increments.  On AdmissionConfirmed both the
// event's registered count and the tier's sold count increment; on
// AdmissionWaitlisted only the tier's sold count increments, because a
// waitlisted registration holds tier stock from the moment it is
// created.  Business rejections come back unwrapped (ErrEventNotAvailable,
// ErrCapacityFull, ErrInvalidTier, ErrTierSoldOut, ErrNotFound);
// storage failures are wrapped with ErrTransientStore.
func (l *CapacityLedger) TryReserveTx(ctx context.Context, tx *sql.Tx, eventID, tierID uint64) (Admission, error) {
	ev, err := l.events.GetForUpdateTx(ctx, tx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: lock event: %v", ErrTransientStore, err)
	}
	tier, err := l.events.GetTierForUpdateTx(ctx, tx, eventID, tierID)
	if err != nil {
		return 0, fmt.Errorf("%w: lock tier: %v", ErrTransientStore, err)
	}
	admission, err := Decide(ev, tier)
	if err != nil {
		return 0, err
	}
	if err := l.events.ApplyReserveTx(ctx, tx, eventID, tierID, admission == AdmissionConfirmed); err != nil {
		return 0, fmt.Errorf("%w: apply reserve: %v", ErrTransientStore, err)
	}
	return admission, nil
}

// ReleaseTx returns a registration's capacity to the pool.  The tier's
// sold count always decrements, because confirmed and waitlisted
// registrations both hold tier stock.  When wasConfirmed is true the
// event's registered count also decrements, and the freed slot is
// offered to the waitlist inside the same transaction: the oldest
// eligible WAITLISTED registration flips to CONFIRMED and the
// registered count increments again.  Running promotion under the same
// event lock as the release closes the window where the freed slot is
// visible to a concurrent TryReserveTx and to the promotion path at
// once.
//
// Promotion is best-effort: when no eligible entry exists the slot is
// simply left free, and a promotion failure never surfaces as a
// failure of the release itself beyond the transaction's own fate.
// The returned slice holds the promoted registrations (already flipped
// to CONFIRMED) so the caller can notify them after commit.
func (l *CapacityLedger) ReleaseTx(ctx context.Context, tx *sql.Tx, eventID, tierID uint64, wasConfirmed bool) ([]model.Registration, error) {
	if _, err := l.events.GetForUpdateTx(ctx, tx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: lock event: %v", ErrTransientStore, err)
	}
	if err := l.events.ApplyReleaseTx(ctx, tx, eventID, tierID, wasConfirmed); err != nil {
		return nil, fmt.Errorf("%w: apply release: %v", ErrTransientStore, err)
	}
	if !wasConfirmed {
		return nil, nil
	}

	entries, err := l.registrations.WaitlistedForUpdateTx(ctx, tx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: load waitlist: %v", ErrTransientStore, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	tiers, err := l.events.TiersByEventTx(ctx, tx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: load tiers: %v", ErrTransientStore, err)
	}

	promoted := SelectPromotions(entries, tiers, 1)
	for i := range promoted {
		if err := l.registrations.UpdateStatusTx(ctx, tx, promoted[i].ID, model.RegistrationConfirmed); err != nil {
			return nil, fmt.Errorf("%w: promote registration: %v", ErrTransientStore, err)
		}
		if err := l.events.ApplyPromotionTx(ctx, tx, eventID); err != nil {
			return nil, fmt.Errorf("%w: apply promotion: %v", ErrTransientStore, err)
		}
		promoted[i].Status = model.RegistrationConfirmed
	}
	return promoted, nil
}
