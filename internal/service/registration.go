// Package service orchestrates the end-to-end registration flows on
// top of the capacity ledger: transaction scoping, ticket issuance,
// status assignment and post-commit notification publishing.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/event-registration/internal/ledger"
	"github.com/gatherly/event-registration/internal/model"
	"github.com/gatherly/event-registration/internal/queue"
	"github.com/gatherly/event-registration/internal/repository"
	"github.com/gatherly/event-registration/internal/ticket"
)

// RegistrationService creates and cancels registrations.  Each public
// method owns exactly one database transaction; the capacity ledger
// runs inside it under the event row lock, and notifications are
// published only after the commit so broker latency never extends
// lock contention.
type RegistrationService struct {
	db            *sql.DB
	ledger        *ledger.CapacityLedger
	events        *repository.EventRepo
	registrations *repository.RegistrationRepo
	tickets       *ticket.Generator
}

// NewRegistrationService constructs a RegistrationService.  All
// dependencies must be non-nil.
func NewRegistrationService(db *sql.DB, capacity *ledger.CapacityLedger, events *repository.EventRepo, registrations *repository.RegistrationRepo, tickets *ticket.Generator) *RegistrationService {
	if db == nil || capacity == nil || events == nil || registrations == nil || tickets == nil {
		panic("nil dependency passed to NewRegistrationService")
	}
	return &RegistrationService{
		db:            db,
		ledger:        capacity,
		events:        events,
		registrations: registrations,
		tickets:       tickets,
	}
}

// Create registers a user for an event under the given tier.  The
// ticket number is generated before the transaction opens (it needs no
// lock), then the reservation and the registration row commit
// atomically: either the counters moved and the row exists, or
// neither.  Business rejections from the ledger propagate unchanged so
// callers can surface the specific reason; storage failures carry the
// ledger.ErrTransientStore sentinel.
func (s *RegistrationService) Create(ctx context.Context, eventID, userID, tierID uint64) (*model.Registration, error) {
	number, err := s.tickets.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate ticket number: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ledger.ErrTransientStore, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	admission, err := s.ledger.TryReserveTx(ctx, tx, eventID, tierID)
	if err != nil {
		return nil, err
	}

	status := model.RegistrationConfirmed
	if admission == ledger.AdmissionWaitlisted {
		status = model.RegistrationWaitlisted
	}
	reg := &model.Registration{
		UserID:       userID,
		EventID:      eventID,
		TicketTierID: tierID,
		Status:       status,
		TicketNumber: number,
	}
	if err := s.registrations.CreateTx(ctx, tx, reg); err != nil {
		return nil, fmt.Errorf("%w: insert registration: %v", ledger.ErrTransientStore, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ledger.ErrTransientStore, err)
	}
	committed = true

	s.notifySettled(reg)
	return reg, nil
}

// Cancel marks a registration cancelled and releases its capacity.
// userID identifies the caller; when asOrganizer is false the
// registration must belong to the caller, otherwise the caller must
// organize the event.  Cancelling a CONFIRMED registration frees a
// slot and may promote the oldest eligible waitlisted entry inside the
// same transaction; cancelling a WAITLISTED one only releases its tier
// hold.  Cancelling twice returns repository.ErrConflict.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID, userID uint64, asOrganizer bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ledger.ErrTransientStore, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reg, err := s.registrations.GetForUpdateTx(ctx, tx, registrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.ErrNotFound
		}
		return fmt.Errorf("%w: lock registration: %v", ledger.ErrTransientStore, err)
	}

	// The event lock is taken here and held through ReleaseTx, so the
	// release and any promotion happen under one serialized scope.
	ev, err := s.events.GetForUpdateTx(ctx, tx, reg.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.ErrNotFound
		}
		return fmt.Errorf("%w: lock event: %v", ledger.ErrTransientStore, err)
	}
	if asOrganizer {
		if ev.OrganizerID != userID {
			return repository.ErrForbidden
		}
	} else if reg.UserID != userID {
		return repository.ErrForbidden
	}
	if reg.Status == model.RegistrationCancelled {
		return repository.ErrConflict
	}

	wasConfirmed := reg.Status == model.RegistrationConfirmed
	if err := s.registrations.UpdateStatusTx(ctx, tx, reg.ID, model.RegistrationCancelled); err != nil {
		return fmt.Errorf("%w: mark cancelled: %v", ledger.ErrTransientStore, err)
	}
	promoted, err := s.ledger.ReleaseTx(ctx, tx, reg.EventID, reg.TicketTierID, wasConfirmed)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ledger.ErrTransientStore, err)
	}
	committed = true

	reg.Status = model.RegistrationCancelled
	s.notifySettled(reg)
	for i := range promoted {
		s.notifyPromoted(&promoted[i], ev.Title)
	}
	return nil
}

// notifySettled publishes the registration's settled state in the
// background.  Failures only log: notifications are advisory and must
// never fail the request that triggered them.
func (s *RegistrationService) notifySettled(reg *model.Registration) {
	payload := queue.RegistrationSettledEvent{
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		EventID:        reg.EventID,
		TicketTierID:   reg.TicketTierID,
		Status:         string(reg.Status),
		TicketNumber:   reg.TicketNumber,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if ev, err := s.events.GetByID(ctx, reg.EventID); err == nil {
			payload.EventTitle = ev.Title
		}
		_ = queue.PublishRegistrationSettled(ctx, payload)
	}()
}

func (s *RegistrationService) notifyPromoted(reg *model.Registration, eventTitle string) {
	payload := queue.WaitlistPromotedEvent{
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		EventID:        reg.EventID,
		EventTitle:     eventTitle,
		TicketNumber:   reg.TicketNumber,
		PromotedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishWaitlistPromoted(ctx, payload)
	}()
}
