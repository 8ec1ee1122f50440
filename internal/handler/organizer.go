package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/model"
	"github.com/gatherly/event-registration/internal/repository"
	"github.com/gatherly/event-registration/internal/service"
)

// OrganizerHandler exposes the organizer-facing management endpoints:
// creating events and sessions, driving the event lifecycle, and
// inspecting or cancelling registrations for owned events.
type OrganizerHandler struct {
	events        *repository.EventRepo
	sessions      *repository.SessionRepo
	registrations *repository.RegistrationRepo
	service       *service.RegistrationService
}

// NewOrganizerHandler constructs an OrganizerHandler.
func NewOrganizerHandler(events *repository.EventRepo, sessions *repository.SessionRepo, registrations *repository.RegistrationRepo, svc *service.RegistrationService) *OrganizerHandler {
	return &OrganizerHandler{
		events:        events,
		sessions:      sessions,
		registrations: registrations,
		service:       svc,
	}
}

type createTierRequest struct {
	Name       string `json:"name"`
	PriceCents uint32 `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

type createEventRequest struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Capacity        int                 `json:"capacity"`
	WaitlistEnabled bool                `json:"waitlist_enabled"`
	StartsAt        time.Time           `json:"starts_at"`
	EndsAt          time.Time           `json:"ends_at"`
	TicketTiers     []createTierRequest `json:"ticket_tiers"`
}

// CreateEvent handles POST /v1/events.  The event is created in DRAFT
// together with its tiers; it accepts no registrations until the
// organizer publishes it.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.Capacity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must not be negative"})
	}
	if len(req.TicketTiers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one ticket tier is required"})
	}
	for _, t := range req.TicketTiers {
		if strings.TrimSpace(t.Name) == "" || t.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each tier needs a name and a positive quantity"})
		}
	}

	ev := &model.Event{
		OrganizerID:     organizerID,
		Title:           req.Title,
		Description:     req.Description,
		Capacity:        req.Capacity,
		WaitlistEnabled: req.WaitlistEnabled,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	}
	tiers := make([]model.TicketTier, len(req.TicketTiers))
	for i, t := range req.TicketTiers {
		tiers[i] = model.TicketTier{Name: t.Name, PriceCents: t.PriceCents, Quantity: t.Quantity}
	}

	if err := h.events.Create(c.Request().Context(), ev, tiers); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event"})
	}

	tierList := make([]echo.Map, 0, len(tiers))
	for i := range tiers {
		tierList = append(tierList, tierJSON(&tiers[i]))
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           ev.ID,
		"status":       ev.Status,
		"ticket_tiers": tierList,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateEventStatus handles PATCH /v1/events/:id/status.  Legal
// transitions are DRAFT to PUBLISHED and PUBLISHED to CANCELLED or
// COMPLETED; anything else is a conflict.
func (h *OrganizerHandler) UpdateEventStatus(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	next := model.EventStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch next {
	case model.EventPublished, model.EventCancelled, model.EventCompleted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be PUBLISHED, CANCELLED or COMPLETED"})
	}

	err = h.events.UpdateStatus(c.Request().Context(), eventID, organizerID, next)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"id": eventID, "status": next})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
}

type createSessionRequest struct {
	Title    string    `json:"title"`
	Speaker  string    `json:"speaker"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Day      string    `json:"day"`  // YYYY-MM-DD, for legacy-style sessions
	Time     string    `json:"time"` // raw range string, e.g. "10:00 AM - 11:30 AM"
}

// CreateSession handles POST /v1/events/:id/sessions.  A session needs
// either explicit starts_at/ends_at or a day plus legacy time string;
// sessions without any schedule are accepted but never conflict.
func (h *OrganizerHandler) CreateSession(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	ev, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	if ev.OrganizerID != organizerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if !req.StartsAt.IsZero() && !req.EndsAt.After(req.StartsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}

	s := &model.Session{
		EventID:    eventID,
		Title:      req.Title,
		Speaker:    req.Speaker,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		LegacyTime: strings.TrimSpace(req.Time),
	}
	if req.Day != "" {
		day, err := time.Parse("2006-01-02", req.Day)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be YYYY-MM-DD"})
		}
		s.Day = day.UTC()
	}

	if err := h.sessions.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
	}
	return c.JSON(http.StatusCreated, sessionJSON(s))
}

// ListEventRegistrations handles GET /v1/events/:id/registrations for
// the event's organizer.
func (h *OrganizerHandler) ListEventRegistrations(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	details, err := h.registrations.ListByEventForOwner(c.Request().Context(), eventID, organizerID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"registrations": details})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list registrations"})
}

// CancelRegistration handles DELETE /v1/events/:id/registrations/:rid.
// The organizer cancels an attendee's registration; capacity release
// and waitlist promotion behave exactly as for a self-cancellation.
func (h *OrganizerHandler) CancelRegistration(c echo.Context) error {
	registrationID, ok := pathID(c, "rid")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	if err := h.service.Cancel(c.Request().Context(), registrationID, organizerID, true); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "registration cancelled"})
}
