package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/ledger"
	"github.com/gatherly/event-registration/internal/model"
	"github.com/gatherly/event-registration/internal/repository"
)

// BrowseHandler exposes the public, unauthenticated read endpoints:
// event listings, event details with tiers and live stats, and session
// programmes.  These are the cacheable routes.
type BrowseHandler struct {
	events   *repository.EventRepo
	sessions *repository.SessionRepo
}

// NewBrowseHandler constructs a BrowseHandler.
func NewBrowseHandler(events *repository.EventRepo, sessions *repository.SessionRepo) *BrowseHandler {
	return &BrowseHandler{events: events, sessions: sessions}
}

// ListEvents handles GET /v1/events, returning all PUBLISHED events
// soonest first, each with its capacity stats.
func (h *BrowseHandler) ListEvents(c echo.Context) error {
	events, err := h.events.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list events"})
	}
	out := make([]echo.Map, 0, len(events))
	for i := range events {
		out = append(out, eventJSON(&events[i], ledger.CalculateStats(&events[i])))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// GetEvent handles GET /v1/events/:id, returning the event with its
// ticket tiers and capacity stats.
func (h *BrowseHandler) GetEvent(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()

	ev, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	tiers, err := h.events.TiersByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tiers"})
	}

	body := eventJSON(ev, ledger.CalculateStats(ev))
	tierList := make([]echo.Map, 0, len(tiers))
	for i := range tiers {
		tierList = append(tierList, tierJSON(&tiers[i]))
	}
	body["ticket_tiers"] = tierList
	return c.JSON(http.StatusOK, body)
}

// GetEventStats handles GET /v1/events/:id/stats.  The numbers are a
// snapshot; a successful read does not reserve anything.
func (h *BrowseHandler) GetEventStats(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.events.GetByID(c.Request().Context(), eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	return c.JSON(http.StatusOK, ledger.CalculateStats(ev))
}

// ListSessions handles GET /v1/events/:id/sessions, returning the
// event's programme in schedule order.
func (h *BrowseHandler) ListSessions(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()

	if _, err := h.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	sessions, err := h.sessions.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list sessions"})
	}
	out := make([]echo.Map, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessionJSON(&sessions[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": out})
}

func eventJSON(ev *model.Event, stats ledger.Stats) echo.Map {
	return echo.Map{
		"id":               ev.ID,
		"organizer_id":     ev.OrganizerID,
		"title":            ev.Title,
		"description":      ev.Description,
		"capacity":         ev.Capacity,
		"registered_count": ev.RegisteredCount,
		"waitlist_enabled": ev.WaitlistEnabled,
		"status":           ev.Status,
		"starts_at":        ev.StartsAt,
		"ends_at":          ev.EndsAt,
		"stats":            stats,
	}
}

func tierJSON(t *model.TicketTier) echo.Map {
	return echo.Map{
		"id":          t.ID,
		"name":        t.Name,
		"price_cents": t.PriceCents,
		"quantity":    t.Quantity,
		"sold":        t.Sold,
		"remaining":   t.Remaining(),
	}
}

func sessionJSON(s *model.Session) echo.Map {
	body := echo.Map{
		"id":       s.ID,
		"event_id": s.EventID,
		"title":    s.Title,
		"speaker":  s.Speaker,
	}
	if !s.StartsAt.IsZero() {
		body["starts_at"] = s.StartsAt
	}
	if !s.EndsAt.IsZero() {
		body["ends_at"] = s.EndsAt
	}
	if !s.Day.IsZero() {
		body["day"] = s.Day.Format("2006-01-02")
	}
	if s.LegacyTime != "" {
		body["time"] = s.LegacyTime
	}
	return body
}
