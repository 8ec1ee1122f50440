package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/repository"
	"github.com/gatherly/event-registration/internal/schedule"
)

// AgendaHandler manages personal agendas: which sessions a user plans
// to attend.  Adding a session runs conflict detection against the
// sessions already on the agenda; a clash is reported, not silently
// accepted, unless the caller forces the add.
type AgendaHandler struct {
	sessions *repository.SessionRepo
	agendas  *repository.AgendaRepo
}

// NewAgendaHandler constructs an AgendaHandler.
func NewAgendaHandler(sessions *repository.SessionRepo, agendas *repository.AgendaRepo) *AgendaHandler {
	return &AgendaHandler{sessions: sessions, agendas: agendas}
}

// AddSession handles POST /v1/agenda/sessions/:id.  When the candidate
// overlaps a session already on the agenda the response is 409 and
// names the clashing session; passing ?force=true overrides the check
// and adds the session anyway.
func (h *AgendaHandler) AddSession(c echo.Context) error {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	candidate, err := h.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load session"})
	}

	force := c.QueryParam("force") == "true"
	if !force {
		existingIDs, err := h.agendas.SessionIDs(ctx, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda"})
		}
		existing, err := h.sessions.GetByIDs(ctx, existingIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda sessions"})
		}
		if clash := schedule.FindConflict(candidate, existingIDs, existing); clash != nil {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":          "schedule conflict",
				"conflict_id":    clash.ID,
				"conflict_title": clash.Title,
			})
		}
	}

	if err := h.agendas.Add(ctx, userID, sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add session"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "session added to agenda"})
}

// RemoveSession handles DELETE /v1/agenda/sessions/:id.
func (h *AgendaHandler) RemoveSession(c echo.Context) error {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	removed, err := h.agendas.Remove(c.Request().Context(), userID, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove session"})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not on agenda"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "session removed from agenda"})
}

// ListAgenda handles GET /v1/my-agenda, returning the caller's agenda
// sessions in the order they were added.
func (h *AgendaHandler) ListAgenda(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	ids, err := h.agendas.SessionIDs(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda"})
	}
	sessions, err := h.sessions.GetByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda sessions"})
	}

	entries := make([]echo.Map, 0, len(ids))
	for _, id := range ids {
		s, ok := sessions[id]
		if !ok {
			continue
		}
		entries = append(entries, sessionJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": entries})
}
