package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/model"
	"github.com/gatherly/event-registration/internal/repository"
	"github.com/gatherly/event-registration/internal/service"
)

// RegistrationHandler exposes the attendee-facing registration
// endpoints.  All capacity rules live in the service and ledger
// layers; the handler only binds input and shapes responses.
type RegistrationHandler struct {
	service       *service.RegistrationService
	registrations *repository.RegistrationRepo
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService, registrations *repository.RegistrationRepo) *RegistrationHandler {
	return &RegistrationHandler{service: svc, registrations: registrations}
}

type createRegistrationRequest struct {
	TicketTierID uint64 `json:"ticket_tier_id"`
}

// CreateRegistration handles POST /v1/events/:id/registrations.  The
// response status distinguishes the two successful outcomes: 201 for a
// confirmed seat, 202 for a waitlist placement.
func (h *RegistrationHandler) CreateRegistration(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createRegistrationRequest
	if err := c.Bind(&req); err != nil || req.TicketTierID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_tier_id is required"})
	}

	reg, err := h.service.Create(c.Request().Context(), eventID, userID, req.TicketTierID)
	if err != nil {
		return respondDomainError(c, err)
	}

	status := http.StatusCreated
	if reg.Status == model.RegistrationWaitlisted {
		status = http.StatusAccepted
	}
	return c.JSON(status, echo.Map{
		"id":             reg.ID,
		"event_id":       reg.EventID,
		"ticket_tier_id": reg.TicketTierID,
		"status":         reg.Status,
		"ticket_number":  reg.TicketNumber,
		"created_at":     reg.CreatedAt,
	})
}

// CancelRegistration handles DELETE /v1/registrations/:id for the
// registrant themselves.  A freed confirmed slot may promote the
// oldest eligible waitlist entry as part of the same operation.
func (h *RegistrationHandler) CancelRegistration(c echo.Context) error {
	registrationID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	if err := h.service.Cancel(c.Request().Context(), registrationID, userID, false); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "registration cancelled"})
}

// ListMyRegistrations handles GET /v1/my-registrations, returning the
// caller's registrations with event and tier details.  Waitlisted
// entries include their current 1-based queue position.
func (h *RegistrationHandler) ListMyRegistrations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	details, err := h.registrations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list registrations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"registrations": details})
}
