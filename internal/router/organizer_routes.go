package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/middleware"
)

// registerOrganizerRoutes mounts the event management endpoints.
// Ownership of the specific event is checked again in the repository
// layer; the role gate here only keeps plain attendees out.
func registerOrganizerRoutes(e *echo.Echo, d Deps) {
	auth := middleware.JWTAuth(d.Config.JWTSecret)
	org := e.Group("/v1", auth, middleware.RequireRole("ORGANIZER"))

	org.POST("/events", d.Organizer.CreateEvent)
	org.PATCH("/events/:id/status", d.Organizer.UpdateEventStatus)
	org.POST("/events/:id/sessions", d.Organizer.CreateSession)
	org.GET("/events/:id/registrations", d.Organizer.ListEventRegistrations)
	org.DELETE("/events/:id/registrations/:rid", d.Organizer.CancelRegistration)
}
