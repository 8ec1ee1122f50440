package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-registration/internal/config"
	"github.com/gatherly/event-registration/internal/middleware"
)

// registerAttendeeRoutes mounts the endpoints attendees call with
// their own identity.  The registration POST carries the token-bucket
// limiter so an on-sale rush is shed at the edge instead of queueing
// on the event row lock.
func registerAttendeeRoutes(e *echo.Echo, d Deps) {
	auth := middleware.JWTAuth(d.Config.JWTSecret)
	attendee := e.Group("/v1", auth, middleware.RequireRole("ATTENDEE", "ORGANIZER"))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)
	attendee.POST("/events/:id/registrations", d.Registration.CreateRegistration, limiter)

	attendee.DELETE("/registrations/:id", d.Registration.CancelRegistration)
	attendee.GET("/my-registrations", d.Registration.ListMyRegistrations)

	attendee.POST("/agenda/sessions/:id", d.Agenda.AddSession)
	attendee.DELETE("/agenda/sessions/:id", d.Agenda.RemoveSession)
	attendee.GET("/my-agenda", d.Agenda.ListAgenda)
}
