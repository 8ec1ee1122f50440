// Package router wires handlers, middleware and route groups onto the
// Echo instance.  Public browse routes sit behind the Redis response
// cache; authenticated routes split into attendee and organizer groups
// gated by JWT role.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gatherly/event-registration/internal/config"
	"github.com/gatherly/event-registration/internal/handler"
	"github.com/gatherly/event-registration/internal/middleware"
)

// Deps collects everything route registration needs.
type Deps struct {
	Config       config.Config
	Redis        *redis.Client
	Browse       *handler.BrowseHandler
	Registration *handler.RegistrationHandler
	Agenda       *handler.AgendaHandler
	Organizer    *handler.OrganizerHandler
}

// Register mounts all routes on e.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	registerPublicRoutes(e, d)
	registerAttendeeRoutes(e, d)
	registerOrganizerRoutes(e, d)
}

// registerPublicRoutes mounts the unauthenticated read endpoints.
// They are safe to cache: every response is a snapshot with no
// per-user content.
func registerPublicRoutes(e *echo.Echo, d Deps) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)

	pub := e.Group("/v1", cache)
	pub.GET("/events", d.Browse.ListEvents)
	pub.GET("/events/:id", d.Browse.GetEvent)
	pub.GET("/events/:id/stats", d.Browse.GetEventStats)
	pub.GET("/events/:id/sessions", d.Browse.ListSessions)
}
