package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gatherly/event-registration/internal/config"
	"github.com/gatherly/event-registration/internal/database"
	"github.com/gatherly/event-registration/internal/handler"
	"github.com/gatherly/event-registration/internal/ledger"
	"github.com/gatherly/event-registration/internal/queue"
	"github.com/gatherly/event-registration/internal/repository"
	"github.com/gatherly/event-registration/internal/router"
	"github.com/gatherly/event-registration/internal/service"
	"github.com/gatherly/event-registration/internal/ticket"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	events := repository.NewEventRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	sessions := repository.NewSessionRepo(db)
	agendas := repository.NewAgendaRepo(db)

	capacity := ledger.NewCapacityLedger(events, registrations)
	tickets := ticket.NewGenerator()
	regService := service.NewRegistrationService(db, capacity, events, registrations, tickets)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, router.Deps{
		Config:       cfg,
		Redis:        rdb,
		Browse:       handler.NewBrowseHandler(events, sessions),
		Registration: handler.NewRegistrationHandler(regService, registrations),
		Agenda:       handler.NewAgendaHandler(sessions, agendas),
		Organizer:    handler.NewOrganizerHandler(events, sessions, registrations, regService),
	})

	// Consume settlement and promotion events into the notification
	// log.  The consumer reconnects on broker failure and never blocks
	// the HTTP path.
	go queue.StartNotificationConsumer()

	log.Printf("starting server on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
