package main

import (
	"log"

	"klage_registrering_go/config"
	"klage_registrering_go/db"
	"klage_registrering_go/handlers"
	"klage_registrering_go/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database and run migrations
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Wire external-system clients and services
	handlers.Init(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Health check (no authentication)
	e.GET("/internal/health", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// All functional routes require a bearer token and a caseworker identity
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/registreringer", handlers.CreateRegistreringHandler)
		api.GET("/registreringer", handlers.ListRegistreringerHandler)
		api.GET("/registreringer/:id", handlers.GetRegistreringHandler)
		api.DELETE("/registreringer/:id", handlers.DeleteRegistreringHandler)

		api.PUT("/registreringer/:id/journalpost-id", handlers.SetJournalpostHandler)
		api.PUT("/registreringer/:id/type-id", handlers.SetTypeHandler)
		api.PUT("/registreringer/:id/mulighet", handlers.SetMulighetHandler)
		api.PUT("/registreringer/:id/ytelse-id", handlers.SetYtelseHandler)
		api.PUT("/registreringer/:id/mottatt-vedtaksinstans", handlers.SetMottattVedtaksinstansHandler)
		api.PUT("/registreringer/:id/mottatt-klageinstans", handlers.SetMottattKlageinstansHandler)
		api.PUT("/registreringer/:id/behandlingstid", handlers.SetBehandlingstidHandler)
		api.PUT("/registreringer/:id/hjemmel-id-list", handlers.SetHjemlerHandler)
		api.PUT("/registreringer/:id/saksbehandler-ident", handlers.SetSaksbehandlerHandler)
		api.PUT("/registreringer/:id/oppgave-id", handlers.SetOppgaveHandler)
		api.PUT("/registreringer/:id/klager", handlers.SetKlagerHandler)
		api.PUT("/registreringer/:id/fullmektig", handlers.SetFullmektigHandler)
		api.PUT("/registreringer/:id/avsender", handlers.SetAvsenderHandler)
		api.PUT("/registreringer/:id/svarbrev", handlers.UpdateSvarbrevHandler)

		api.POST("/registreringer/:id/mottakere", handlers.AddMottakerHandler)
		api.DELETE("/registreringer/:id/mottakere/:mottakerId", handlers.RemoveMottakerHandler)

		api.GET("/registreringer/:id/mulighet", handlers.GetMulighetHandler)
		api.GET("/registreringer/:id/svarbrev/preview", handlers.PreviewSvarbrevHandler)
		api.POST("/registreringer/:id/valider", handlers.ValiderHandler)
		api.POST("/registreringer/:id/ferdigstill", handlers.FerdigstillHandler)

		api.POST("/muligheter/sok", handlers.SearchMuligheterHandler)
		api.POST("/parter/sok", handlers.SearchPartHandler)
		api.GET("/eksport/registreringer", handlers.ExportHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
