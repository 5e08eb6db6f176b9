package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/handlers"
	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ClientRecord{},
		&models.NotificationEvent{},
		&models.TimeEntry{},
		&models.Invoice{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Outbound adapters
	mailer, err := services.NewMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	bus := services.NewNotificationBus(cfg.RedisURL)
	defer bus.Close()

	handlers.SetDependencies(handlers.Dependencies{
		Mailer:  mailer,
		Bus:     bus,
		Storage: services.NewStorage(cfg),
		PDF:     services.GeneratePDF,
	})
	middleware.InitAssetVersions("static")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.CSPNonce())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.CSRF(cfg.IsProduction()))
	e.Use(middleware.LoadAuthState())

	// Static files and metrics
	e.Static("/static", "static")
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.RegisterRoutes(e)
	e.Server.RegisterOnShutdown(handlers.CloseStreams)

	// Background jobs
	scheduler, err := jobs.StartScheduler(db.DB, cfg, mailer)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go services.Monitor.Run(ctx)

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	<-scheduler.Stop().Done()
	middleware.LoginRateLimiter.Stop()
	middleware.RegisterRateLimiter.Stop()
	middleware.IntakeRateLimiter.Stop()
	middleware.NotifyRateLimiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
}
