package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"humanizerapi/internal/config"
	"humanizerapi/internal/database"
	"humanizerapi/internal/database/migration"
	handlers "humanizerapi/internal/http/handler"
	"humanizerapi/internal/http/middleware"
	"humanizerapi/internal/humanizer"
	"humanizerapi/internal/otel"
	"humanizerapi/internal/repository/postgres"
	"humanizerapi/internal/service"
	"humanizerapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing first so every later init is covered.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL connection (pooled via database/sql, instrumented with otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage for user file uploads
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Outbound client for the text transformation service
	humanizerClient, err := humanizer.NewClient(cfg.Humanizer)
	if err != nil {
		log.Fatalf("failed to initialize humanizer client: %v", err)
	}
	poller := humanizer.NewPoller(
		humanizerClient,
		time.Duration(cfg.Humanizer.PollIntervalMs)*time.Millisecond,
		cfg.Humanizer.MaxPollAttempts,
	)

	// Repositories and services
	profileRepo := postgres.NewProfilePostgres(db)
	projectRepo := postgres.NewProjectPostgres(db)
	fileRepo := postgres.NewFilePostgres(db)

	svcs := handlers.Services{
		Auth:     service.NewAuthService(profileRepo, cfg.Auth, cfg.Credits.SignupGrant),
		Humanize: service.NewHumanizeService(profileRepo, humanizerClient, poller, cfg.Credits.HumanizeCost),
		Projects: service.NewProjectService(projectRepo, cfg.Credits.ProjectCost),
		Files:    service.NewFileService(objStore, fileRepo, profileRepo, cfg.Credits.UploadCost),
		Billing:  service.NewBillingService(profileRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    service.MaxFileSize + 1<<20, // uploads up to the file limit plus multipart overhead
	})

	// Global middleware: request id, tracing, structured logs, metrics.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(promRegistry)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, []byte(cfg.Auth.JWTSecret), svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
