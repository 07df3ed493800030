package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"emailtriage/docs"
	"emailtriage/internal/classifier"
	"emailtriage/internal/config"
	"emailtriage/internal/database"
	"emailtriage/internal/database/migration"
	"emailtriage/internal/extract"
	handlers "emailtriage/internal/http/handler"
	"emailtriage/internal/http/middleware"
	"emailtriage/internal/inference"
	"emailtriage/internal/logger"
	"emailtriage/internal/otel"
	"emailtriage/internal/repository"
	"emailtriage/internal/repository/postgres"
	"emailtriage/internal/responder"
	"emailtriage/internal/service"
)

// @title Email Triage API
// @version 1.0
// @description Classifies emails as Productive or Unproductive and suggests a reply.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.Stdout(cfg.Location)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	if cfg.Inference.Token == "" {
		log.Warn().Str("event", "hf_token_missing").Msg("HF_API_TOKEN is empty, remote inference calls will fall back")
	}

	// Audit log is optional; without DB_HOST classifications are only logged.
	var (
		db      *sql.DB
		events  repository.ClassificationEventRepository
		history service.HistoryService
		pinger  handlers.Pinger
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}

		repo := postgres.NewClassificationPostgres(db)
		events = repo
		history = service.NewHistoryService(repo)
		pinger = db
	} else {
		log.Info().Str("event", "audit_disabled").Msg("DB_HOST not set, classification audit log disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := inference.NewClient(cfg.Inference, nil)
	triage, err := service.NewTriageService(service.TriageDeps{
		Extractor:  extract.New(nil),
		Classifier: classifier.New(nil, client, log),
		Responder:  responder.New(client, log),
		Events:     events,
		Logger:     log,
	}, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize triage service")
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigins}))
	app.Use(otelfiber.Middleware())
	// RequestID must run before Logger so request_id is available in access logs.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:      pinger,
		Triage:  triage,
		History: history,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		shutdown(app, shutdownTracing, log)
	}()

	addr := ":" + cfg.Port
	log.Info().Str("event", "server_starting").Str("addr", addr).Bool("audit_enabled", events != nil).Send()
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func shutdown(app *fiber.App, shutdownTracing func(context.Context) error, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
	log.Info().Str("event", "server_stopped").Send()
}
