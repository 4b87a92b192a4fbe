package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"donationpoints/docs"
	"donationpoints/internal/cache"
	"donationpoints/internal/config"
	"donationpoints/internal/database"
	"donationpoints/internal/database/migration"
	"donationpoints/internal/events"
	handlers "donationpoints/internal/http/handler"
	"donationpoints/internal/http/middleware"
	"donationpoints/internal/logging"
	"donationpoints/internal/metrics"
	tracing "donationpoints/internal/otel"
	"donationpoints/internal/repository"
	"donationpoints/internal/repository/memory"
	"donationpoints/internal/repository/postgres"
	"donationpoints/internal/service"
	"donationpoints/internal/storage"
)

const serviceName = "donationpoints"

//go:generate swag init -g main.go -d ./,../../internal/http/handler,../../internal/model,../../internal/service,../../internal/validation -o ../../docs --outputTypes go

// @title Donation Points API
// @version 1.0
// @description Crowd-sourced registry of physical donation points.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log, serviceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing_shutdown_failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repo, checks, closeRepo, err := openRepository(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer closeRepo()

	ingestion, err := metrics.NewIngestion(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	opts := []service.Option{service.WithLogger(log), service.WithMetrics(ingestion)}

	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		expiry := time.Duration(cfg.Snapshot.URLExpirySec) * time.Second
		opts = append(opts, service.WithSnapshotStore(store, expiry))
		checks = append(checks, handlers.HealthCheck{Name: "object_storage", Ping: store.Ping})
		log.Info("snapshots_enabled", "bucket", cfg.MinIO.Bucket, "url_expiry", expiry.String())
	}

	if cfg.Valkey.Enabled() {
		if listCache, err := openCache(ctx, cfg.Valkey); err != nil {
			log.Warn("list_cache_disabled", "addr", cfg.Valkey.Addr, "error", err)
		} else {
			defer listCache.Close()
			opts = append(opts, service.WithListCache(listCache))
			log.Info("list_cache_enabled", "addr", cfg.Valkey.Addr, "ttl_sec", cfg.Valkey.TTLSec)
		}
	}

	if cfg.NATS.Enabled() {
		pub, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Warn("events_disabled", "url", cfg.NATS.URL, "error", err)
		} else {
			defer pub.Close()
			opts = append(opts, service.WithEventPublisher(pub))
			log.Info("events_enabled", "subject", cfg.NATS.Subject)
		}
	}

	pointSvc := service.NewDonationPointService(repo, opts...)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
	})))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, pointSvc, checks...)
	app.Get("/metrics", metricsHandler(reg))

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

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting", "addr", addr, "store", cfg.StoreDriver)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server_forced_shutdown", "error", err)
	}
	log.Info("server_stopped")
	return nil
}

// openRepository selects the store named by STORE_DRIVER.
func openRepository(ctx context.Context, cfg *config.AppConfig, log *slog.Logger, reg prometheus.Registerer) (repository.DonationPointRepository, []handlers.HealthCheck, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("memory_store_enabled", "persistent", false)
		return memory.NewDonationPointMemory(), nil, func() {}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		if err := database.RegisterStats(reg, db, cfg.Database.Name); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("register db stats: %w", err)
		}
		checks := []handlers.HealthCheck{{Name: "database", Ping: db.PingContext}}
		return postgres.NewDonationPointPostgres(db), checks, func() { _ = db.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openCache(ctx context.Context, cfg config.ValkeyConfig) (*cache.ListCache, error) {
	c, err := cache.NewValkey(cfg.Addr, time.Duration(cfg.TTLSec)*time.Second)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func metricsHandler(g prometheus.Gatherer) fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
