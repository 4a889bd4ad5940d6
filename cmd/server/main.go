// Storefront gateway entrypoint. Wires the session stores, the upstream salon
// API clients, the notification dispatcher and the link reconciler, then
// serves the storefront HTTP API.
//
// @title        Storefront Gateway API
// @version      1.0
// @description  Session-backed storefront gateway for the salon platform.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"

	"github.com/threekst/storefront-gateway/internal/api"
	"github.com/threekst/storefront-gateway/internal/core/service"
	"github.com/threekst/storefront-gateway/internal/infrastructure/config"
	mongodb "github.com/threekst/storefront-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/threekst/storefront-gateway/internal/infrastructure/db/redis"
	"github.com/threekst/storefront-gateway/internal/infrastructure/jobs"
	"github.com/threekst/storefront-gateway/internal/infrastructure/queue"
	"github.com/threekst/storefront-gateway/internal/infrastructure/upstream"
	"github.com/threekst/storefront-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "storefront-gateway",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- State stores ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	db, disconnect, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = disconnect(shutdownCtx)
	}()

	sessions := redisdb.NewSessionStore(rdb)
	wizards := redisdb.NewWizardStore(rdb)
	cartCache := redisdb.NewCartCache(rdb)
	linkJobs := mongodb.NewLinkJobRepository(db)

	// --- Notification dispatcher ---
	sinks := []queue.Sink{queue.NewLogSink(log)}
	if cfg.AMQP.URL != "" {
		conn, err := amqp.Dial(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp connection failed")
		}
		defer conn.Close()

		amqpSink, err := queue.NewAMQPSink(conn)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp sink setup failed")
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
	}
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, sinks, log)
	dispatcher.Start(ctx)

	// --- Upstream clients ---
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, sessions, log)
	authAPI := upstream.NewAuthClient(client)
	cartAPI := upstream.NewCartClient(client)
	bookingAPI := upstream.NewBookingClient(client)
	catalogAPI := upstream.NewCatalogClient(client)
	orderAPI := upstream.NewOrderClient(client)
	userAPI := upstream.NewUserAdminClient(client)
	mediaAPI := upstream.NewMediaClient(client)

	// --- Services ---
	cartService := service.NewCartService(cartAPI, cartCache, dispatcher, log)
	authService := service.NewAuthService(authAPI, sessions, cartService, dispatcher, log)
	bookingService := service.NewBookingService(bookingAPI, authService, wizards, linkJobs, dispatcher, log)

	// --- Link reconciler ---
	scheduler := cron.New()
	reconciler := jobs.NewLinkReconciler(linkJobs, bookingAPI, cfg.Linker.MaxAttempts, log)
	if _, err := reconciler.Schedule(ctx, scheduler, cfg.Linker.Spec); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Linker.Spec).Msg("link reconciler schedule failed")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// --- HTTP server ---
	e := api.NewRouter(cfg.JWTSecret, api.Deps{
		Auth:       authService,
		Cart:       cartService,
		Bookings:   bookingService,
		Sessions:   sessions,
		BookingAPI: bookingAPI,
		CatalogAPI: catalogAPI,
		OrderAPI:   orderAPI,
		UserAPI:    userAPI,
		MediaAPI:   mediaAPI,
		Mongo:      db,
		Redis:      rdb,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
