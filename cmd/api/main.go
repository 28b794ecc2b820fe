package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/petrohaul/transport-system/internal/api"
	"github.com/petrohaul/transport-system/internal/core/service"
	"github.com/petrohaul/transport-system/internal/infrastructure/config"
	mongodb "github.com/petrohaul/transport-system/internal/infrastructure/db/mongo"
	redisdb "github.com/petrohaul/transport-system/internal/infrastructure/db/redis"
	"github.com/petrohaul/transport-system/internal/infrastructure/queue"
	"github.com/petrohaul/transport-system/pkg/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	requestRepo := mongodb.NewRequestRepository(db)
	tripRepo := mongodb.NewTripRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	dashboardRepo := mongodb.NewDashboardRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	partyRepo := mongodb.NewPartyRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"transport_requests": requestRepo.EnsureIndexes,
		"trips":              tripRepo.EnsureIndexes,
		"payments":           paymentRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, tokenTTL)
	requestService := service.NewRequestService(requestRepo, partyRepo, eventRepo, log)
	tripService := service.NewTripService(tripRepo, paymentRepo, eventRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, tripRepo, partyRepo, eventRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo, log)

	dedup := redisdb.NewDedupChecker(rdb)
	tripEventService := service.NewTripEventService(tripRepo, eventRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, tripEventService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,

		AuthService:      authService,
		RequestService:   requestService,
		TripService:      tripService,
		PaymentService:   paymentService,
		DashboardService: dashboardService,
		Dispatcher:       dispatcher,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("transport system api started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
