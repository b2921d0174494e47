package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AYUSHMAAN1812/chatify/internal/api"
	"github.com/AYUSHMAAN1812/chatify/internal/core/service"
	"github.com/AYUSHMAAN1812/chatify/internal/infrastructure/db/mongo"
	"github.com/AYUSHMAAN1812/chatify/internal/infrastructure/db/redis"
	"github.com/AYUSHMAAN1812/chatify/internal/infrastructure/email"
	"github.com/AYUSHMAAN1812/chatify/internal/infrastructure/media"
	"github.com/AYUSHMAAN1812/chatify/internal/infrastructure/queue"
	"github.com/AYUSHMAAN1812/chatify/internal/pkg/config"
	"github.com/AYUSHMAAN1812/chatify/internal/realtime"
	"github.com/AYUSHMAAN1812/chatify/pkg/logger"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	realtimeDrain   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		// Init is a no-op when run already configured the logger.
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("chatify exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	mongoClient, db, err := mongo.Connect(startupCtx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return fmt.Errorf("connecting to mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redis.Connect(startupCtx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	messageRepo := mongo.NewMessageRepository(db)
	if err := userRepo.EnsureIndexes(startupCtx); err != nil {
		return fmt.Errorf("ensuring user indexes: %w", err)
	}
	if err := messageRepo.EnsureIndexes(startupCtx); err != nil {
		return fmt.Errorf("ensuring message indexes: %w", err)
	}

	lastSeen := redis.NewLastSeenStore(rdb)

	mailer := email.NewResendMailer(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromAddress, cfg.ClientURL, log)
	welcomeQueue := queue.NewDispatcher(0, mailer, log)
	welcomeQueue.Start(ctx)

	uploader, err := media.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		return fmt.Errorf("configuring cloudinary: %w", err)
	}

	// --- Core services ---
	tokens := service.NewTokenService(userRepo, cfg.JWTSecret, 0)
	authService := service.NewAuthService(userRepo, tokens, uploader, welcomeQueue, log)

	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry, lastSeen, log)
	eventRouter := realtime.NewEventRouter(registry, log)

	messageService := service.NewMessageService(userRepo, messageRepo, uploader, eventRouter, lastSeen, log)

	gate := realtime.NewGate(tokens, log)
	realtimeHandler := realtime.NewHandler(gate, hub, cfg.ClientURL, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Verifier:   tokens,
		Messages:   messageService,
		Realtime:   realtimeHandler,
		DB:         db,
		Redis:      rdb,
		ClientURL:  cfg.ClientURL,
		Production: cfg.IsProduction(),
		Log:        log,
	})

	// No WriteTimeout: it would sever long-lived websocket connections.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("chatify listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	if err := hub.Shutdown(realtimeDrain); err != nil {
		log.Warn().Err(err).Msg("realtime shutdown")
	}

	log.Info().Msg("goodbye")
	return nil
}
