package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pageza/sousie/backend/config"
	"github.com/pageza/sousie/backend/internal/database"
	"github.com/pageza/sousie/backend/internal/logging"
	"github.com/pageza/sousie/backend/internal/provider"
	"github.com/pageza/sousie/backend/internal/server"
	"github.com/pageza/sousie/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	llm, err := provider.New(ctx, provider.Settings{
		Provider:   provider.Provider(cfg.LLMProvider),
		Model:      cfg.LLMModel,
		APIKey:     cfg.LLMAPIKey,
		BaseURL:    cfg.LLMBaseURL,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure LLM provider")
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure reply archive")
	}
	if s3Config == nil {
		log.Info("Reply archive disabled")
	}

	srv := server.New(cfg, db, redisClient, server.Services{
		Auth:       service.NewAuthService(cfg.JWTSecret),
		Chat:       service.NewChatService(llm, service.NewMenuCache(redisClient), db, service.NewReplyArchive(s3Config), log),
		RecipeLogs: service.NewRecipeLogService(db),
		Feedback:   service.NewFeedbackService(db),
		History:    service.NewHistoryService(db),
		Surprise:   service.NewSurpriseService(cfg.MealDBURL),
	}, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("Server error")
		}
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.WithError(err).Fatal("Server shutdown error")
	}
	log.Info("Server stopped")
}
