package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/mindmate/internal/assistant"
	"github.com/xaenox/mindmate/internal/auth"
	"github.com/xaenox/mindmate/internal/chat"
	"github.com/xaenox/mindmate/internal/server"
	"github.com/xaenox/mindmate/internal/stats"
	"github.com/xaenox/mindmate/internal/storage"
	"github.com/xaenox/mindmate/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the language-model client and services
	client := assistant.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	chatService := chat.NewService(store, client, cfg.OpenAI.MaxTokens, logger)
	statsService := stats.NewService(store)

	verifier := auth.NewStaticVerifier(cfg.Auth.Tokens)
	limiter := server.NewRateLimiter(
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		cfg.RateLimit.MaxRequests,
	)

	// Start the HTTP server
	srv := server.New(store, chatService, statsService, verifier, limiter, logger)
	if err := srv.Start(cfg.Server.Address); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
