package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/config"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/events"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/handler"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/moderation"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/repository"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/server"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/services"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/storage"
	websockets "github.com/Smee1/Mindful-Messaging-Chatbot/internal/websocket"
	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/database"
	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize attachment storage: %v", err)
	}

	caller := moderation.NewCaller(l)
	caller.MaxAttempts = cfg.ModerationAttempts
	caller.InitialDelay = cfg.ModerationDelay
	gate := moderation.NewGate(caller, cfg.ModerationURL, cfg.ModerationToken)

	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notifier := events.NewRedisNotifier(redisClient)

	messageService := services.NewMessageService(chatRepo, messageRepo, gate, store, notifier, l)
	authService := services.NewAuthService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryMin)*time.Minute)

	hub := websockets.NewHub()
	bridge := websockets.NewRedisBridge(events.NewRedisSubscriber(redisClient), hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	go func() {
		if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
			l.Errorf("websocket redis bridge stopped: %v", err)
		}
	}()

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Message: handler.NewMessageHandler(messageService),
		WS:      websockets.NewHandler(authService, hub),
	}, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Storage(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicURL,
		})
	}
	return storage.NewDiskStorage(cfg.UploadDir, cfg.PublicBaseURL)
}
