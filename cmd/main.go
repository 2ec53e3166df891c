package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fathima-sithara/social-service/internal/config"
	"github.com/fathima-sithara/social-service/internal/database"
	"github.com/fathima-sithara/social-service/internal/events"
	"github.com/fathima-sithara/social-service/internal/google"
	"github.com/fathima-sithara/social-service/internal/handlers"
	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/fathima-sithara/social-service/internal/routes"
	"github.com/fathima-sithara/social-service/internal/server"
	"github.com/fathima-sithara/social-service/internal/services"
	"github.com/fathima-sithara/social-service/internal/storage"
	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err) // use log for errors before zap is up
	}

	logger := utils.NewLogger(cfg.App.Env)
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("Starting social-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	tokens, err := utils.NewTokenManager(cfg.App.JWT.Secret, cfg.App.JWT.AccessTTLMinutes, cfg.App.JWT.RefreshTTLDays)
	if err != nil {
		sugar.Fatalf("token manager init: %v", err)
	}

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
	} else {
		sugar.Warn("Redis not configured, auth rate limiting disabled")
	}

	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.AWS.PublicRead)
	if err != nil {
		sugar.Fatalf("s3 init: %v", err)
	}

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if publisher == nil {
		sugar.Warn("Kafka not configured, activity events disabled")
	}

	googleClient := google.NewClient(&http.Client{Timeout: 10 * time.Second}, "", cfg.Google.ClientID)

	userRepo := repository.NewMongoUserRepo(db, cfg.Collections.Users)
	postRepo := repository.NewMongoPostRepo(db, cfg.Collections.Posts)
	commentRepo := repository.NewMongoCommentRepo(db, cfg.Collections.Comments)
	likeRepo := repository.NewMongoLikeRepo(db, cfg.Collections.Likes)
	mediaRepo := repository.NewMongoMediaRepo(db, cfg.Collections.Media)

	presignTTL := time.Duration(cfg.AWS.PresignTTLSeconds) * time.Second
	authSvc := services.NewAuthService(userRepo, tokens, googleClient, cfg.Security.PasswordHashCost, logger)
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Post:    handlers.NewPostHandler(services.NewPostService(postRepo, publisher), logger),
		Comment: handlers.NewCommentHandler(services.NewCommentService(commentRepo, publisher), logger),
		Like:    handlers.NewLikeHandler(services.NewLikeService(likeRepo, publisher), logger),
		User:    handlers.NewUserHandler(services.NewUserService(userRepo), logger),
		Media:   handlers.NewMediaHandler(services.NewMediaService(mediaRepo, store, presignTTL), logger),
	}

	gate := middleware.JWTAuth(tokens)
	limiter := middleware.NewRateLimiter(rdb, "auth_rate_limit", cfg.Security.AuthRateLimitPerMin, time.Minute)

	app := server.New(cfg, h, gate, limiter, logger)

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	if err := publisher.Close(); err != nil {
		sugar.Errorf("Kafka publisher close error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
