package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindfit/internal/config"
	apihttp "mindfit/internal/http"
	"mindfit/internal/imagegen"
	"mindfit/internal/llm"
	"mindfit/internal/service"
	"mindfit/internal/store"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var kv store.KV
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPgKV(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres connect", zap.Error(err))
		}
		kv = pg
	} else {
		lite, err := store.NewSQLiteKV(cfg.DBPath)
		if err != nil {
			logger.Fatal("sqlite open", zap.Error(err))
		}
		kv = lite
	}
	defer kv.Close()

	stateSvc := service.NewStateService(kv, logger)
	if err := stateSvc.Load(ctx); err != nil {
		logger.Fatal("state load", zap.Error(err))
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	images := imagegen.New(cfg.ImageGenBaseURL, nil)

	var (
		lookLimiter service.LookRateLimiter
		tokenStore  service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			lookLimiter = service.NewRedisLookRateLimiter(redisClient, time.Duration(cfg.LookRateWindowMinutes)*time.Minute, cfg.LookRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	authSvc := service.NewAuthService(
		cfg.AuthSecret,
		cfg.AuthPINHash,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.AuthSecret == "" {
		logger.Warn("auth secret not configured, API is open")
	}

	closetSvc := service.NewClosetService(llmClient, stateSvc, logger)
	stylistSvc := service.NewStylistService(llmClient, stateSvc, service.StylistPromptBuilder{}, images, lookLimiter, logger)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	profileHandler := apihttp.NewProfileHandler(logger, stateSvc)
	closetHandler := apihttp.NewClosetHandler(logger, closetSvc)
	dailyHandler := apihttp.NewDailyHandler(logger, stateSvc, stylistSvc)

	router := apihttp.NewRouter(logger, authSvc, authHandler, profileHandler, closetHandler, dailyHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", zap.String("port", cfg.HTTPPort))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
