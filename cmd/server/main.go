package main

import (
	"context"
	"net/http"

	_ "evently/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"evently/internal/access"
	"evently/internal/auth"
	"evently/internal/cache"
	"evently/internal/config"
	"evently/internal/db"
	"evently/internal/handler"
	"evently/internal/logger"
	"evently/internal/notifier"
	"evently/internal/repository"
	"evently/internal/router"
	"evently/internal/service"
)

// @title Evently API
// @version 1.0
// @description REST API for managing users and events with JWT authentication, role-based access and event sharing.
// @BasePath /v1/api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	database, err := db.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	eventRepo := repository.NewEventRepository(database)

	// Auth and access control
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	policy := access.Policy{AllowHierarchy: cfg.RoleHierarchy}

	// Outbound sharing channels
	shareNotifier := notifier.New(notifier.Config{
		SMSAPIURL:          cfg.SMSAPIURL,
		EmailAPIURL:        cfg.EmailAPIURL,
		NotificationAPIURL: cfg.NotificationAPIURL,
		Concurrency:        cfg.ShareConcurrency,
	}, &http.Client{Timeout: cfg.ShareTimeout}, zlog)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	eventService := service.NewEventService(eventRepo, policy, shareNotifier, cacheClient)

	// Handlers
	userHandler := handler.NewUserHandler(authService, userService)
	eventHandler := handler.NewEventHandler(eventService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, zlog, policy, userHandler, eventHandler)

	zlog.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("version", cfg.APIVersion))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server start", zap.Error(err))
	}
}
