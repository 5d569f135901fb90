package main

import (
	"log"
	"net/http"

	_ "smartblog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"smartblog/internal/auth"
	"smartblog/internal/cache"
	"smartblog/internal/config"
	"smartblog/internal/db"
	"smartblog/internal/handler"
	"smartblog/internal/model"
	"smartblog/internal/repository"
	"smartblog/internal/router"
	"smartblog/internal/service"
)

// @title Smart Blog Editor API
// @version 1.0
// @description Blog editor backend with JWT authentication, post lifecycle management and an AI text proxy.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiryMinutes)
	resolver := auth.NewIdentityResolver(jwtService, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	postService := service.NewPostService(postRepo)
	aiService := service.NewAIService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	aiHandler := handler.NewAIHandler(aiService)

	router.Register(e, resolver, authHandler, postHandler, aiHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
