package main

import (
	"inkwell/internal/app"
	"inkwell/pkg/cache"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
	"inkwell/pkg/s3"

	_ "inkwell/docs" // Swagger docs
)

// @title           Inkwell Blog API
// @version         1.0
// @description     Blog backend with posts, likes, taxonomy, uploads and admin analytics

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	// Each store is optional; endpoints backed by a missing store answer
	// 503 while the rest of the API stays up.
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Warn("Database unavailable, taxonomy endpoints disabled: %v", err)
		db = nil
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, post and like endpoints disabled: %v", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Object storage unavailable, file endpoints disabled: %v", err)
		s3Client = nil
	}

	app.Run(cfg, log, db, redisClient, s3Client)
}
