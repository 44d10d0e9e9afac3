package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inkwellHTTP "inkwell/internal/controller/http"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/config"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Run wires the stores into the API and serves until interrupted. Any of
// db, redisClient, and s3Client may be nil; the endpoints backed by a
// missing store respond 503 while the rest keep working.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	kv := persistent.NewRedisKV(redisClient)
	postRepo := persistent.NewPostRepository(kv)
	likeRepo := persistent.NewLikeRepository(kv)
	statsRepo := persistent.NewStatsRepository(kv)
	metaRepo := persistent.NewPostMetaRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)
	tagRepo := persistent.NewTagRepository(db)

	var storage usecase.StorageClient
	if s3Client != nil {
		storage = s3Client
	}

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, metaRepo, log)
	likeUseCase := usecase.NewLikeUseCase(likeRepo, log)
	authUseCase := usecase.NewAuthUseCase(kv, jwtService, cfg.AdminUsername, cfg.AdminPasswordHash, log)
	taxonomyUseCase := usecase.NewTaxonomyUseCase(categoryRepo, tagRepo)
	statsUseCase := usecase.NewStatsUseCase(statsRepo, postRepo, likeRepo, log)
	uploadUseCase := usecase.NewUploadUseCase(storage)

	// Initialize HTTP handlers
	postHandler := inkwellHTTP.NewPostHandler(postUseCase, log)
	likeHandler := inkwellHTTP.NewLikeHandler(likeUseCase, log)
	authHandler := inkwellHTTP.NewAuthHandler(authUseCase, log)
	taxonomyHandler := inkwellHTTP.NewTaxonomyHandler(taxonomyUseCase, log)
	statsHandler := inkwellHTTP.NewStatsHandler(statsUseCase, log)
	fileHandler := inkwellHTTP.NewFileHandler(uploadUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded assets, served outside the counted API surface
	r.GET("/file/:name", fileHandler.Serve)

	api := r.Group("/api")
	api.Use(middleware.APIStatsMiddleware(redisClient, log))

	{
		api.GET("/posts", postHandler.List)
		api.GET("/post/:id", postHandler.Get)
		api.GET("/post/like/:id", likeHandler.GetStatus)
		api.POST("/post/like/:id", likeHandler.Apply)
	}

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)
	admin.Use(middleware.AuthMiddleware(jwtService))

	{
		admin.POST("/post", postHandler.Save)
		admin.DELETE("/delete/:id", postHandler.Delete)
		admin.GET("/categories", taxonomyHandler.ListCategories)
		admin.POST("/category", taxonomyHandler.SaveCategory)
		admin.GET("/category/:id", taxonomyHandler.GetCategory)
		admin.DELETE("/category/:id", taxonomyHandler.DeleteCategory)
		admin.GET("/tags", taxonomyHandler.ListTags)
		admin.POST("/tag", taxonomyHandler.SaveTag)
		admin.GET("/tag/:id", taxonomyHandler.GetTag)
		admin.DELETE("/tag/:id", taxonomyHandler.DeleteTag)
		admin.POST("/upload", fileHandler.Upload)
		admin.GET("/dashboard", statsHandler.Dashboard)
		admin.GET("/api-stats", statsHandler.APIStats)
		admin.GET("/activity", statsHandler.Activity)
		admin.GET("/kv-info", statsHandler.KVInfo)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Blog API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog API...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("Error closing database: %v", err)
			}
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Blog API exited")
}
