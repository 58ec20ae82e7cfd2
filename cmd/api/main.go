package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // Important for Swagger
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository/cache"
	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/repository/sqlite"
	"go-portfolio-backend/internal/template"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/auth"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/storage"
	"go-portfolio-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Portfolio Builder API
// @version         1.0
// @description     Profile validation, completion tracking and portfolio publishing.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	audit := security.NewSecurityLogger("portfolio-api", cfg.GinMode)
	defer audit.Sync()

	ctx := context.Background()

	// 3. Setup Storage
	var (
		profileRepo domain.ProfileRepository
		dbPing      usecase.Pinger
	)
	if cfg.UseSQLite() {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Log.Error("Failed to open sqlite store", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		profileRepo = store
		dbPing = store.Ping
	} else {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
		profileRepo = postgres.NewProfileRepository(dbPool)
		dbPing = dbPool.Ping
	}

	// 4. Setup Redis (optional)
	var (
		redisClient *goredis.Client
		redisPing   usecase.Pinger
	)
	portfolioCache := domain.PortfolioCache(cache.NoopCache{})
	if cfg.RedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			portfolioCache = cache.NewPortfolioCache(redisClient, cfg.PortfolioCacheTTL)
			redisPing = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
		}
	}

	// 5. Setup Snapshot Publisher (optional)
	var publisher domain.SnapshotPublisher
	s3Cfg := storage.S3ClientConfig{
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	}
	if s3Cfg.Enabled() {
		s3Client, err := storage.NewS3Client(ctx, s3Cfg)
		if err != nil {
			logger.Log.Warn("S3 client setup failed, snapshots disabled", "error", err)
		} else {
			publisher = storage.NewSnapshotPublisher(s3Client, cfg.S3Bucket)
		}
	}

	// 6. Template Catalog
	catalog, err := template.Load(cfg.TemplateCatalogPath)
	if err != nil {
		logger.Log.Error("Failed to load template catalog", "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	validate := validation.New()
	profileUC := usecase.NewProfileUsecase(profileRepo, portfolioCache, publisher, catalog, audit, validate)
	portfolioUC := usecase.NewPortfolioUsecase(profileRepo, portfolioCache)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": dbPing,
		"redis":    redisPing,
	})

	// 8. Setup Auth (shared secret and/or JWKS)
	var jwksProvider *auth.Provider
	if cfg.JWKSUrl != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSUrl, nil)
	}
	verifier, err := auth.NewVerifier(cfg.JWTSecret, jwksProvider)
	if err != nil {
		logger.Log.Error("Failed to set up token verification", "error", err)
		os.Exit(1)
	}

	// 9. Setup Router
	rateLimiter := middleware.NewRateLimiter(redisClient, audit)
	quota := security.NewQuotaLimiter(redisClient, cfg.QuotaDailyLimit, 24*time.Hour)
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go rateLimiter.Cleanup(cleanupCtx, time.Minute)

	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:   profileUC,
		PortfolioUC: portfolioUC,
		HealthUC:    healthUC,
		Catalog:     catalog,
		RateLimiter: rateLimiter,
		Quota:       quota,
		Verifier:    verifier,
		Audit:       audit,
		Config:      cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
