package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ecohub.backend/internal/config"
	"ecohub.backend/internal/domain/entities"
	"ecohub.backend/internal/infrastructure/models"
	"ecohub.backend/internal/infrastructure/repositories"
	"ecohub.backend/internal/interfaces/http/handlers"
	"ecohub.backend/internal/interfaces/http/middleware"
	"ecohub.backend/internal/usecases"
	"ecohub.backend/pkg/jwt"
	"ecohub.backend/pkg/logger"
	"ecohub.backend/pkg/ratelimit"
	"ecohub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	runServer = func(srv *http.Server) error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	logger.Init(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// A broken permission table must stop the process, not silently
	// deny requests at runtime.
	if err := entities.ValidatePermissionTable(); err != nil {
		return fmt.Errorf("permission table validation failed: %w", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}
	logger.Info(context.Background(), "Connected to PostgreSQL")

	if err := db.AutoMigrate(&models.Account{}, &models.Profile{}, &models.AuditEntry{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	accountRepo := repositories.NewAccountRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(accountRepo, profileRepo, uow, jwtService)
	moderationUsecase := usecases.NewModerationUsecase(accountRepo, profileRepo, auditRepo, uow)

	loginLimiter, err := buildLoginLimiter(cfg)
	if err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(authUsecase, cfg.Cookie, int(cfg.JWT.Expiry/time.Second))
	adminHandler := handlers.NewAdminHandler(moderationUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware([]string{"*"}))

	registerRoutes(r, routeDeps{
		authHandler:  authHandler,
		adminHandler: adminHandler,
		authUsecase:  authUsecase,
		loginLimiter: loginLimiter,
		rateLimitCfg: cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Graceful shutdown: stop accepting connections on SIGINT/SIGTERM and
	// drain in-flight requests before exiting.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(context.Background(), "EcoHub backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildLoginLimiter selects the limiter backend. The memory limiter is
// per-process; the Redis limiter shares the budget across instances.
func buildLoginLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	limiterCfg := ratelimit.Config{
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	}

	switch cfg.RateLimit.Backend {
	case "redis":
		if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis rate limiter initialized")
		return ratelimit.NewRedisLimiter(limiterCfg, "ratelimit:login"), nil
	case "memory":
		return ratelimit.NewMemoryLimiter(limiterCfg), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
}
