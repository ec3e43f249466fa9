package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edutrack/edutrack-backend/internal/config"
	"github.com/edutrack/edutrack-backend/internal/database"
	"github.com/edutrack/edutrack-backend/internal/handler"
	"github.com/edutrack/edutrack-backend/internal/logger"
	"github.com/edutrack/edutrack-backend/internal/middleware"
	"github.com/edutrack/edutrack-backend/internal/repository"
	"github.com/edutrack/edutrack-backend/internal/router"
	"github.com/edutrack/edutrack-backend/internal/security"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/edutrack/edutrack-backend/internal/storage"
	"github.com/edutrack/edutrack-backend/internal/validator"
	"github.com/rs/zerolog"
)

// Memory budget for parsing multipart forms; larger files spill to disk.
const formMemoryBytes = 8 << 20

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("storage", cfg.StorageDriver).
		Msg("Starting EduTrack Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	// ─── File Store ────────────────────────────────────────────────────
	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	hasher := security.NewPasswordHasher(security.Argon2Params{
		Time:    cfg.Argon2.Time,
		Memory:  cfg.Argon2.MemoryKB,
		Threads: cfg.Argon2.Threads,
	})
	userService := service.NewUserService(userRepo, hasher)
	tokenService := service.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExpiry)
	authService := service.NewAuthService(userService, tokenService, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, store, cfg.MaxUploadBytes, log)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, store, cfg.MaxUploadBytes, log)
	studentService := service.NewStudentService(profileRepo)

	// ─── Rate Limiting ────────────────────────────────────────────────
	// Shared through Redis when configured, per process otherwise.
	var authLimiter middleware.Limiter
	if rdb != nil {
		defer rdb.Close()
		authLimiter = middleware.NewRedisRateLimiter(rdb, cfg.AuthRateLimit, time.Minute)
	} else {
		memLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
		defer memLimiter.Close()
		authLimiter = memLimiter
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	checks := map[string]handler.CheckFunc{"postgres": pool.Ping}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Assignment: handler.NewAssignmentHandler(assignmentService, submissionService, formMemoryBytes),
		Submission: handler.NewSubmissionHandler(submissionService, formMemoryBytes),
		Student:    handler.NewStudentHandler(studentService),
		File:       handler.NewFileHandler(store),
		Health:     handler.NewHealthHandler(checks),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, authLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
