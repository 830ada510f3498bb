package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gym_management/internal/config"
	"gym_management/internal/handler"
	"gym_management/internal/logger"
	"gym_management/internal/repository"
	"gym_management/internal/service"
	"gym_management/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration ---
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if envErr != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exiting")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, log); err != nil {
		return err
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWT.Secret, cfg.JWT.TokenTTL())
	hasher, err := utils.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	classRepo := repository.NewWorkoutClassRepository(dbPool)
	membershipRepo := repository.NewMembershipRepository(dbPool)
	merchRepo := repository.NewMerchRepository(dbPool)

	// --- Initialize Services ---
	userService := service.NewUserService(userRepo, hasher, log)
	classService := service.NewWorkoutClassService(classRepo, log)
	membershipService := service.NewMembershipService(membershipRepo, time.Now, log)
	merchService := service.NewMerchService(merchRepo, log)

	// --- Setup Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	if err := handler.RegisterValidators(); err != nil {
		return err
	}
	handlerLog := log.With().Str("component", "http").Logger()
	router := handler.NewRouter(handlerLog, jwtUtil, handler.Handlers{
		Auth:        handler.NewAuthHandler(userService, jwtUtil, cfg.AllowAdminSignup, handlerLog),
		Users:       handler.NewUserHandler(userService, handlerLog),
		Classes:     handler.NewWorkoutClassHandler(classService, handlerLog),
		Memberships: handler.NewMembershipHandler(membershipService, handlerLog),
		Merch:       handler.NewMerchHandler(merchService, handlerLog),
	}, dbPool.Ping)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
