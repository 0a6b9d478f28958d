package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agawojdecka/polarify/internal/auth"
	"github.com/agawojdecka/polarify/internal/config"
	"github.com/agawojdecka/polarify/internal/database"
	"github.com/agawojdecka/polarify/internal/logging"
	"github.com/agawojdecka/polarify/internal/oracle"
	"github.com/agawojdecka/polarify/internal/sentiment"
	"github.com/agawojdecka/polarify/internal/server"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Construct repositories
	userRepo := database.NewUserRepo(pool)
	tokenRepo := database.NewTokenRepo(pool)
	projectRepo := database.NewProjectRepo(pool)
	analysisRepo := database.NewAnalysisRepo(pool, clock)

	gemini := oracle.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel,
		oracle.WithBaseURL(cfg.OracleBaseURL),
		oracle.WithTimeout(cfg.OracleTimeout),
		oracle.WithClock(clock),
	)

	analyzer := sentiment.NewService(gemini, analysisRepo)
	authSvc := auth.NewService(userRepo, tokenRepo)

	srv := server.NewServer(cfg, analyzer, authSvc, projectRepo, pool, clock)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
