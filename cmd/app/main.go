package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moodi-labs/moodi-backend/internal/config"
	"github.com/moodi-labs/moodi-backend/internal/database"
	"github.com/moodi-labs/moodi-backend/internal/notification"
	"github.com/moodi-labs/moodi-backend/internal/progress"
	"github.com/moodi-labs/moodi-backend/internal/reflection"
	"github.com/moodi-labs/moodi-backend/internal/safety"
	"github.com/moodi-labs/moodi-backend/internal/server"
	"github.com/moodi-labs/moodi-backend/internal/submission"

	pgrepo "github.com/moodi-labs/moodi-backend/internal/database/postgres"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(),
		database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	client := reflection.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	sequencer := safety.NewSequencer(client, client)

	workflow := submission.NewService(client, sequencer)
	progressService := progress.NewService(pgrepo.NewProgressRepository(pool), workflow)
	notificationService := notification.NewService(client)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.CORSAllowedOrigins, server.Deps{
		DBPool:              pool,
		ProgressService:     progressService,
		NotificationService: notificationService,
		Generator:           client,
		Assessor:            sequencer,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
