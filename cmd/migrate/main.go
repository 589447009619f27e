// Command migrate applies database migrations with goose.
//
// Usage:
//
//	migrate [up|down|status]
package main

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/moodi-labs/moodi-backend/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const migrationsDir = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.GetDBConnString())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set goose dialect", "error", err)
		os.Exit(1)
	}

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		slog.Error("Unknown command", "command", command)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}

	slog.Info("Migration complete", "command", command)
}
