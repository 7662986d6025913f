package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/config"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

// app holds what every subcommand needs: configuration, logger and the pool.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *database.DB
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) Close() {
	a.db.Close()
}

func (a *app) migrator() (*database.Migrator, error) {
	return database.NewMigrator(a.db)
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "asistencia"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
}
