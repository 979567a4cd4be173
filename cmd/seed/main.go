package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"foodparadise/internal/config"
	"foodparadise/internal/db"
	"foodparadise/internal/repository"
	"foodparadise/internal/seed"
	"foodparadise/internal/service"
)

func main() {
	src := flag.String("source", "seed/menu.json", "fixture file path or http(s) URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	logger.Info("starting seed script", "source", *src)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(gormDB)

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, false); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	data, err := seed.Load(ctx, *src)
	if err != nil {
		logger.Error("failed to load fixtures", "error", err)
		os.Exit(1)
	}
	items, reviews, skipped := data.Models()
	if skipped > 0 {
		logger.Warn("skipped invalid menu entries", "count", skipped)
	}

	// no cache: the server's menu cache expires on its own
	menu := service.NewMenuService(repository.NewMenuRepository(gormDB), nil, logger)
	result, err := menu.Import(ctx, items, reviews)
	if err != nil {
		logger.Error("failed to seed", "error", err)
		os.Exit(1)
	}
	result.Skipped = skipped
	logger.Info("seed completed successfully", "menu", result.Menu, "reviews", result.Reviews, "skipped", result.Skipped)
}
