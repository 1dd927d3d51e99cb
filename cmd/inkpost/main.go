package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/repository"
	"github.com/inkpost/inkpost/internal/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config, environment-only when empty")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	logger := setupLogger(cfg.Env)
	logger.Info("starting inkpost", "env", cfg.Env, "address", cfg.HTTPServer.Address)

	db, err := openDatabase(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	repos := repository.NewManager(db)
	repos.MustValidate()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.CreateTables(ctx); err != nil {
		cancel()
		log.Fatalf("failed to create schema: %v", err)
	}
	cancel()

	srv := server.New(cfg, repos, logger)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Listen(); err != nil {
			logger.Error("server stopped", "error", err)
			done <- os.Interrupt
		}
	}()

	<-done
	logger.Info("shutting down")

	if err := srv.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func openDatabase(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func setupLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
	return slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
}
