package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-arena/config"
	"snake-arena/database"
	"snake-arena/handlers"
	"snake-arena/logging"
	"snake-arena/services"
	"snake-arena/utils"
	"snake-arena/workers"

	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	svc := handlers.Services{
		DB:          db,
		Auth:        services.NewAuthService(db),
		Tokens:      services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Games:       services.NewGameService(db),
		Leaderboard: services.NewLeaderboardService(db),
		Todos:       services.NewTodoService(db),
	}

	sched, err := workers.NewScheduler(log)
	if err != nil {
		return err
	}
	if err := sched.Every(cfg.SessionSweepInterval, workers.NewSessionSweeper(svc.Games, cfg.SessionMaxAge)); err != nil {
		return err
	}
	if cfg.R2.Enabled() {
		store, err := utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return err
		}
		publisher := workers.NewLeaderboardPublisher(svc.Leaderboard, store, cfg.SnapshotPrefix)
		if err := sched.Every(cfg.SnapshotInterval, publisher); err != nil {
			return err
		}
	} else {
		log.Info("R2 bucket not configured, leaderboard snapshots disabled")
	}
	sched.Start()

	app := handlers.NewApp(cfg, svc, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "cors_origins", cfg.CORSOrigins)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		_ = sched.Shutdown()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	if err := sched.Shutdown(); err != nil {
		log.Warn("scheduler shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
