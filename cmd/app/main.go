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

	"github.com/tovald/ChipsBot_Go/internal/config"
	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/database"
	"github.com/tovald/ChipsBot_Go/internal/database/postgres"
	"github.com/tovald/ChipsBot_Go/internal/gamble"
	"github.com/tovald/ChipsBot_Go/internal/games"
	"github.com/tovald/ChipsBot_Go/internal/server"
	"github.com/tovald/ChipsBot_Go/migrations"
)

const (
	shutdownTimeout    = 10 * time.Second
	poolMaxIdleTime    = 5 * time.Minute
	poolMaxLifetime    = 30 * time.Minute
	cooldownPruneEvery = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		slog.Error("Failed to load rules", "error", err, "path", cfg.RulesPath)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, poolMaxIdleTime, poolMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.GetDBConnString(), migrations.FS); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	engine, err := games.NewEngine(rules.Games)
	if err != nil {
		slog.Error("Failed to build game engine", "error", err)
		os.Exit(1)
	}

	ledger := postgres.NewLedgerRepository(pool, rules.InitialBalance)
	cooldownSvc := newCooldownService(cfg, pool)
	gambleSvc := gamble.NewService(ledger, cooldownSvc, engine, gambleConfigFromRules(rules, cfg.DevMode))

	srv := server.NewServer(cfg.Port, cfg.APIKey, pool, gambleSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodically clear expired cooldown rows on backends that need it.
	if pruner, ok := cooldownSvc.(cooldown.Pruner); ok {
		go runCooldownPruner(ctx, pruner)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func runCooldownPruner(ctx context.Context, pruner cooldown.Pruner) {
	ticker := time.NewTicker(cooldownPruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := pruner.PruneExpired(ctx)
			if err != nil {
				slog.Warn("Cooldown prune failed", "error", err)
				continue
			}
			if pruned > 0 {
				slog.Debug("Pruned expired cooldowns", "count", pruned)
			}
		}
	}
}
