package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zonemasters/bgmi-backend/internal/config"
	"github.com/zonemasters/bgmi-backend/internal/database"
	"github.com/zonemasters/bgmi-backend/internal/migrations"
	"github.com/zonemasters/bgmi-backend/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if cfg.AdminCode == "" {
		logger.Warn("ADMIN_CODE is not set; admin registration will fail until configured")
	}

	broker := server.NewBroker()
	stores := &server.StoreHandle{}

	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Stores:    stores,
		Broker:    broker,
		AdminCode: cfg.AdminCode,
		SPADir:    cfg.SPADir,
	})

	g, gctx := errgroup.WithContext(ctx)

	// The listener comes up first; data routes answer 503 until this
	// goroutine publishes the store.
	g.Go(func() error {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating data dir: %w", err)
			}
		}

		db, err := database.Open(gctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		stores.Set(server.NewDocStore(db))
		logger.Info("store ready", "path", cfg.DBPath)

		<-gctx.Done()
		return nil
	})

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
