package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api"
	"climate-explorer/internal/config"
	"climate-explorer/internal/data"
	"climate-explorer/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (default: $CONFIG_FILE or config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	load := func() (*data.Repository, error) {
		return data.LoadRepository(cfg.Data.Path, cfg.Data.CacheSize)
	}
	repo, err := load()
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	store := data.NewStore(repo)
	logger.Info("dataset loaded",
		"path", cfg.Data.Path,
		"stations", len(repo.StationIDs()),
		"bounds", repo.GlobalYearBounds().String(),
	)

	if cfg.Data.ReloadSchedule != "" {
		reloader := data.NewReloader(store, load, logger)
		if err := reloader.Start(cfg.Data.ReloadSchedule); err != nil {
			return err
		}
		defer reloader.Stop()
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(store, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
