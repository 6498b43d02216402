package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/deeppdcfr/internal/api"
	"github.com/lox/deeppdcfr/internal/config"
	"github.com/lox/deeppdcfr/internal/store"
	"github.com/lox/deeppdcfr/internal/strategy"
)

// ServeCmd runs the HTTP and WebSocket API.
type ServeCmd struct {
	Addr        string `short:"a" env:"PDCFR_ADDR" help:"Bind address (overrides config)"`
	Port        int    `short:"p" env:"PDCFR_PORT" help:"Port (overrides config)"`
	DatabaseURL string `env:"PDCFR_DATABASE_URL" help:"PostgreSQL URL for the solve log (overrides config)"`
	Workers     int    `default:"0" help:"Strategy workers per request, 0 for one per CPU"`
}

// loadConfig reads the config file and applies flag overrides.
func (c *ServeCmd) loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.DatabaseURL != "" {
		cfg.Server.DatabaseURL = c.DatabaseURL
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := c.loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(nil, cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	sizes, err := cfg.Sizes()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background(), logger)
	defer cancel()

	opts := api.Options{
		Provider:    strategy.Heuristic{Workers: c.Workers},
		Logger:      logger,
		Version:     cfg.Server.Version,
		Sizes:       &sizes,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if cfg.Server.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.Server.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		opts.Store = db
		logger.Info("Recording solves to PostgreSQL")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           api.New(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting strategy server",
		"addr", srv.Addr,
		"version", cfg.Server.Version,
		"workers", c.Workers)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
