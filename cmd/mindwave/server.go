package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/mindwave-games/mindwave/internal/config"
	"github.com/mindwave-games/mindwave/internal/game"
	"github.com/mindwave-games/mindwave/internal/randutil"
	"github.com/mindwave-games/mindwave/internal/roomcode"
	"github.com/mindwave-games/mindwave/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Config      string   `kong:"default='mindwave.hcl',help='Path to HCL config file'"`
	Addr        string   `kong:"help='Listen address override (host:port)'"`
	Debug       bool     `kong:"help='Enable debug logging'"`
	Seed        *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	AdminName   []string `kong:"help='Privileged admin identity override'"`
	AdminSecret string   `kong:"help='Shared admin secret override'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if len(c.AdminName) > 0 {
		cfg.Admin.Names = c.AdminName
	}
	if c.AdminSecret != "" {
		cfg.Admin.Secret = c.AdminSecret
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	addr := cfg.ListenAddr()
	if c.Addr != "" {
		addr = c.Addr
	}

	registry := game.NewRegistry(roomcode.NewGenerator(rng), logger)
	srv := server.NewServer(logger)
	engine := game.NewEngine(registry, srv, game.AdminPolicy{
		Names:  cfg.Admin.Names,
		Secret: cfg.Admin.Secret,
	}, quartz.NewReal(), rng, logger)
	srv.SetEngine(engine)

	logger.Info("starting mindwave server",
		"addr", addr,
		"admin_identities", len(cfg.Admin.Names),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		return srv.Start(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func setupLogger(level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	if debug {
		parsed = log.DebugLevel
	}
	logger.SetLevel(parsed)

	return logger
}
