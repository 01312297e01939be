// cmd/bridge/main.go
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/iracing-bridge/internal/api"
	"github.com/tamzrod/iracing-bridge/internal/bridge"
	"github.com/tamzrod/iracing-bridge/internal/config"
	"github.com/tamzrod/iracing-bridge/internal/logging"
	"github.com/tamzrod/iracing-bridge/internal/sdk"
	"github.com/tamzrod/iracing-bridge/internal/sim"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to config file (optional)")
		listen  = flag.String("listen", "", "override HTTP listen address")
	)
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *listen != "" {
		cfg.HTTP.Listen = *listen
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	slog.SetDefault(logger)

	// --------------------
	// Telemetry source
	// --------------------

	var src sdk.Source
	switch cfg.Bridge.Source {
	case "sim":
		src = sim.New()
	default:
		log.Fatalf("unknown telemetry source %q", cfg.Bridge.Source)
	}

	// --------------------
	// Service + HTTP API
	// --------------------

	svc := bridge.NewService(
		src,
		time.Duration(cfg.Bridge.SettleMs)*time.Millisecond,
		logger.With("component", "bridge"),
	)

	srv := api.NewServer(svc, api.ServerOptions{
		Addr:            cfg.HTTP.Listen,
		ReadTimeout:     time.Duration(cfg.HTTP.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout:    time.Duration(cfg.HTTP.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:     time.Duration(cfg.HTTP.IdleTimeoutMs) * time.Millisecond,
		ShutdownTimeout: time.Duration(cfg.HTTP.ShutdownSecs) * time.Second,
		Logger:          logger.With("component", "api"),
	})

	srv.Start()
	logger.Info("bridge started",
		"addr", cfg.HTTP.Listen,
		"source", cfg.Bridge.Source,
	)

	// --------------------
	// Wait for shutdown signal
	// --------------------

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signals
	logger.Info("shutting down", "signal", sig.String())

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	// Release the SDK handle on the way out.
	if err := svc.Disconnect(); err != nil {
		logger.Warn("source shutdown failed", "error", err)
	}

	logger.Info("stopped")
}
