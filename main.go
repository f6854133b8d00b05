package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"visca-remote/internal/config"
	"visca-remote/internal/ptz"
	"visca-remote/internal/server"
)

func main() {
	// Command line flags override the config file
	cfgPath := flag.String("config", "", "YAML config file")
	listenAddr := flag.String("listen", "", "HTTP listen address")
	host := flag.String("host", "", "camera host, or serial device path")
	port := flag.Int("port", 0, "camera TCP port")
	transport := flag.String("transport", "", "camera transport (tcp or serial)")
	baud := flag.Int("baud", 0, "serial baud rate")
	debug := flag.Bool("debug", false, "log every VISCA message")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Server.Listen = *listenAddr
	}
	if *host != "" {
		cfg.Camera.Host = *host
	}
	if *port != 0 {
		cfg.Camera.Port = *port
	}
	if *transport != "" {
		cfg.Camera.Transport = *transport
	}
	if *baud != 0 {
		cfg.Camera.Baud = *baud
	}
	if *debug {
		cfg.Camera.DebugLogging = debug
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	log, err := newLogger(cfg.Camera.Debug())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	camera := ptz.NewCamera(cfg.Camera, log)
	if cfg.Camera.Host != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Camera.Timeout())
		if err := camera.Open(ctx); err != nil {
			// clients can retry with a connect message
			log.Warn("camera not connected", zap.Error(err))
		}
		cancel()
	}

	srv := server.New(server.Config{ListenAddr: cfg.Server.Listen}, camera, log)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("VISCA remote control server",
		zap.String("listen", cfg.Server.Listen),
		zap.String("camera", cfg.Camera.Host),
		zap.Int("port", cfg.Camera.Port),
		zap.String("transport", cfg.Camera.Transport),
	)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
