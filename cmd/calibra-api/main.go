// ABOUTME: Entry point for the calibra-api server
// ABOUTME: Loads configuration, wires store, auth, and storage, and runs the HTTP server

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

	"github.com/calibra/calibra-api/internal/api"
	"github.com/calibra/calibra-api/internal/auth"
	"github.com/calibra/calibra-api/internal/blob"
	"github.com/calibra/calibra-api/internal/config"
	"github.com/calibra/calibra-api/internal/store"
)

// shutdownTimeout bounds graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	setupLogging(cfg.Logging)
	logger := slog.Default().With("component", "main")

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	codec, err := auth.NewJWTCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("building token codec: %w", err)
	}
	cookies := auth.NewCookieManager(cfg.Auth.CookieName, cfg.Auth.TokenTTL, cfg.Auth.IsProduction())

	var blobs blob.Presigner
	if cfg.Storage.Bucket != "" {
		presigner, err := blob.NewS3Presigner(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("building attachment storage: %w", err)
		}
		blobs = presigner
	} else {
		logger.Warn("no storage bucket configured, attachment endpoints disabled")
	}

	server := api.NewServer(st, blobs, codec, cookies)
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr, "environment", cfg.Auth.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
