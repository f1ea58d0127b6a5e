package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
	"github.com/SAP-F-2025/trivia-browser/internal/cache"
	"github.com/SAP-F-2025/trivia-browser/internal/config"
	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/events"
	"github.com/SAP-F-2025/trivia-browser/internal/triviaapi"
	"github.com/SAP-F-2025/trivia-browser/internal/tui"
	"github.com/SAP-F-2025/trivia-browser/internal/validator"
	"github.com/SAP-F-2025/trivia-browser/pkg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "trivia browser: %v\n", err)
		os.Exit(1)
	}
}

// run wires the client and blocks until the UI exits; deferred cleanup runs before main exits
func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Category cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Question store API
	api := triviaapi.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, logger, validator.New())

	cacheHelper := cache.NewCacheHelper(redisClient, cache.CategoryCacheConfig.Prefix)
	categories := directory.NewLoader(api, cacheHelper, cfg.CategoryCacheTTL, logger)

	// Event bus
	bus, err := events.NewBus(events.BusConfig{
		Topic:        cfg.NoticeTopic,
		KafkaBrokers: cfg.KafkaBrokers,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	defer bus.Close()

	busEvents, err := bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to event bus: %w", err)
	}
	publisher := events.NewNoticePublisher(bus, logger)

	controller := browser.NewController(api, categories, publisher, logger)

	logger.Info("Starting trivia browser", "api_url", cfg.APIURL, "environment", cfg.Environment)
	if err := tui.Run(ctx, tui.Options{
		Controller: controller,
		Auditor:    publisher,
		Events:     busEvents,
		ExportDir:  cfg.ExportDir,
	}); err != nil {
		logger.Error("Browser exited with error", "error", err)
		return err
	}

	logger.Info("Browser exited")
	return nil
}
