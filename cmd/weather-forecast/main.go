package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/weather-forecast-pipeline/internal/api/http"
	"github.com/i474232898/weather-forecast-pipeline/internal/config"
	"github.com/i474232898/weather-forecast-pipeline/internal/geocode"
	"github.com/i474232898/weather-forecast-pipeline/internal/icons"
	"github.com/i474232898/weather-forecast-pipeline/internal/scheduler"
	"github.com/i474232898/weather-forecast-pipeline/internal/store"
	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
	"github.com/i474232898/weather-forecast-pipeline/internal/weather/providers"
)

func main() {
	configPath := flag.String("config", "", "path to an INI config file (default: config.ini in . or ./config)")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := cfg.NewLogger()
	slog.SetDefault(appLogger)
	for _, w := range cfg.Warnings {
		appLogger.Warn("config value replaced with default", "detail", w)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Both MET endpoints share one rate limit.
	limiter := rate.NewLimiter(rate.Limit(cfg.MetNo.RequestsPerSecond), cfg.MetNo.Burst)
	nowcast := providers.NewNowcastClient(httpClient, cfg.MetNo.NowcastURL, cfg.MetNo.UserAgent, limiter)
	forecast := providers.NewLocationforecastClient(httpClient, cfg.MetNo.ForecastURL, cfg.MetNo.UserAgent, limiter)
	current := providers.NewCurrentResolver(nowcast, forecast, appLogger)

	iconResolver := icons.NewResolver(httpClient, appLogger)

	// Core service orchestrating sources and store.
	service := weather.NewService(memStore, current, forecast, iconResolver, cfg.Weather, appLogger)

	targets := make([]scheduler.Target, 0, len(cfg.Locations))
	for i, loc := range cfg.Locations {
		t := scheduler.Target{Location: loc}
		if i == 0 {
			t.Coordinates = cfg.PinnedCoordinates
		}
		targets = append(targets, t)
	}
	geocoder := geocode.New(httpClient, cfg.MetNo.UserAgent, cfg.GeocoderAPIKey)

	// Scheduler that periodically refreshes every location.
	sched := scheduler.New(targets, cfg.SchedulerInterval, cfg.CycleTimeout, service, geocoder, appLogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-pipeline",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-forecast-pipeline",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		appLogger.Info("starting server", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("error during shutdown", "error", err)
	}
}
