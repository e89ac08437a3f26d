package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/skywave/skywave/internal/api/http"
	"github.com/skywave/skywave/internal/config"
	"github.com/skywave/skywave/internal/dashboard"
	"github.com/skywave/skywave/internal/location"
	"github.com/skywave/skywave/internal/prefs"
	"github.com/skywave/skywave/internal/weather"
	"github.com/skywave/skywave/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Preference store, read once at startup to seed the initial lookup.
	store, err := prefs.NewSQLite(cfg.PrefsPath)
	if err != nil {
		log.Fatalf("failed to open preference store: %v", err)
	}
	defer store.Close()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	service := weather.NewService(provider)

	// Geolocation capability; absent unless an address and key are set.
	var geo location.Geolocator
	if g := location.NewAddressGeolocator(cfg.HomeAddress, cfg.GeocoderAPIKey); g != nil {
		geo = g
	}

	resolver := location.NewResolver(store, geo)
	ctrl := dashboard.NewController(service, resolver)

	app := fiber.New(fiber.Config{
		AppName:               "skywave",
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skywave",
		})
	})

	httpapi.RegisterRoutes(app, ctrl, store)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Seed the dashboard the way the SPA does on load: last city, then last
	// coordinates, then auto-detection.
	go func() {
		query := resolver.InitialQuery()
		if _, err := ctrl.Lookup(context.Background(), query); err != nil {
			log.Printf("initial lookup for %s failed: %v", query, err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
