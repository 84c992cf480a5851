package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"causeway/internal/http/handlers"
	httpapi "causeway/internal/http/httpapi"
	"causeway/internal/infra"
	"causeway/internal/infra/geoip"
	"causeway/internal/middleware"
	"causeway/internal/pricing"
	"causeway/internal/providers/backend"
	"causeway/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	curves, err := pricing.LoadCurveSet(cfg.CurvesFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.CurvesFile).Msg("failed to load pricing curves")
	}
	logger.Info().Int("overrides", curves.Len()).Msg("pricing curves loaded")

	client, err := backend.NewClient(backend.Options{
		BaseURL:        cfg.BackendURL,
		HTTPClient:     &http.Client{Timeout: cfg.BackendTimeout},
		Logger:         &logger,
		RequestTimeout: cfg.BackendTimeout,
		MaxTries:       uint(cfg.BackendMaxTries),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure backend client")
	}

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}
	uploader := storage.NewImageUploader(fileStore, cfg.StorageBaseURL, cfg.MaxUploadBytes)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var countryLookup middleware.CountryLookup
	if resolver != nil {
		countryLookup = resolver.Lookup
	}

	bounds := pricing.Bounds{MinCents: cfg.DonationMinCents, MaxCents: cfg.DonationMaxCents}
	app := handlers.NewApp(client, curves, bounds, uploader, &logger)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   countryLookup,
		StaticDir:       fileStore.BasePath(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("backend", client.BaseURL()).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	logger.Info().Msg("server stopped")
}
