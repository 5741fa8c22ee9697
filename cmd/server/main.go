package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/mapview"
	"github.com/rainwise/web-go/internal/observability"
	"github.com/rainwise/web-go/internal/server"
	"github.com/rainwise/web-go/internal/session"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/station"
	"github.com/rainwise/web-go/pkg/http/client"
)

func main() {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Could not read .env file")
	}

	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()
	cacheCfg := config.GetCacheConfig()
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finder, err := station.NewFinderFromConfig(ctx, cfg, cacheCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize station finder")
	}
	finder.OnLookup = metrics.ObserveNearestLookup

	srv, err := server.New(cfg.HTTPAddr, server.Deps{
		Finder: finder,
		Signup: signup.NewHTTPClient(client.Options{
			BaseURL: cfg.AuthBaseURL,
			Timeout: cfg.HTTPTimeout,
		}),
		Sessions: session.NewStore(finder, cfg.MapSessionLimit, cfg.MapSessionTTL,
			session.WithRedrawHook(metrics.ObserveRedraw)),
		Metrics: metrics,
		Tiles:   mapview.NewTileSource(cfg.TileURL, cfg.TileAttribution),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build HTTP server")
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	finder.WaitForPendingSaves()

	log.Info().Msg("Shutdown complete")
}
