// Command horoskopd serves deterministic symbolic readings over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/Wolf-Achtung/horoskop.one/internal/api"
	"github.com/Wolf-Achtung/horoskop.one/internal/config"
	"github.com/Wolf-Achtung/horoskop.one/internal/geo"
	"github.com/Wolf-Achtung/horoskop.one/internal/oracle"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.FromEnv()

	// ── Geocode cache ─────────────────────────────────────────────────
	// The cache keeps us polite toward the upstream geocoder; losing it
	// only costs repeat lookups.
	os.MkdirAll(filepath.Dir(cfg.GeocodeCachePath), 0755)
	cache, err := geo.OpenCache(cfg.GeocodeCachePath)
	if err != nil {
		slog.Warn("geocode cache unavailable, continuing without", "path", cfg.GeocodeCachePath, "error", err)
		cache = nil
	} else {
		defer cache.Close()
		slog.Info("geocode cache opened", "path", cfg.GeocodeCachePath)
	}

	// ── Timezone index ────────────────────────────────────────────────
	var finder geo.TimezoneFinder
	if f, err := tzf.NewDefaultFinder(); err != nil {
		slog.Warn("timezone index unavailable, using default timezone only", "error", err)
	} else {
		finder = f
	}

	resolver := geo.NewResolver(finder, cache, cfg.DefaultTimezone)
	ephemeris := geo.NewEphemerisClient(cfg.EphemerisURL)
	if ephemeris != nil {
		slog.Info("precise ephemeris enabled", "url", cfg.EphemerisURL)
	}

	// ── Oracle ────────────────────────────────────────────────────────
	client := oracle.NewClient(cfg.OracleAPIKey, cfg.OracleModel)
	if client.Enabled() {
		slog.Info("oracle client enabled", "model", client.Model())
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — reading generation disabled")
	}

	// ── HTTP ──────────────────────────────────────────────────────────
	server := api.NewServer(client, resolver, ephemeris, cfg.CORSOrigins)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP API starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("bye")
}
