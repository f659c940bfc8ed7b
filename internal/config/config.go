// Package config collects the environment-driven configuration surface in
// one place instead of scattering os.Getenv calls through main.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every external setting the service reads.
type Config struct {
	Port             int
	OracleAPIKey     string
	OracleModel      string
	CORSOrigins      []string
	GeocodeCachePath string
	DefaultTimezone  string
	EphemerisURL     string // optional remote precise-ephemeris collaborator
}

// FromEnv reads the configuration. Missing values get workable defaults;
// only the oracle credential has no default, and its absence is surfaced per
// request, not at startup.
func FromEnv() Config {
	cfg := Config{
		Port:             8080,
		OracleAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		OracleModel:      os.Getenv("ORACLE_MODEL"),
		GeocodeCachePath: os.Getenv("GEOCODE_CACHE_PATH"),
		DefaultTimezone:  os.Getenv("DEFAULT_TIMEZONE"),
		EphemerisURL:     os.Getenv("EPHEMERIS_URL"),
	}

	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
		cfg.Port = p
	}
	if cfg.GeocodeCachePath == "" {
		cfg.GeocodeCachePath = "data/places.db"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "Europe/Berlin"
	}

	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg
}
