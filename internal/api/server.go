// Package api serves the reading endpoint and its small operational surface.
// All request processing is stateless; the only process-lifetime handles are
// the oracle client, the geo resolver, and the rate limiter buckets.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Wolf-Achtung/horoskop.one/internal/geo"
	"github.com/Wolf-Achtung/horoskop.one/internal/oracle"
	"github.com/Wolf-Achtung/horoskop.one/internal/reading"
)

// Server wires the pipeline collaborators to the HTTP surface.
type Server struct {
	Oracle      *oracle.Client
	Gen         *reading.Generator
	Geo         *geo.Resolver
	Ephemeris   *geo.EphemerisClient
	CORSOrigins []string

	started time.Time
}

// NewServer records the start time for /health uptime reporting.
func NewServer(client *oracle.Client, resolver *geo.Resolver, ephemeris *geo.EphemerisClient, corsOrigins []string) *Server {
	return &Server{
		Oracle:      client,
		Gen:         &reading.Generator{Oracle: client},
		Geo:         resolver,
		Ephemeris:   ephemeris,
		CORSOrigins: corsOrigins,
		started:     time.Now(),
	}
}

// Handler builds the route table. The caller owns the http.Server so it can
// drive graceful shutdown.
func (s *Server) Handler() http.Handler {
	readingLimiter := NewRateLimiter(30, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /reading", RateLimitMiddleware(readingLimiter, s.handleReading))
	// Alias kept for older frontends that POST the plural form.
	mux.HandleFunc("POST /readings", RateLimitMiddleware(readingLimiter, s.handleReading))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return requestIDMiddleware(corsMiddleware(mux, s.CORSOrigins))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":     true,
		"oracle": s.Oracle.Enabled(),
		"model":  s.Oracle.Model(),
		"uptime": humanize.RelTime(s.started, time.Now(), "", ""),
	})
}

// corsMiddleware adds CORS headers for allowed frontend origins. Localhost
// dev servers are always allowed; production origins come from configuration.
func corsMiddleware(next http.Handler, origins []string) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags every request with an ID for log correlation.
// An incoming X-Request-ID (set by a fronting proxy) is honored.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(apiError{Error: msg, Detail: detail})
}
