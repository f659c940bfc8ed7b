// Package geo resolves free-text birth places to coordinates and IANA time
// zones. Both lookups are optional collaborators: any failure degrades to an
// unknown fix and must never abort a reading.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent    = "horoskop.one/1.0 (contact: support@horoskop.one)"
)

// Fix is a resolved place. Absence of a Fix is a valid, non-error state.
type Fix struct {
	Lat      float64
	Lon      float64
	Timezone string
	Place    string
}

// Resolver looks up places against Nominatim, resolves time zones locally,
// and remembers successful lookups in an optional cache.
type Resolver struct {
	httpClient *http.Client
	finder     TimezoneFinder
	cache      *Cache
	defaultTZ  string
}

// TimezoneFinder maps coordinates to an IANA zone name. tzf's DefaultFinder
// satisfies it.
type TimezoneFinder interface {
	GetTimezoneName(lng, lat float64) string
}

// NewResolver creates a resolver. finder and cache may be nil; lookups then
// fall back to the default zone and skip caching.
func NewResolver(finder TimezoneFinder, cache *Cache, defaultTZ string) *Resolver {
	if defaultTZ == "" {
		defaultTZ = "Europe/Berlin"
	}
	return &Resolver{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		finder:     finder,
		cache:      cache,
		defaultTZ:  defaultTZ,
	}
}

// DefaultTimezone returns the zone used when no coordinates are known.
func (r *Resolver) DefaultTimezone() string {
	return r.defaultTZ
}

// Resolve geocodes a place string. Returns (nil, nil) when the place is
// empty or cannot be found; a non-nil error only signals a transport
// problem, which callers treat the same way.
func (r *Resolver) Resolve(ctx context.Context, place string) (*Fix, error) {
	if place == "" {
		return nil, nil
	}

	if r.cache != nil {
		if fix, ok := r.cache.Get(place); ok {
			return fix, nil
		}
	}

	fix, err := r.geocode(ctx, place)
	if err != nil || fix == nil {
		return fix, err
	}
	fix.Timezone = r.timezoneAt(fix.Lat, fix.Lon)

	if r.cache != nil {
		if err := r.cache.Put(place, fix); err != nil {
			slog.Warn("geocode cache write failed", "place", place, "error", err)
		}
	}
	return fix, nil
}

func (r *Resolver) geocode(ctx context.Context, place string) (*Fix, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", place)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var hits []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err1 := strconv.ParseFloat(hits[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(hits[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}

	return &Fix{Lat: lat, Lon: lon, Place: hits[0].DisplayName}, nil
}

// timezoneAt resolves coordinates to a zone name, validating the result
// against the local zone database before trusting it.
func (r *Resolver) timezoneAt(lat, lon float64) string {
	if r.finder == nil {
		return r.defaultTZ
	}
	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return r.defaultTZ
	}
	if _, err := time.LoadLocation(name); err != nil {
		return r.defaultTZ
	}
	return name
}
