package geo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "places.db"))
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Get("Berlin")
	require.False(t, ok)

	fix := &Fix{Lat: 52.5170, Lon: 13.3889, Timezone: "Europe/Berlin", Place: "Berlin, Deutschland"}
	require.NoError(t, cache.Put("Berlin", fix))

	got, ok := cache.Get("Berlin")
	require.True(t, ok)
	require.Equal(t, fix, got)
}

func TestCacheOverwrite(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "places.db"))
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("Paris", &Fix{Lat: 1, Lon: 2, Timezone: "UTC", Place: "falsch"}))
	require.NoError(t, cache.Put("Paris", &Fix{Lat: 48.8589, Lon: 2.3200, Timezone: "Europe/Paris", Place: "Paris, France"}))

	got, ok := cache.Get("Paris")
	require.True(t, ok)
	require.Equal(t, "Europe/Paris", got.Timezone)
}

func TestResolverEmptyPlace(t *testing.T) {
	r := NewResolver(nil, nil, "Europe/Berlin")

	fix, err := r.Resolve(t.Context(), "")
	require.NoError(t, err)
	require.Nil(t, fix)
	require.Equal(t, "Europe/Berlin", r.DefaultTimezone())
}

type fixedFinder struct{ name string }

func (f fixedFinder) GetTimezoneName(lng, lat float64) string { return f.name }

func TestTimezoneAt(t *testing.T) {
	r := NewResolver(fixedFinder{name: "Europe/Paris"}, nil, "Europe/Berlin")
	require.Equal(t, "Europe/Paris", r.timezoneAt(48.85, 2.32))

	// Unknown or invalid zone names fall back to the default.
	r = NewResolver(fixedFinder{name: ""}, nil, "Europe/Berlin")
	require.Equal(t, "Europe/Berlin", r.timezoneAt(0, 0))

	r = NewResolver(fixedFinder{name: "Mars/Olympus"}, nil, "Europe/Berlin")
	require.Equal(t, "Europe/Berlin", r.timezoneAt(0, 0))

	r = NewResolver(nil, nil, "Europe/Berlin")
	require.Equal(t, "Europe/Berlin", r.timezoneAt(52.52, 13.38))
}
