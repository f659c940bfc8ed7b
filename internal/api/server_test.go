package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Wolf-Achtung/horoskop.one/internal/geo"
	"github.com/Wolf-Achtung/horoskop.one/internal/oracle"
)

// testServer has no oracle credential and no geo collaborators: good enough
// for the routing, validation and operational-surface paths, which must all
// settle before any network call.
func testServer() *Server {
	return NewServer(
		oracle.NewClient("", ""),
		geo.NewResolver(nil, nil, "Europe/Berlin"),
		nil,
		[]string{"https://horoskop.example"},
	)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["ok"])
	require.Equal(t, false, body["oracle"]) // no credential configured
}

func TestFavicon(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodGet, "/favicon.ico", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReadingRejectsMissingPlace(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodPost, "/reading",
		`{"birthDate": "1990-06-15"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Error, "birthPlace")
}

func TestReadingRejectsMalformedDate(t *testing.T) {
	for _, date := range []string{"", "gestern", "2023-02-29", "31.4.1990"} {
		rec := doJSON(t, testServer().Handler(), http.MethodPost, "/reading",
			`{"birthDate": "`+date+`", "birthPlace": "Berlin"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "date %q", date)
	}
}

func TestReadingRejectsBadBody(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodPost, "/reading", "{nicht json")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReadingWithoutOracleCredential(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodPost, "/reading",
		`{"birthDate": "1990-06-15", "birthPlace": "Berlin"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadingsAlias(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodPost, "/readings",
		`{"birthDate": "1990-06-15", "birthPlace": "Berlin"}`)
	// Same pipeline, same terminal state as /reading.
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	rec := doJSON(t, testServer().Handler(), http.MethodGet, "/health", "")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "vorgegeben-42")
	rec = httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)
	require.Equal(t, "vorgegeben-42", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := testServer().Handler()

	req := httptest.NewRequest(http.MethodOptions, "/reading", nil)
	req.Header.Set("Origin", "https://horoskop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://horoskop.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://boese.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	// Localhost dev servers always pass.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNormalizers(t *testing.T) {
	require.Equal(t, "day", normalizePeriod(""))
	require.Equal(t, "week", normalizePeriod("week"))
	require.Equal(t, "day", normalizePeriod("jahr"))

	require.Equal(t, "mystic", normalizeTone(""))
	require.Equal(t, "coach", normalizeTone("coach"))
	require.Equal(t, "mystic", normalizeTone("guru"))
}

func TestDefaultMixerSumsToHundred(t *testing.T) {
	var sum float64
	for _, v := range defaultMixer() {
		sum += v
	}
	require.Equal(t, 100.0, sum)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("10.0.0.1"), "request %d", i)
	}
	require.False(t, rl.Allow("10.0.0.1"))
	require.Greater(t, rl.RetryAfter("10.0.0.1"), 0)

	// Other clients are counted separately.
	require.True(t, rl.Allow("10.0.0.2"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.7:54321"
	require.Equal(t, "192.0.2.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	require.Equal(t, "203.0.113.9", clientIP(req))
}

func TestRateLimitMiddlewareAnswers429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.8:1000"
	rec := httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
