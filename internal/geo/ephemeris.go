package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// EphemerisClient queries an optional remote service for precise planetary
// positions. The service is a pure enrichment: every caller must be able to
// proceed without it.
type EphemerisClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEphemerisClient returns nil when no endpoint is configured, which
// callers treat as "no precise ephemeris available".
func NewEphemerisClient(baseURL string) *EphemerisClient {
	if baseURL == "" {
		return nil
	}
	return &EphemerisClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type ephemerisResponse struct {
	Summary string `json:"summary"`
}

// Summary fetches a one-line description of the sky for the given date and
// optional coordinates.
func (c *EphemerisClient) Summary(ctx context.Context, date time.Time, lat, lon *float64) (string, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	if lat != nil && lon != nil {
		q.Set("lat", strconv.FormatFloat(*lat, 'f', 5, 64))
		q.Set("lon", strconv.FormatFloat(*lon, 'f', 5, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build ephemeris request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ephemeris request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ephemeris status %d", resp.StatusCode)
	}

	var body ephemerisResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ephemeris response: %w", err)
	}
	return body.Summary, nil
}
