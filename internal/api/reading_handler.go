package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Wolf-Achtung/horoskop.one/internal/event"
	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
	"github.com/Wolf-Achtung/horoskop.one/internal/reading"
	"github.com/Wolf-Achtung/horoskop.one/internal/safety"
	"github.com/Wolf-Achtung/horoskop.one/internal/seed"
)

const maxBodyBytes = 1 << 20

// readingRequest is the client payload. birthDate and birthPlace are
// required; everything else has a default.
type readingRequest struct {
	BirthDate     string             `json:"birthDate"`
	BirthTime     string             `json:"birthTime"`
	BirthPlace    string             `json:"birthPlace"`
	ApproxDaypart string             `json:"approxDaypart"`
	Period        string             `json:"period"`
	Tone          string             `json:"tone"`
	Seed          *int64             `json:"seed"`
	Mixer         map[string]float64 `json:"mixer"`
}

// defaultMixer is the "classic" preset: astrology dominant, the other
// symbol systems as accents. Presentation hints only.
func defaultMixer() map[string]float64 {
	return map[string]float64{
		"astro":  40,
		"num":    15,
		"tarot":  15,
		"iching": 10,
		"cn":     10,
		"tree":   10,
	}
}

func normalizePeriod(p string) string {
	switch p {
	case "day", "week", "month":
		return p
	}
	return "day"
}

func normalizeTone(t string) string {
	switch t {
	case "mystic", "coach", "skeptic":
		return t
	}
	return "mystic"
}

func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	var req readingRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "ungültiger Request-Body", err.Error())
		return
	}

	req.BirthPlace = strings.TrimSpace(req.BirthPlace)
	if req.BirthPlace == "" {
		writeError(w, http.StatusUnprocessableEntity, "birthPlace fehlt", "")
		return
	}
	date, err := profile.ParseDate(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "birthDate ungültig", err.Error())
		return
	}
	if !s.Oracle.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "Generierung nicht konfiguriert", "")
		return
	}

	period := normalizePeriod(req.Period)
	tone := normalizeTone(req.Tone)
	weights := req.Mixer
	if len(weights) == 0 {
		weights = defaultMixer()
	}

	ctx := r.Context()

	// Geo lookup is optional enrichment: every failure degrades to
	// unknown coordinates and the default timezone.
	var lat, lon *float64
	tz := s.Geo.DefaultTimezone()
	fix, err := s.Geo.Resolve(ctx, req.BirthPlace)
	if err != nil {
		slog.Warn("geo lookup failed", "place", req.BirthPlace, "error", err)
	} else if fix != nil {
		lat, lon = &fix.Lat, &fix.Lon
		tz = fix.Timezone
	}

	clock := profile.ParseClock(req.BirthTime)
	prof := profile.Build(date, clock, req.ApproxDaypart, lat)

	token := seed.Token(seed.Input{
		Mode:      tone,
		Timeframe: period,
		Weights:   weights,
		Profile:   prof,
	})
	if req.Seed != nil {
		token = seed.Override(*req.Seed)
	}

	events := event.Select(token, prof)

	var ephemeris string
	if s.Ephemeris != nil {
		line, err := s.Ephemeris.Summary(ctx, date, lat, lon)
		if err != nil {
			slog.Warn("ephemeris lookup failed", "error", err)
		} else {
			ephemeris = line
		}
	}

	res, err := s.Gen.Generate(ctx, reading.Request{
		Period:    period,
		Tone:      tone,
		BirthDate: date,
		Place:     req.BirthPlace,
		Lat:       lat,
		Lon:       lon,
		Timezone:  tz,
		Ephemeris: ephemeris,
		Weights:   weights,
		Profile:   prof,
		Events:    events,
		Seed:      token,
	})
	if err != nil {
		slog.Error("generation failed", "seed", token, "error", err)
		writeError(w, http.StatusBadGateway, "Generierung fehlgeschlagen", err.Error())
		return
	}

	sanitizeResult(res)

	rd := reading.Reading{
		Meta: reading.Meta{
			Period:        period,
			Tone:          tone,
			Locale:        "de-DE",
			BirthDate:     date.Format("2006-01-02"),
			BirthPlace:    req.BirthPlace,
			BirthTime:     req.BirthTime,
			ApproxDaypart: prof.Daypart,
			Geo:           reading.GeoMeta{Lat: lat, Lon: lon, TZ: tz},
			Season:        prof.Season,
			Hemisphere:    prof.Hemisphere,
			Mini:          prof,
			Seed:          token,
			Events:        events,
			Ephemeris:     ephemeris,
			Diagnostic:    res.Diagnostic,
		},
		Sections:   res.Sections,
		Chips:      topChips(prof, req.BirthPlace),
		Highlights: res.Highlights,
		Ritual:     res.Ritual,
	}
	reading.Normalize(&rd)

	writeJSON(w, rd)
}

// sanitizeResult runs the safety pass over every user-visible text field.
func sanitizeResult(res *reading.Result) {
	for i := range res.Sections {
		text, hits := safety.Sanitize(res.Sections[i].Text)
		res.Sections[i].Text = text
		if len(hits) > 0 {
			slog.Info("safety rule triggered", "domain", res.Sections[i].Domain, "rules", hits)
		}
	}
	for i := range res.Highlights {
		res.Highlights[i], _ = safety.Sanitize(res.Highlights[i])
	}
	if res.Ritual != nil {
		for i := range res.Ritual.Steps {
			res.Ritual.Steps[i], _ = safety.Sanitize(res.Ritual.Steps[i])
		}
	}
}

// topChips are the reading-level justification chips, naming only derived
// facts and echoed inputs.
func topChips(p profile.Profile, place string) []string {
	return []string{
		fmt.Sprintf("Sternzeichen %s", p.SunSign),
		fmt.Sprintf("Ort %s", place),
		fmt.Sprintf("Saison: %s (%s-Halbkugel)", p.Season, p.Hemisphere),
		fmt.Sprintf("Mondphase: %s", p.MoonPhase),
	}
}
