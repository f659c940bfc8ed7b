package reading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Wolf-Achtung/horoskop.one/internal/event"
	"github.com/Wolf-Achtung/horoskop.one/internal/oracle"
	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
)

// Oracle is the text-generation collaborator contract the orchestrator
// expects. oracle.Client satisfies it; tests substitute fakes.
type Oracle interface {
	Enabled() bool
	Model() string
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Generator runs the two oracle passes that turn derived facts into prose.
// It holds no per-request state.
type Generator struct {
	Oracle Oracle
}

// Request carries everything a generation pass may reference. Facts not in
// here must not appear in the output.
type Request struct {
	Period    string
	Tone      string
	BirthDate time.Time
	Place     string
	Lat       *float64
	Lon       *float64
	Timezone  string
	Ephemeris string
	Weights   map[string]float64
	Profile   profile.Profile
	Events    []event.Event
	Seed      string
}

// Result is the raw generation output before sanitization and normalization.
type Result struct {
	Sections   []Section
	Highlights []string
	Ritual     *Ritual
	Outline    Outline
	Diagnostic string
}

// Stage parameters. The outline wants low variance, the longform pass keeps
// the poetic register.
const (
	outlineMaxTokens  = 800
	outlineTemp       = 0.4
	longformMaxTokens = 1600
	longformTemp      = 0.8
)

// Generate runs both stages. Stage-1 failures (transport or parse) degrade
// to an empty outline and never block stage 2. A stage-2 transport failure
// is returned as an error; a stage-2 parse failure degrades to empty section
// texts with a diagnostic, which the normalizer can still shape.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if g.Oracle == nil || !g.Oracle.Enabled() {
		return nil, fmt.Errorf("oracle not configured")
	}

	res := &Result{
		Outline: Outline{Domains: map[event.Domain]OutlineDomain{}},
	}

	// Stage 1: outline.
	raw, err := g.Oracle.Complete(ctx, systemPrompt, buildOutlinePrompt(req), outlineMaxTokens, outlineTemp)
	if err != nil {
		res.Outline.Err = err.Error()
		slog.Warn("outline stage failed, continuing with empty outline", "error", err)
	} else {
		var payload outlinePayload
		if err := oracle.DecodeLoose(raw, &payload); err != nil {
			res.Outline.Err = err.Error()
			slog.Warn("outline parse failed, continuing with empty outline", "error", err)
		} else {
			res.Outline.Domains = payload.byDomain()
		}
	}

	// Stage 2: longform. Attempted exactly once, even over a degraded outline.
	raw, err = g.Oracle.Complete(ctx, systemPrompt, buildLongformPrompt(req, res.Outline), longformMaxTokens, longformTemp)
	if err != nil {
		return nil, fmt.Errorf("longform stage: %w", err)
	}

	var draft draftPayload
	if err := oracle.DecodeLoose(raw, &draft); err != nil {
		res.Diagnostic = err.Error()
		slog.Warn("longform parse failed, returning degraded reading", "error", err)
	}
	if res.Diagnostic == "" && res.Outline.Err != "" {
		res.Diagnostic = "outline: " + res.Outline.Err
	}

	for _, ev := range req.Events {
		res.Sections = append(res.Sections, Section{
			Title:  event.Title(ev.Domain),
			Domain: ev.Domain,
			Text:   strings.TrimSpace(draft.textFor(ev.Domain)),
			Chips:  ev.Why,
		})
	}
	res.Highlights = draft.Highlights
	if draft.Ritual != nil {
		res.Ritual = &Ritual{Title: draft.Ritual.Titel, Steps: draft.Ritual.Schritte}
	}

	return res, nil
}
