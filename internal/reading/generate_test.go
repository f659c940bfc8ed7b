package reading

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Wolf-Achtung/horoskop.one/internal/event"
	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
)

// fakeOracle replays scripted responses, one per Complete call.
type fakeOracle struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeOracle) Enabled() bool { return true }
func (f *fakeOracle) Model() string { return "fake-model" }

func (f *fakeOracle) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, user)
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

const outlineJSON = `{
	"fokus":   {"kern": "Klarheit", "punkte": ["a", "b", "Atme dreimal tief durch."]},
	"beruf":   {"kern": "Struktur", "punkte": ["c", "Sortiere eine Sache."]},
	"liebe":   {"kern": "Nähe", "punkte": ["d", "Schreib eine Nachricht."]},
	"energie": {"kern": "Rhythmus", "punkte": ["e", "Geh zehn Minuten raus."]},
	"sozial":  {"kern": "Austausch", "punkte": ["f", "Ruf jemanden an."]}
}`

const draftJSON = `{
	"fokus": "Heute liegt Klarheit in der Luft.",
	"beruf": "Struktur trägt dich durch den Tag.",
	"liebe": "Ein kleines Zeichen reicht.",
	"energie": "Dein Rhythmus stimmt.",
	"sozial": "Ein Gespräch öffnet eine Tür.",
	"highlights": ["Klarheit", "Struktur", "Nähe"],
	"ritual": {"titel": "Abendblick", "schritte": ["Fenster öffnen", "Drei Atemzüge"]}
}`

func testRequest() Request {
	p := profile.Profile{
		SunSign: "Zwillinge", Chinese: "Pferd", LifePath: 4, Tree: "Eiche",
		IChing: 17, Season: "Sommer", Hemisphere: "Nord", Daypart: "morgens",
		MoonFrac: 0.724, MoonPhase: "abnehmender Mond",
	}
	var events []event.Event
	for _, d := range event.Domains {
		events = append(events, event.Event{
			Key: "Impuls", Domain: d, Weight: 0.5, Why: []string{"Sternzeichen Zwillinge"},
		})
	}
	return Request{
		Period:    "day",
		Tone:      "mystic",
		BirthDate: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		Place:     "Berlin",
		Timezone:  "Europe/Berlin",
		Profile:   p,
		Events:    events,
		Seed:      "a1b2c3d4",
	}
}

func TestGenerateHappyPath(t *testing.T) {
	fake := &fakeOracle{replies: []string{outlineJSON, draftJSON}}
	g := &Generator{Oracle: fake}

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, 2, fake.calls)
	require.Empty(t, res.Diagnostic)

	require.Len(t, res.Sections, len(event.Domains))
	for i, sec := range res.Sections {
		require.Equal(t, event.Domains[i], sec.Domain)
		require.NotEmpty(t, sec.Text)
		require.Equal(t, []string{"Sternzeichen Zwillinge"}, sec.Chips)
	}
	require.Equal(t, "Heute liegt Klarheit in der Luft.", res.Sections[0].Text)
	require.Equal(t, []string{"Klarheit", "Struktur", "Nähe"}, res.Highlights)
	require.NotNil(t, res.Ritual)
	require.Equal(t, "Abendblick", res.Ritual.Title)
	require.Len(t, res.Ritual.Steps, 2)
	require.Equal(t, "Klarheit", res.Outline.Domains[event.DomainFokus].Kern)
}

// An outline failure degrades to an empty outline; the longform stage still
// runs and the reading still comes back.
func TestGenerateOutlineFailureContinues(t *testing.T) {
	fake := &fakeOracle{
		replies: []string{"", draftJSON},
		errs:    []error{fmt.Errorf("upstream timeout")},
	}
	g := &Generator{Oracle: fake}

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, 2, fake.calls)
	require.Contains(t, res.Outline.Err, "upstream timeout")
	require.Contains(t, res.Diagnostic, "outline")
	require.Equal(t, "Heute liegt Klarheit in der Luft.", res.Sections[0].Text)
}

func TestGenerateOutlineParseFailureContinues(t *testing.T) {
	fake := &fakeOracle{replies: []string{"kein json hier", draftJSON}}
	g := &Generator{Oracle: fake}

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, 2, fake.calls)
	require.NotEmpty(t, res.Outline.Err)
	require.Empty(t, res.Outline.Domains)
	require.NotEmpty(t, res.Sections)
}

// A longform transport failure is the one hard error: no retry, no fallback.
func TestGenerateLongformTransportError(t *testing.T) {
	fake := &fakeOracle{
		replies: []string{outlineJSON, ""},
		errs:    []error{nil, fmt.Errorf("connection reset")},
	}
	g := &Generator{Oracle: fake}

	res, err := g.Generate(context.Background(), testRequest())
	require.Error(t, err)
	require.Nil(t, res)
	require.Equal(t, 2, fake.calls)
	require.ErrorContains(t, err, "longform stage")
}

// A longform parse failure degrades: sections come back empty-texted with a
// diagnostic, for the normalizer to shape.
func TestGenerateLongformParseFailureDegrades(t *testing.T) {
	fake := &fakeOracle{replies: []string{outlineJSON, "leider nur Prosa"}}
	g := &Generator{Oracle: fake}

	res, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotEmpty(t, res.Diagnostic)
	require.Len(t, res.Sections, len(event.Domains))
	for _, sec := range res.Sections {
		require.Empty(t, sec.Text)
	}
}

func TestGenerateDisabledOracle(t *testing.T) {
	g := &Generator{}
	_, err := g.Generate(context.Background(), testRequest())
	require.Error(t, err)
}

// Both prompts must carry the derived facts; the longform prompt must embed
// the stage-1 outline.
func TestGeneratePromptsCarryFacts(t *testing.T) {
	fake := &fakeOracle{replies: []string{outlineJSON, draftJSON}}
	g := &Generator{Oracle: fake}

	_, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, fake.prompts, 2)

	for _, p := range fake.prompts {
		require.Contains(t, p, "Zwillinge")
		require.Contains(t, p, "15.06.1990")
		require.Contains(t, p, "Berlin")
	}
	require.Contains(t, fake.prompts[1], "Klarheit") // outline fed into stage 2
	require.Contains(t, fake.prompts[1], "OUTLINE")
}
