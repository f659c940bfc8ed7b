// Prompt construction for both oracle stages. Every fact line comes from the
// request or profile — the prompts forbid the model to reference anything
// else.
package reading

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Wolf-Achtung/horoskop.one/internal/event"
)

const systemPrompt = "Du bist ein präziser, poetischer, freundlicher Schreibassistent."

// toneLine translates the tone selector into the writing instruction.
func toneLine(tone string) string {
	switch tone {
	case "coach":
		return "klarer Coach (konkret, ermutigend, alltagsnah)"
	case "skeptic":
		return "nüchterner Begleiter (sachlich, leichtfüßig, ohne Pathos)"
	default:
		return "mystischer Coach (poetisch, warm, aber klar)"
	}
}

// factLines renders the shared context block used by both stages.
func factLines(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "- Zeitraum: %s\n", req.Period)
	if req.Lat != nil && req.Lon != nil {
		fmt.Fprintf(&b, "- Ort: %s → lat=%.4f, lon=%.4f, Zeitzone=%s\n", req.Place, *req.Lat, *req.Lon, req.Timezone)
	} else {
		fmt.Fprintf(&b, "- Ort: %s (Koordinaten unbekannt), Zeitzone=%s\n", req.Place, req.Timezone)
	}
	fmt.Fprintf(&b, "- Datum: %s · Tagesabschnitt: %s\n", req.BirthDate.Format("02.01.2006"), req.Profile.Daypart)
	fmt.Fprintf(&b, "- Saison/Hemisphäre: %s / %s\n", req.Profile.Season, req.Profile.Hemisphere)
	fmt.Fprintf(&b, "- Mini-Ephemeriden: Sonne≈%s, Mondphase=%s, I-Ging=%d, Lebenszahl=%d, Chinesisch=%s, Baum=%s\n",
		req.Profile.SunSign, req.Profile.MoonPhase, req.Profile.IChing,
		req.Profile.LifePath, req.Profile.Chinese, req.Profile.Tree)

	if len(req.Events) > 0 {
		parts := make([]string, 0, len(req.Events))
		for _, ev := range req.Events {
			parts = append(parts, fmt.Sprintf("%s=%s (%.2f)", ev.Domain, ev.Key, ev.Weight))
		}
		fmt.Fprintf(&b, "- Symbol-Impulse: %s\n", strings.Join(parts, ", "))
	}

	if len(req.Weights) > 0 {
		parts := make([]string, 0, len(req.Weights))
		for _, k := range sortedKeys(req.Weights) {
			parts = append(parts, fmt.Sprintf("%s:%.0f%%", k, req.Weights[k]))
		}
		fmt.Fprintf(&b, "- Mixer: %s\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("- Mixer: Standard\n")
	}

	return b.String()
}

func buildOutlinePrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Erstelle eine OUTLINE als JSON (keinen Fließtext).\nStruktur:\n{\n")
	for i, d := range event.Domains {
		fmt.Fprintf(&b, " %q: {\"kern\":\"...\", \"punkte\":[\"...\",\"...\",\"...\"]}", string(d))
		if i < len(event.Domains)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\nRahmendaten:\n")
	b.WriteString(factLines(req))
	b.WriteString(`
Regeln:
- Pro Bereich 3–4 Stichpunkte, direkt aus den Rahmendaten abgeleitet; nichts erfinden.
- Letzter Stichpunkt = ultra-kurze Mini-Aktion (imperativ, 1 Satz) ohne „Aktion:“-Prefix.
- Keine medizinisch/juristisch/finanziell heiklen Ratschläge.
`)
	return b.String()
}

func buildLongformPrompt(req Request, outline Outline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Formuliere aus der OUTLINE ein Horoskop mit 2–4 Sätzen je Sektion im Ton „%s“.\n", toneLine(req.Tone))
	b.WriteString("Integriere die Mini-Aktion organisch in den Absatz. Keine Bullet-Listen.\n")
	b.WriteString("Beziehe dich ausschließlich auf die genannten Fakten.\n\n")
	b.WriteString("Kontext (nur nutzen, nicht erneut aufzählen):\n")
	b.WriteString(factLines(req))
	b.WriteString(ephemerisLine(req))

	b.WriteString("\nOUTLINE:\n```json\n")
	if outlineJSON, err := json.MarshalIndent(outline.Domains, "", "  "); err == nil {
		b.Write(outlineJSON)
	} else {
		b.WriteString("{}")
	}
	b.WriteString("\n```\nGib nur JSON:\n{\n")
	for _, d := range event.Domains {
		fmt.Fprintf(&b, " %q: \"Absatz\",\n", string(d))
	}
	b.WriteString(` "highlights": ["...","...","..."],
 "ritual": {"titel":"...", "schritte":["...","..."]}
}
`)
	return b.String()
}

// ephemerisLine states what precise-ephemeris data is (not) available so the
// model never invents ascendant or house placements.
func ephemerisLine(req Request) string {
	if req.Ephemeris != "" {
		return fmt.Sprintf("- Ephemeriden: %s\n", req.Ephemeris)
	}
	return "- Ephemeriden: keine genaue Zeit/Ort ⇒ Aszendent & Häuser unbekannt.\n"
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
