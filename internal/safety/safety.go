// Package safety rewrites generated prose that drifts into sensitive
// territory. The policy is a fixed ordered rule table (pattern → safety note)
// so rules can be tested independently and replaced by a classifier later.
package safety

import "regexp"

// Rule pairs a sensitive-content pattern with the note appended after a
// rewrite.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Note    string
}

// neutralText replaces a flagged span. It must never match any rule pattern,
// otherwise sanitization would not be idempotent.
const neutralText = "Formuliere diesen Impuls achtsam und beobachtend, ohne Druck und ohne Versprechen."

// Ordered rule table. First match wins. Notes are phrased so that no note
// re-triggers a rule.
var rules = []Rule{
	{
		Name:    "selfharm",
		Pattern: regexp.MustCompile(`(?i)(suizid|selbstmord|selbstverletz|sich (etwas|was) antun|nicht mehr leben wollen)`),
		Note:    "Hinweis: Bei belastenden Gedanken ist die Telefonseelsorge rund um die Uhr erreichbar: 0800 111 0 111.",
	},
	{
		Name:    "medical",
		Pattern: regexp.MustCompile(`(?i)(diagnose|medikament|dosierung|symptome behandeln|heilungsversprechen|krankheit (heilt|heilen))`),
		Note:    "Hinweis: Fragen zur Gesundheit gehören in fachkundige Hände, nicht in ein Horoskop.",
	},
	{
		Name:    "legal",
		Pattern: regexp.MustCompile(`(?i)(verklagen|vor gericht ziehen|rechtsanspruch|juristisch einklag|vertrag (kündigen|anfechten))`),
		Note:    "Hinweis: Für rechtliche Anliegen ist eine qualifizierte Beratungsstelle der richtige Ort.",
	},
	{
		Name:    "financial",
		Pattern: regexp.MustCompile(`(?i)(garantierte rendite|sicherer gewinn|all-?in gehen|kredit aufnehmen|aktien (kaufen|verkaufen)|krypto (kaufen|verkaufen))`),
		Note:    "Hinweis: Geldentscheidungen verdienen eine nüchterne Prüfung jenseits der Sterne.",
	},
}

// Sanitize scans text against the rule table. On the first match the entire
// span is replaced by the neutral sentence with the rule's note appended.
// Sanitizing already-sanitized text is a no-op. The returned slice names the
// applied rule, or is nil on pass-through.
func Sanitize(text string) (string, []string) {
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			return neutralText + " " + r.Note, []string{r.Name}
		}
	}
	return text, nil
}

// Rules exposes the table for tests and diagnostics.
func Rules() []Rule {
	return rules
}
