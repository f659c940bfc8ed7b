// Response normalization — the last pass before a reading leaves the
// service. Whatever the oracle produced, the payload that goes out honors
// the structural contract.
package reading

import "github.com/Wolf-Achtung/horoskop.one/internal/event"

// Disclaimer is the fixed safety text. It overwrites anything the oracle
// put in that field.
const Disclaimer = "Hinweis: Dieses Angebot dient ausschließlich der Unterhaltung " +
	"und achtsamen Selbstreflexion und ersetzt keine professionelle Beratung. " +
	"Bei Krisen oder akuter Gefahr: 112 (EU) / lokale Beratungsstellen."

// Structural bounds of the response payload.
const (
	MaxHighlights  = 3
	MaxSections    = 5
	MaxRitualSteps = 5
)

// Normalize enforces the payload invariants in place: bounded list sizes,
// valid domain tags (deterministic default by position), required fields
// present, fixed disclaimer.
func Normalize(r *Reading) {
	if len(r.Highlights) > MaxHighlights {
		r.Highlights = r.Highlights[:MaxHighlights]
	}
	if len(r.Sections) > MaxSections {
		r.Sections = r.Sections[:MaxSections]
	}

	for i := range r.Sections {
		s := &r.Sections[i]
		if !event.Valid(s.Domain) {
			s.Domain = event.Domains[i%len(event.Domains)]
		}
		if s.Title == "" {
			s.Title = event.Title(s.Domain)
		}
	}
	if r.Sections == nil {
		r.Sections = []Section{}
	}

	if r.Ritual != nil {
		if len(r.Ritual.Steps) > MaxRitualSteps {
			r.Ritual.Steps = r.Ritual.Steps[:MaxRitualSteps]
		}
		if r.Ritual.Title == "" && len(r.Ritual.Steps) == 0 {
			r.Ritual = nil
		}
	}

	r.Disclaimer = Disclaimer
}
