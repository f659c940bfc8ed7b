// Package reading orchestrates the two-stage generation exchange with the
// oracle and owns the response payload types.
package reading

import (
	"github.com/Wolf-Achtung/horoskop.one/internal/event"
	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
)

// Section is one domain-tagged prose block of the final reading.
type Section struct {
	Title  string       `json:"title"`
	Domain event.Domain `json:"domain"`
	Text   string       `json:"text"`
	Chips  []string     `json:"chips,omitempty"`
}

// Ritual is the short closing practice of a reading.
type Ritual struct {
	Title string   `json:"titel"`
	Steps []string `json:"schritte,omitempty"`
}

// GeoMeta echoes the resolved coordinates. Nil lat/lon means the place could
// not be resolved — a valid, non-error state.
type GeoMeta struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
	TZ  string   `json:"tz"`
}

// Meta echoes the inputs and every derived fact the prose may reference.
type Meta struct {
	Period        string          `json:"period"`
	Tone          string          `json:"tone"`
	Locale        string          `json:"locale"`
	BirthDate     string          `json:"birthDate"`
	BirthPlace    string          `json:"birthPlace"`
	BirthTime     string          `json:"birthTime,omitempty"`
	ApproxDaypart string          `json:"approxDaypart"`
	Geo           GeoMeta         `json:"geo"`
	Season        string          `json:"season"`
	Hemisphere    string          `json:"hemisphere"`
	Mini          profile.Profile `json:"mini"`
	Seed          string          `json:"seed"`
	Events        []event.Event   `json:"events,omitempty"`
	Ephemeris     string          `json:"ephemeris,omitempty"`
	Diagnostic    string          `json:"diagnostic,omitempty"`
}

// Reading is the final response payload.
type Reading struct {
	Meta       Meta      `json:"meta"`
	Sections   []Section `json:"sections"`
	Chips      []string  `json:"chips,omitempty"`
	Highlights []string  `json:"highlights,omitempty"`
	Ritual     *Ritual   `json:"ritual,omitempty"`
	Disclaimer string    `json:"disclaimer"`
}

// OutlineDomain is stage 1's plan for one domain: a core theme, bullet
// points, and (as the last bullet) one imperative micro-action.
type OutlineDomain struct {
	Kern   string   `json:"kern"`
	Punkte []string `json:"punkte"`
}

// Outline is the stage-1 result. It is never shown to the user; stage 2
// consumes it. A parse failure leaves Domains empty and sets Err, which must
// not stop stage 2 from running.
type Outline struct {
	Domains map[event.Domain]OutlineDomain `json:"domains"`
	Err     string                         `json:"err,omitempty"`
}

// outlinePayload is the strict wire shape expected from stage 1.
type outlinePayload struct {
	Fokus   OutlineDomain `json:"fokus"`
	Beruf   OutlineDomain `json:"beruf"`
	Liebe   OutlineDomain `json:"liebe"`
	Energie OutlineDomain `json:"energie"`
	Sozial  OutlineDomain `json:"sozial"`
}

func (p outlinePayload) byDomain() map[event.Domain]OutlineDomain {
	return map[event.Domain]OutlineDomain{
		event.DomainFokus:   p.Fokus,
		event.DomainBeruf:   p.Beruf,
		event.DomainLiebe:   p.Liebe,
		event.DomainEnergie: p.Energie,
		event.DomainSozial:  p.Sozial,
	}
}

// draftPayload is the strict wire shape expected from stage 2.
type draftPayload struct {
	Fokus      string         `json:"fokus"`
	Beruf      string         `json:"beruf"`
	Liebe      string         `json:"liebe"`
	Energie    string         `json:"energie"`
	Sozial     string         `json:"sozial"`
	Highlights []string       `json:"highlights"`
	Ritual     *ritualPayload `json:"ritual"`
}

type ritualPayload struct {
	Titel    string   `json:"titel"`
	Schritte []string `json:"schritte"`
}

func (p draftPayload) textFor(d event.Domain) string {
	switch d {
	case event.DomainFokus:
		return p.Fokus
	case event.DomainBeruf:
		return p.Beruf
	case event.DomainLiebe:
		return p.Liebe
	case event.DomainEnergie:
		return p.Energie
	case event.DomainSozial:
		return p.Sozial
	}
	return ""
}
