// Package event selects the symbolic events a reading is built around, one
// per life domain. Selection is driven entirely by the seed token: the same
// token and profile always pick the same events.
package event

import (
	"fmt"

	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
	"github.com/Wolf-Achtung/horoskop.one/internal/seed"
)

// Domain tags the life area a section or event belongs to.
type Domain string

// The closed domain set. Order matters: it is the section order of the final
// reading and the fallback assignment order in the normalizer.
const (
	DomainFokus   Domain = "fokus"
	DomainBeruf   Domain = "beruf"
	DomainLiebe   Domain = "liebe"
	DomainEnergie Domain = "energie"
	DomainSozial  Domain = "sozial"
)

// Domains lists the closed set in reading order.
var Domains = []Domain{DomainFokus, DomainBeruf, DomainLiebe, DomainEnergie, DomainSozial}

// Valid reports whether d belongs to the closed domain set.
func Valid(d Domain) bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// Title returns the section heading for a domain.
func Title(d Domain) string {
	switch d {
	case DomainFokus:
		return "Fokus"
	case DomainBeruf:
		return "Beruf"
	case DomainLiebe:
		return "Liebe"
	case DomainEnergie:
		return "Energie"
	case DomainSozial:
		return "Sozial"
	}
	return string(d)
}

// Event is one selected symbolic impulse for a domain.
type Event struct {
	Key    string   `json:"key"`
	Domain Domain   `json:"domain"`
	Weight float64  `json:"weight"`
	Why    []string `json:"why"`
}

// Per-domain salts. Fixed strings — part of the determinism contract.
var domainSalts = map[Domain]string{
	DomainFokus:   "fokus/v1",
	DomainBeruf:   "beruf/v1",
	DomainLiebe:   "liebe/v1",
	DomainEnergie: "energie/v1",
	DomainSozial:  "sozial/v1",
}

// Select picks one event per domain. The sub-seed for a domain is the token
// concatenated with the domain salt, hashed with the same function as the
// token itself; the resulting word indexes the candidate table.
func Select(token string, p profile.Profile) []Event {
	events := make([]Event, 0, len(Domains))
	for _, d := range Domains {
		table := candidates[d]
		word := seed.Sum32([]byte(token + ":" + domainSalts[d]))
		weightWord := seed.Sum32([]byte(token + ":" + domainSalts[d] + ":w"))
		events = append(events, Event{
			Key:    table[word%uint32(len(table))],
			Domain: d,
			Weight: float64(weightWord) / float64(1<<32),
			Why:    whyFor(d, p),
		})
	}
	return events
}

// whyFor populates the justification list from profile facts relevant to the
// domain. Entries are never invented: every string names a derived fact.
func whyFor(d Domain, p profile.Profile) []string {
	switch d {
	case DomainFokus:
		return []string{
			fmt.Sprintf("Sternzeichen %s", p.SunSign),
			fmt.Sprintf("Saison: %s (%s-Halbkugel)", p.Season, p.Hemisphere),
		}
	case DomainBeruf:
		return []string{
			fmt.Sprintf("Lebenszahl %d", p.LifePath),
		}
	case DomainLiebe:
		return []string{
			fmt.Sprintf("Mondphase: %s", p.MoonPhase),
		}
	case DomainEnergie:
		return []string{
			fmt.Sprintf("Tag/Nacht: %s", p.Daypart),
			fmt.Sprintf("Chinesisch: %s", p.Chinese),
		}
	case DomainSozial:
		return []string{
			fmt.Sprintf("Baumkreis: %s", p.Tree),
			fmt.Sprintf("I Ging %d", p.IChing),
		}
	}
	return nil
}
