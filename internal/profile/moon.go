// Moon phase approximation — synodic cycle elapsed since a fixed reference
// new moon, no ephemeris involved.
package profile

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of the lunar phase cycle in days.
const SynodicMonth = 29.53058867

// refNewMoon is the reference new moon instant the cycle is anchored to.
var refNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// MoonFraction returns the elapsed fraction of the synodic cycle in [0, 1)
// for the given calendar date (taken at midnight UTC).
func MoonFraction(d time.Time) float64 {
	at := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	days := at.Sub(refNewMoon).Hours() / 24
	frac := math.Mod(days, SynodicMonth)
	if frac < 0 {
		frac += SynodicMonth
	}
	return frac / SynodicMonth
}

// MoonPhaseName maps a cycle fraction onto one of the eight named phases.
// The quarter and full/new points carry a small tolerance band.
func MoonPhaseName(frac float64) string {
	switch {
	case frac < 0.03 || frac > 0.97:
		return "Neumond"
	case frac < 0.25:
		return "zunehmende Sichel"
	case frac < 0.27:
		return "erstes Viertel"
	case frac < 0.47:
		return "zunehmender Mond"
	case frac < 0.53:
		return "Vollmond"
	case frac < 0.73:
		return "abnehmender Mond"
	case frac < 0.75:
		return "letztes Viertel"
	default:
		return "abnehmende Sichel"
	}
}
