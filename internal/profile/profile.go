// Package profile derives the symbolic birth facts a reading is grounded on.
// Every derivation is a pure function of the birth input and the optional geo
// fix: identical inputs always produce an identical Profile.
package profile

import (
	"fmt"
	"strconv"
	"time"
)

// Profile is the full derived fact set for one birth input.
type Profile struct {
	SunSign    string  `json:"sunSignApprox"`
	Chinese    string  `json:"chinese"`
	LifePath   int     `json:"lifePath"`
	Tree       string  `json:"tree"`
	IChing     int     `json:"iChing"`
	Season     string  `json:"season"`
	Hemisphere string  `json:"hemisphere"`
	Daypart    string  `json:"daypart"`
	MoonFrac   float64 `json:"moonFrac"`
	MoonPhase  string  `json:"moonPhase"`
}

// DaypartUnknown is the sentinel used when neither an exact time nor a
// coarse day-part token is available.
const DaypartUnknown = "unbekannt"

// Clock is a birth time of day.
type Clock struct {
	Hour   int
	Minute int
}

// Build derives all facts. It has no failure states: a nil latitude falls
// back to the northern hemisphere and a nil clock keeps the coarse token.
func Build(date time.Time, clock *Clock, approxDaypart string, lat *float64) Profile {
	frac := MoonFraction(date)
	return Profile{
		SunSign:    SunSign(date),
		Chinese:    ChineseAnimal(date.Year()),
		LifePath:   LifePath(date),
		Tree:       CelticTree(date),
		IChing:     IChingIndex(date),
		Season:     Season(date, lat),
		Hemisphere: Hemisphere(lat),
		Daypart:    Daypart(clock, approxDaypart),
		MoonFrac:   frac,
		MoonPhase:  MoonPhaseName(frac),
	}
}

type zodiacEdge struct {
	name  string
	month time.Month
	day   int
}

// Ordered boundary table. A date belongs to the first sign whose boundary is
// not yet passed; the boundary day itself is inclusive.
var zodiacEdges = []zodiacEdge{
	{"Steinbock", time.January, 19},
	{"Wassermann", time.February, 18},
	{"Fische", time.March, 20},
	{"Widder", time.April, 19},
	{"Stier", time.May, 20},
	{"Zwillinge", time.June, 20},
	{"Krebs", time.July, 22},
	{"Löwe", time.August, 22},
	{"Jungfrau", time.September, 22},
	{"Waage", time.October, 22},
	{"Skorpion", time.November, 21},
	{"Schütze", time.December, 21},
	{"Steinbock", time.December, 31},
}

// SunSign returns the western zodiac sign for a calendar date.
func SunSign(d time.Time) string {
	m, day := d.Month(), d.Day()
	for _, e := range zodiacEdges {
		if m < e.month || (m == e.month && day <= e.day) {
			return e.name
		}
	}
	return "Steinbock"
}

var chineseAnimals = []string{
	"Ratte", "Büffel", "Tiger", "Hase", "Drache", "Schlange",
	"Pferd", "Ziege", "Affe", "Hahn", "Hund", "Schwein",
}

// chineseEpoch anchors the 12-year animal cycle. 1900 was a rat year.
const chineseEpoch = 1900

// ChineseAnimal returns the animal sign for a birth year.
func ChineseAnimal(year int) string {
	return chineseAnimals[((year-chineseEpoch)%12+12)%12]
}

// LifePath reduces the 8-digit date to a numerological life-path number.
// The master numbers 11, 22 and 33 are never reduced further.
func LifePath(d time.Time) int {
	s := fmt.Sprintf("%04d%02d%02d", d.Year(), int(d.Month()), d.Day())
	n := digitSum(s)
	for n > 9 && n != 11 && n != 22 && n != 33 {
		n = digitSum(strconv.Itoa(n))
	}
	return n
}

func digitSum(s string) int {
	sum := 0
	for _, c := range s {
		sum += int(c - '0')
	}
	return sum
}

type treeRange struct {
	name             string
	fromMonth        time.Month
	fromDay          int
	toMonth          time.Month
	toDay            int
}

// Celtic tree calendar. The Birke range wraps across the year boundary.
var treeRanges = []treeRange{
	{"Birke", time.December, 24, time.January, 20},
	{"Eberesche", time.January, 21, time.February, 17},
	{"Esche", time.February, 18, time.March, 17},
	{"Erle", time.March, 18, time.April, 14},
	{"Weide", time.April, 15, time.May, 12},
	{"Weißdorn", time.May, 13, time.June, 9},
	{"Eiche", time.June, 10, time.July, 7},
	{"Stechpalme", time.July, 8, time.August, 4},
	{"Hasel", time.August, 5, time.September, 1},
	{"Weinrebe", time.September, 2, time.September, 29},
	{"Efeu", time.September, 30, time.October, 27},
	{"Schilfrohr", time.October, 28, time.November, 24},
	{"Holunder", time.November, 25, time.December, 23},
}

// CelticTree returns the tree sign for a calendar date.
func CelticTree(d time.Time) string {
	y := d.Year()
	day := time.Date(y, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	for _, r := range treeRanges {
		start := time.Date(y, r.fromMonth, r.fromDay, 0, 0, 0, 0, time.UTC)
		end := time.Date(y, r.toMonth, r.toDay, 0, 0, 0, 0, time.UTC)
		if start.After(end) {
			// Wraparound range: inside when on either side of the boundary.
			if !day.Before(start) || !day.After(end) {
				return r.name
			}
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return r.name
		}
	}
	return "Birke"
}

// IChingIndex maps a date onto one of the 64 hexagrams. Zero folds to 1 so
// the index is always a valid hexagram number.
func IChingIndex(d time.Time) int {
	idx := (d.YearDay() + d.Year()) % 64
	if idx == 0 {
		return 1
	}
	return idx
}

var (
	seasonsNorth = []string{
		"Winter", "Winter", "Frühling", "Frühling", "Frühling", "Sommer",
		"Sommer", "Sommer", "Herbst", "Herbst", "Herbst", "Winter",
	}
	seasonsSouth = []string{
		"Sommer", "Sommer", "Herbst", "Herbst", "Herbst", "Winter",
		"Winter", "Winter", "Frühling", "Frühling", "Frühling", "Sommer",
	}
)

// Season returns the meteorological season at the birth place. An unknown
// latitude defaults to the northern table.
func Season(d time.Time, lat *float64) string {
	if north(lat) {
		return seasonsNorth[int(d.Month())-1]
	}
	return seasonsSouth[int(d.Month())-1]
}

// Hemisphere returns "Nord" or "Süd"; unknown latitude defaults north.
func Hemisphere(lat *float64) string {
	if north(lat) {
		return "Nord"
	}
	return "Süd"
}

func north(lat *float64) bool {
	return lat == nil || *lat >= 0
}

// Daypart buckets an exact clock time, or normalizes the coarse token when
// no time is known.
func Daypart(clock *Clock, approx string) string {
	if clock != nil {
		h := clock.Hour
		switch {
		case h >= 5 && h < 11:
			return "morgens"
		case h >= 11 && h < 15:
			return "mittags"
		case h >= 15 && h < 20:
			return "abends"
		default:
			return "nachts"
		}
	}
	switch approx {
	case "morgens", "mittags", "abends", "nachts":
		return approx
	}
	return DaypartUnknown
}
