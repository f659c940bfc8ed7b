// Birth input parsing. Malformed dates are rejected here, at the boundary —
// never silently defaulted.
package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	germanDateRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4})$`)
	clockRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseDate accepts ISO (2006-01-02) and German (2.1.2006) birth dates.
// Two-digit years below 30 are read as 20xx, the rest as 19xx.
func ParseDate(s string) (time.Time, error) {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := germanDateRe.FindStringSubmatch(s); m != nil {
		y := atoi(m[3])
		if y < 100 {
			if y < 30 {
				y += 2000
			} else {
				y += 1900
			}
		}
		return calendarDate(y, atoi(m[2]), atoi(m[1]))
	}
	return time.Time{}, fmt.Errorf("unrecognized birth date %q", s)
}

func calendarDate(y, m, d int) (time.Time, error) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; a real calendar date
	// must round-trip unchanged.
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", y, m, d)
	}
	return t, nil
}

// ParseClock accepts an H:MM birth time. Out-of-range components clamp
// instead of failing: the time only selects a day-part bucket.
func ParseClock(s string) *Clock {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return &Clock{
		Hour:   clampInt(atoi(m[1]), 0, 23),
		Minute: clampInt(atoi(m[2]), 0, 59),
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
