package seed

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Wolf-Achtung/horoskop.one/internal/profile"
)

// Input is the canonical parameter set a SeedToken is derived from. Key
// insertion order in the request never matters: serialization sorts keys
// bytewise before hashing.
type Input struct {
	Mode      string
	Timeframe string
	Weights   map[string]float64
	Profile   profile.Profile
}

// Token hashes the canonical serialization of in into the seed token.
func Token(in Input) string {
	return Hex(Sum32([]byte(Canonical(in))))
}

// Override turns an explicit numeric seed from the request into token form,
// replacing the derived one.
func Override(n int64) string {
	return Hex(uint32(n))
}

// Canonical renders in as sorted key=value lines. The exact format is part
// of the determinism contract and must not change between releases.
func Canonical(in Input) string {
	p := in.Profile
	pairs := map[string]string{
		"mode":               in.Mode,
		"timeframe":          in.Timeframe,
		"profile.sunSign":    p.SunSign,
		"profile.chinese":    p.Chinese,
		"profile.lifePath":   strconv.Itoa(p.LifePath),
		"profile.tree":       p.Tree,
		"profile.iChing":     strconv.Itoa(p.IChing),
		"profile.season":     p.Season,
		"profile.hemisphere": p.Hemisphere,
		"profile.daypart":    p.Daypart,
		"profile.moonPhase":  p.MoonPhase,
		"profile.moonFrac":   strconv.FormatFloat(p.MoonFrac, 'g', 12, 64),
	}
	for k, v := range in.Weights {
		pairs["weights."+k] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(pairs[k])
	}
	return b.String()
}
