// Loose JSON extraction from oracle output. Models wrap structured answers in
// prose or markdown fences often enough that a strict unmarshal alone is not
// viable.
package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// DecodeLoose extracts a JSON object from raw into v. Attempted in order:
// a fenced code block, the first top-level object-looking substring (with a
// repair pass for truncated or sloppy JSON), and finally the raw text itself.
// Returns an error only when every attempt fails; the caller decides whether
// that degrades the stage or fails the request.
func DecodeLoose(raw string, v any) error {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		if json.Unmarshal([]byte(m[1]), v) == nil {
			return nil
		}
	}

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		inner := raw[start : end+1]
		if json.Unmarshal([]byte(inner), v) == nil {
			return nil
		}
		if fixed, err := jsonrepair.JSONRepair(inner); err == nil {
			if json.Unmarshal([]byte(fixed), v) == nil {
				return nil
			}
		}
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("no parseable JSON in oracle output: %w", err)
	}
	return nil
}
