// Package normalize post-processes extracted field values: date reformatting
// and numeric cleanup. It is independent of which extraction method produced
// the values, and every operation is idempotent and total — unrecognized
// input passes through rather than failing.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"telextract/internal/domain"
)

var (
	// DD.MM.YY with the two-digit year anchored at end of string. Years
	// above 50 map to the 1900s, 50 and below to the 2000s. The source
	// documents carry no century marker, so the pivot is a heuristic.
	ddmmyyPattern = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})$`)

	// DD.MM.YYYY anywhere in the value.
	ddmmyyyyPattern = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
)

// FormatDate converts the two canonical source date formats (DD.MM.YY and
// DD.MM.YYYY) to YYYY-MM-DD. Anything else, including an already-normalized
// ISO date, is returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return raw
	}

	if m := ddmmyyPattern.FindStringSubmatch(raw); m != nil {
		yy, _ := strconv.Atoi(m[3])
		century := "20"
		if yy > 50 {
			century = "19"
		}
		return century + m[3] + "-" + m[2] + "-" + m[1]
	}

	if m := ddmmyyyyPattern.FindStringSubmatch(raw); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}

	return raw
}

// ParseNumeric strips thousands separators and parses the result as a
// float. The second return value is false when the input is empty or not a
// number.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Apply returns a new FieldMap with the named date fields reformatted and
// the named numeric fields parsed to float64. Unparseable numerics become
// nil; unrecognized dates pass through unchanged. The input map is never
// mutated. Values that are already normalized (float64, ISO dates) are left
// as they are, so Apply is idempotent.
func Apply(fields domain.FieldMap, dateKeys, numericKeys []string) domain.FieldMap {
	out := fields.Clone()

	for _, key := range dateKeys {
		if s, ok := out[key].(string); ok {
			out[key] = FormatDate(s)
		}
	}

	for _, key := range numericKeys {
		switch v := out[key].(type) {
		case string:
			if f, ok := ParseNumeric(v); ok {
				out[key] = f
			} else {
				out[key] = nil
			}
		case float64:
			// already normalized
		}
	}

	return out
}
