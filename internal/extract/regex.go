package extract

import (
	"log"
	"regexp"
	"strings"

	"telextract/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractGeneric applies the full pattern library against text and returns
// a FieldMap containing every key in the library — matched values or
// explicit nil. It never fails, including on empty input.
func ExtractGeneric(text string) domain.FieldMap {
	fields := make(domain.FieldMap, len(library)+len(addressLabels))

	for _, r := range library {
		applyRule(fields, r, text)
	}

	for _, a := range addressLabels {
		if addr, ok := scanAddress(text, a.Label); ok {
			fields[a.Field] = addr
		} else {
			fields[a.Field] = nil
		}
	}

	return fields
}

// ExtractWithTemplate applies only the rules enumerated in the template's
// field mappings. A rule that does not match — or does not compile — sets
// that one field to nil and never aborts the rest. Fields absent from the
// template are not produced at all: template results are not
// schema-complete and callers must not assume otherwise.
func ExtractWithTemplate(text string, tmpl *domain.Template) domain.FieldMap {
	fields := make(domain.FieldMap, len(tmpl.FieldMappings))

	for name, rule := range tmpl.FieldMappings {
		if rule.Pattern == "" {
			fields[name] = nil
			continue
		}
		re, err := regexp.Compile(`(?i)` + rule.Pattern)
		if err != nil {
			log.Printf("extract.ExtractWithTemplate: %v", &domain.PatternError{Field: name, Err: err})
			fields[name] = nil
			continue
		}
		m := re.FindStringSubmatch(text)
		switch {
		case m == nil:
			fields[name] = nil
		case len(m) > 1:
			fields[name] = strings.TrimSpace(m[1])
		default:
			fields[name] = strings.TrimSpace(m[0])
		}
	}

	return fields
}

// applyRule evaluates one library rule against text and records its output
// fields. First match wins: a field already holding a value is not
// overwritten.
func applyRule(fields domain.FieldMap, r Rule, text string) {
	switch r.Kind {
	case KindPresenceBoolean:
		// The negative-assertion phrase proves false; its absence proves
		// nothing, so the field stays nil rather than flipping to true.
		if r.Pattern.MatchString(text) {
			setField(fields, r.Field, false)
		} else {
			setField(fields, r.Field, nil)
		}

	case KindPairedDateRange:
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			setField(fields, r.Field, nil)
			setField(fields, r.SecondField, nil)
			return
		}
		setField(fields, r.Field, strings.TrimSpace(m[1]))
		setField(fields, r.SecondField, strings.TrimSpace(m[2]))

	case KindLiteralMatch:
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			setField(fields, r.Field, nil)
			return
		}
		setField(fields, r.Field, strings.ToUpper(strings.TrimSpace(m[1])))

	default: // KindScalar
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			setField(fields, r.Field, nil)
			return
		}
		setField(fields, r.Field, strings.TrimSpace(m[1]))
	}
}

// setField records a value unless the field already holds a non-nil one.
func setField(fields domain.FieldMap, key string, value any) {
	if existing, ok := fields[key]; ok && existing != nil {
		return
	}
	fields[key] = value
}

// scanAddress captures the text between an address label and the next known
// boundary label (or end of text), collapsing internal whitespace to single
// spaces.
func scanAddress(text, label string) (string, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(label))
	if idx < 0 {
		return "", false
	}
	start := idx + len(label)

	end := len(text)
	for _, b := range addressBoundaries {
		if strings.EqualFold(b, label) {
			continue
		}
		if i := strings.Index(lower[start:], strings.ToLower(b)); i >= 0 && start+i < end {
			end = start + i
		}
	}

	addr := strings.TrimSpace(whitespaceRun.ReplaceAllString(text[start:end], " "))
	addr = strings.TrimLeft(addr, ":. ")
	if addr == "" {
		return "", false
	}
	return addr, true
}
