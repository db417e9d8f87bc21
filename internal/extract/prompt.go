package extract

import (
	"sort"
	"strings"

	"telextract/internal/domain"
)

// SystemPrompt is the fixed role prompt for LLM invoice extraction.
const SystemPrompt = `You are an expert at extracting structured data from invoices and bills.
Extract the requested information from the provided invoice text and return it as a JSON object.
Be precise and extract exact values as they appear in the document.`

// BuildUserPrompt returns the user prompt embedding the full document text,
// the enumerated extraction categories, and the flat key vocabulary the
// response must use. Template field names, if any, are appended to the key
// list so vendor-specific custom fields are requested too.
func BuildUserPrompt(text string, tmpl *domain.Template) string {
	keys := Keys()
	if tmpl != nil {
		extra := make([]string, 0, len(tmpl.FieldMappings))
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			seen[k] = true
		}
		for name := range tmpl.FieldMappings {
			if !seen[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		keys = append(keys, extra...)
	}

	var b strings.Builder
	b.WriteString(`Extract all relevant invoice data from the following text. Include:
- Invoice details (invoice number, dates, amounts)
- Company/vendor information
- Customer information
- Line items and charges
- Tax information (GST, CGST, SGST, IGST)
- Payment and bank details
- Any circuit/service specific information

Return a single flat JSON object using exactly these keys:
`)
	b.WriteString(strings.Join(keys, ", "))
	b.WriteString(`

Text:
`)
	b.WriteString(text)
	b.WriteString(`

Return ONLY a valid JSON object with the extracted data. Every key must be present; use null for fields not found in the document. Values must be strings, numbers, booleans, or null; no nested objects or arrays.`)
	return b.String()
}
