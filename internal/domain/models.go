package domain

// FieldMap is the flat key/value intermediate representation of extracted
// invoice data, independent of the method that produced it. Values are
// string, float64, bool, or nil. A nil value means the field was looked for
// and not found; a missing key means the field was never attempted. The two
// are distinct on purpose and consumers rely on the distinction.
type FieldMap map[string]any

// Clone returns a shallow copy of the map. Values are scalars, so a shallow
// copy is a full copy.
func (m FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String returns the value for key as a string, or "" if the value is
// missing, nil, or not a string.
func (m FieldMap) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// ExtractedText is the raw text layer pulled from a PDF, produced once per
// document and consumed by the extractors. A PDF with no text layer yields
// an empty Text and is not an error.
type ExtractedText struct {
	Text      string
	PageCount int
	Metadata  map[string]string
}

// FieldRule is a single template extraction rule: a regex whose first
// capture group becomes the field value.
type FieldRule struct {
	Pattern  string `json:"pattern"`
	Required bool   `json:"required,omitempty"`
	Format   string `json:"format,omitempty"`
}

// Template is a user-authored set of field-name to regex mappings tailored
// to one vendor's invoice layout. The extraction core consumes only
// FieldMappings; the rest is bookkeeping owned by the caller.
type Template struct {
	Name          string               `json:"name"`
	VendorFilter  string               `json:"vendor_filter,omitempty"`
	FieldMappings map[string]FieldRule `json:"field_mappings"`
	IsDefault     bool                 `json:"is_default,omitempty"`
}

// ResultMetadata carries per-document extraction diagnostics.
type ResultMetadata struct {
	Pages            int      `json:"pages"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
	ExtractionMethod Method   `json:"extraction_method"`
	AttemptedMethods []Method `json:"attempted_methods"`
	Model            string   `json:"model,omitempty"`
}

// ExtractionResult is the final pipeline output for one document. It is
// immutable after creation; downstream stages derive new values from Data
// rather than mutating it.
type ExtractionResult struct {
	Success  bool           `json:"success"`
	Data     FieldMap       `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata ResultMetadata `json:"metadata"`
}
