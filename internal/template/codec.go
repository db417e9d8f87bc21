// Package template serializes extraction templates to and from their
// portable JSON form, so users can share vendor-specific field mappings
// between installations.
package template

import (
	"encoding/json"
	"fmt"
	"time"

	"telextract/internal/domain"
)

// Version is the current template file format version.
const Version = "1.0"

// File is the portable JSON representation of a template.
type File struct {
	TemplateName  string                      `json:"templateName"`
	VendorName    string                      `json:"vendorName,omitempty"`
	FieldMappings map[string]domain.FieldRule `json:"fieldMappings"`
	IsDefault     bool                        `json:"isDefault"`
	Version       string                      `json:"version"`
	ExportedAt    string                      `json:"exportedAt"`
}

// Export renders a template as indented JSON, stamped with the format
// version and the current UTC time.
func Export(tmpl *domain.Template) ([]byte, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("template.Export: nil template")
	}
	file := File{
		TemplateName:  tmpl.Name,
		VendorName:    tmpl.VendorFilter,
		FieldMappings: tmpl.FieldMappings,
		IsDefault:     tmpl.IsDefault,
		Version:       Version,
		ExportedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("template.Export: %w", err)
	}
	return data, nil
}

// Import parses and validates a template file. The bookkeeping fields
// (version, exportedAt) are accepted but not enforced; only the parts the
// extraction core consumes are validated.
func Import(data []byte) (*domain.Template, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("template.Import: invalid JSON: %w", err)
	}
	if file.TemplateName == "" {
		return nil, fmt.Errorf("template.Import: missing templateName")
	}
	if len(file.FieldMappings) == 0 {
		return nil, fmt.Errorf("template.Import: missing fieldMappings")
	}
	for field, rule := range file.FieldMappings {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("template.Import: field %q has no pattern", field)
		}
	}
	return &domain.Template{
		Name:          file.TemplateName,
		VendorFilter:  file.VendorName,
		FieldMappings: file.FieldMappings,
		IsDefault:     file.IsDefault,
	}, nil
}
