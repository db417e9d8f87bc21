package template_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telextract/internal/domain"
	"telextract/internal/template"
)

func sampleTemplate() *domain.Template {
	return &domain.Template{
		Name:         "vodafone-mpls",
		VendorFilter: "Vodafone Idea",
		FieldMappings: map[string]domain.FieldRule{
			"invoiceNumber": {Pattern: `Invoice\s+No[:.]?\s*([A-Z0-9-]+)`, Required: true},
			"dueDate":       {Pattern: `Due\s+Date[:.]?\s*(\S+)`, Format: "date"},
		},
		IsDefault: true,
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	data, err := template.Export(sampleTemplate())
	require.NoError(t, err)

	got, err := template.Import(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTemplate(), got)
}

func TestExport_StampsVersionAndTimestamp(t *testing.T) {
	data, err := template.Export(sampleTemplate())
	require.NoError(t, err)

	var file template.File
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, "1.0", file.Version)

	ts, err := time.Parse(time.RFC3339, file.ExportedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestExport_NilTemplate(t *testing.T) {
	_, err := template.Export(nil)
	assert.Error(t, err)
}

func TestImport_Validation(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid JSON", `{`},
		{"missing templateName", `{"fieldMappings":{"x":{"pattern":"a"}}}`},
		{"missing fieldMappings", `{"templateName":"t"}`},
		{"empty fieldMappings", `{"templateName":"t","fieldMappings":{}}`},
		{"mapping without pattern", `{"templateName":"t","fieldMappings":{"x":{"format":"date"}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := template.Import([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestImport_IgnoresUnknownBookkeeping(t *testing.T) {
	data := `{
		"templateName": "airtel-ill",
		"fieldMappings": {"circuitId": {"pattern": "Circuit[:.]?\\s*(\\S+)"}},
		"version": "0.9",
		"exportedAt": "not-a-timestamp",
		"extraneous": true
	}`

	got, err := template.Import([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "airtel-ill", got.Name)
	assert.Len(t, got.FieldMappings, 1)
	assert.False(t, got.IsDefault)
}
