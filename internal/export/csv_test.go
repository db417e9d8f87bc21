package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telextract/internal/domain"
	"telextract/internal/export"
)

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	rows := []domain.FieldMap{
		export.MapToRow(domain.FieldMap{
			"invoiceNumber": "INV-2024-001",
			"totalPayable":  45678.50,
			"billDate":      "2024-03-15",
			"bandwidth":     20.0,
		}, "invoice.pdf"),
	}

	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(rows))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	cols := export.Columns()
	header := records[0]
	require.Len(t, header, len(cols))
	assert.Equal(t, "Filename", header[0])
	assert.Equal(t, "Bill Date", header[1])

	byHeader := make(map[string]string, len(cols))
	for i, col := range cols {
		byHeader[col.Header] = records[1][i]
	}
	assert.Equal(t, "invoice.pdf", byHeader["Filename"])
	assert.Equal(t, "INV-2024-001", byHeader["Bill ID"])
	// Money columns are fixed to two decimals.
	assert.Equal(t, "45678.50", byHeader["Total"])
	// Plain number columns keep their natural precision.
	assert.Equal(t, "20", byHeader["CF.Bandwidth (Mbps)"])
	assert.Equal(t, "2024-03-15", byHeader["Bill Date"])
	// Unresolved columns are empty, not "nil".
	assert.Equal(t, "", byHeader["GST Identification Number (GSTIN)"])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "march_bills", export.SanitizeFilename("march bills"))
	assert.Equal(t, "q1-2024_export", export.SanitizeFilename("q1-2024 / export!"))
	assert.Equal(t, "a_b", export.SanitizeFilename("__a___b__"))

	long := export.SanitizeFilename(string(bytes.Repeat([]byte("x"), 200)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("March Bills 2024", "csv")
	assert.Regexp(t, `^March_Bills_2024_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
