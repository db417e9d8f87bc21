package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"telextract/internal/domain"
)

// BOM is the UTF-8 byte-order mark, written ahead of CSV output for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes schema-mapped rows as CSV using the export column
// contract.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row with the contract's header texts.
func (w *CSVWriter) WriteHeader() error {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	return w.csv.Write(headers)
}

// WriteRows converts schema-mapped rows (from MapToRow) to CSV records and
// writes them.
func (w *CSVWriter) WriteRows(rows []domain.FieldMap) error {
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col.Key], col.Type)
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func formatValue(v any, colType domain.ColumnType) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if colType == domain.ColumnMoney {
			return strconv.FormatFloat(val, 'f', 2, 64)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(val)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a batch name for use in an output filename.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, date-stamped output filename.
// Format: {sanitized_batch_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(batchName, ext string) string {
	sanitized := SanitizeFilename(batchName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
