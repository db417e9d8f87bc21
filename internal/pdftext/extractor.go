package pdftext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"telextract/internal/domain"
)

// Extractor reads the text layer of PDF files using ledongthuc/pdf, which
// decodes font-encoded glyphs into valid UTF-8. It implements
// port.TextExtractor.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract opens the PDF at path and returns its text layer and page count.
// A corrupt or unreadable file yields a *domain.TextExtractionError. A valid
// PDF with no extractable text (scanned images without an OCR layer) yields
// an empty Text and no error; downstream stages treat empty text as "all
// fields null".
func (e *Extractor) Extract(path string) (result *domain.ExtractedText, err error) {
	// The underlying library panics on some malformed content streams.
	// Convert those into the same fatal error as an unreadable file.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &domain.TextExtractionError{Path: path, Err: fmt.Errorf("panic in PDF reader: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &domain.TextExtractionError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	pages := r.NumPage()

	reader, err := r.GetPlainText()
	if err != nil {
		// The document structure is readable but the text layer is not
		// decodable. Treat as a scanned document: empty but valid.
		return &domain.ExtractedText{Text: "", PageCount: pages, Metadata: map[string]string{}}, nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, &domain.TextExtractionError{Path: path, Err: fmt.Errorf("reading text stream: %w", err)}
	}

	return &domain.ExtractedText{
		Text:      sanitizeUTF8(buf.String()),
		PageCount: pages,
		Metadata:  map[string]string{},
	}, nil
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement rune
// so downstream regex and JSON handling never fail.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteRune(r)
	}
	return sb.String()
}
