package port

import "telextract/internal/domain"

// TextExtractor abstracts pulling the raw text layer out of a PDF file.
type TextExtractor interface {
	Extract(path string) (*domain.ExtractedText, error)
}
