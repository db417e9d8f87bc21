package port

import (
	"context"

	"telextract/internal/domain"
)

// ExtractInput carries the data needed for an LLM field extraction call.
type ExtractInput struct {
	Text     string
	Template *domain.Template // optional; enumerates extra fields to ask for
}

// ExtractOutput contains the flat field map returned by an LLM extractor.
type ExtractOutput struct {
	Fields domain.FieldMap
	Model  string
}

// FieldExtractor abstracts LLM-based invoice field extraction.
type FieldExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
