package domain

import "fmt"

// TextExtractionError indicates the PDF text layer could not be read at
// all (corrupt file, unsupported encoding, zero-byte file). It is the only
// error fatal to a document's pipeline.
type TextExtractionError struct {
	Path string
	Err  error
}

func (e *TextExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *TextExtractionError) Unwrap() error {
	return e.Err
}

// AIServiceError indicates a failure calling the language-model service:
// network error, non-2xx status, malformed JSON, or missing credentials.
// The orchestrator recovers from it by falling back to regex extraction.
type AIServiceError struct {
	Provider string
	Err      error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Provider, e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// PatternError indicates a single malformed template rule. It is isolated
// to that field and never aborts extraction of the other fields.
type PatternError struct {
	Field string
	Err   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern for field %q: %v", e.Field, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
