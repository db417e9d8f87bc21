// Package pipeline sequences the per-document extraction flow: text
// extraction, the AI / template / generic-regex strategy ladder,
// normalization, and result assembly.
package pipeline

import (
	"context"
	"log"
	"time"

	"telextract/internal/domain"
	"telextract/internal/extract"
	"telextract/internal/normalize"
	"telextract/internal/port"
)

// Orchestrator runs the extraction pipeline for one document at a time.
// Each invocation is a pure function of (path, template, useAI) plus the
// injected collaborators, so instances are safe for concurrent use.
type Orchestrator struct {
	text port.TextExtractor
	ai   port.FieldExtractor // nil when no AI credential is configured
}

// New creates an Orchestrator. Pass a nil FieldExtractor when AI extraction
// is unavailable; the pipeline then goes straight to regex strategies.
func New(text port.TextExtractor, ai port.FieldExtractor) *Orchestrator {
	return &Orchestrator{text: text, ai: ai}
}

// ExtractInvoiceData runs the full pipeline for the PDF at path.
//
// Only text extraction failure is fatal: it yields Success=false with the
// elapsed time recorded. Any AI failure is logged and silently degrades to
// template extraction (when a template is supplied) or generic regex;
// Metadata.ExtractionMethod reflects the method that actually produced the
// data and Metadata.AttemptedMethods records every method tried, in order.
func (o *Orchestrator) ExtractInvoiceData(ctx context.Context, path string, tmpl *domain.Template, useAI bool) *domain.ExtractionResult {
	start := time.Now()

	text, err := o.text.Extract(path)
	if err != nil {
		return &domain.ExtractionResult{
			Success: false,
			Error:   err.Error(),
			Metadata: domain.ResultMetadata{
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			},
		}
	}

	var (
		fields    domain.FieldMap
		method    domain.Method
		model     string
		attempted []domain.Method
	)

	if useAI && o.ai != nil {
		attempted = append(attempted, domain.MethodAI)
		out, aiErr := o.ai.Extract(ctx, port.ExtractInput{Text: text.Text, Template: tmpl})
		if aiErr != nil {
			log.Printf("pipeline.Orchestrator: AI extraction failed for %s, falling back to regex: %v", path, aiErr)
		} else {
			fields = out.Fields
			method = domain.MethodAI
			model = out.Model
		}
	}

	if fields == nil {
		if tmpl != nil {
			attempted = append(attempted, domain.MethodTemplate)
			fields = extract.ExtractWithTemplate(text.Text, tmpl)
			method = domain.MethodTemplate
		} else {
			attempted = append(attempted, domain.MethodRegex)
			fields = extract.ExtractGeneric(text.Text)
			method = domain.MethodRegex
		}
	}

	dateKeys, numericKeys := normalizationKeys(tmpl)
	fields = normalize.Apply(fields, dateKeys, numericKeys)

	return &domain.ExtractionResult{
		Success: true,
		Data:    fields,
		Metadata: domain.ResultMetadata{
			Pages:            text.PageCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			ExtractionMethod: method,
			AttemptedMethods: attempted,
			Model:            model,
		},
	}
}

// normalizationKeys merges the pattern library's date/numeric hints with
// any format hints declared on the template's rules.
func normalizationKeys(tmpl *domain.Template) (dates, numerics []string) {
	dates = extract.DateFields()
	numerics = extract.NumericFields()
	if tmpl == nil {
		return dates, numerics
	}
	for name, rule := range tmpl.FieldMappings {
		switch rule.Format {
		case "date":
			dates = append(dates, name)
		case "numeric", "number":
			numerics = append(numerics, name)
		}
	}
	return dates, numerics
}
