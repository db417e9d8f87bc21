// Command extract pulls structured invoice fields out of telecom PDF bills
// and writes them as XLSX, CSV, or JSON.
// Usage: go run ./cmd/extract -in ./bills -out ./output -format xlsx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"telextract/internal/config"
	"telextract/internal/domain"
	"telextract/internal/export"
	"telextract/internal/extract"
	_ "telextract/internal/extract/openai"
	"telextract/internal/pdftext"
	"telextract/internal/pipeline"
	"telextract/internal/port"
	"telextract/internal/template"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		in           = flag.String("in", "", "input PDF file or directory (required)")
		out          = flag.String("out", "output", "output directory")
		templatePath = flag.String("template", "", "path to a template JSON file")
		format       = flag.String("format", "xlsx", "output format: xlsx, csv, json, or all")
		batchName    = flag.String("name", "invoices", "batch name used in output filenames")
		noAI         = flag.Bool("no-ai", false, "skip AI extraction and use regex only")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return fmt.Errorf("missing required -in flag")
	}
	if !validFormat(*format) {
		return fmt.Errorf("unknown format %q (want xlsx, csv, json, or all)", *format)
	}

	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	docs, err := collectDocuments(*in, *templatePath)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no PDF files found under %s", *in)
	}

	useAI := cfg.Extract.UseAI && !*noAI
	var ai port.FieldExtractor
	if useAI {
		if cfg.AI.APIKey == "" {
			log.Printf("main: no API key configured, falling back to regex-only extraction")
			useAI = false
		} else {
			ai, err = extract.NewFieldExtractor(&cfg.AI)
			if err != nil {
				return fmt.Errorf("creating AI extractor: %w", err)
			}
		}
	}

	orch := pipeline.New(pdftext.NewExtractor(), ai)
	runner := pipeline.NewBatchRunner(orch, pipeline.BatchConfig{
		Concurrency: cfg.Extract.Concurrency,
		Timeout:     cfg.Extract.Timeout(),
		UseAI:       useAI,
	})

	items := runner.Run(context.Background(), docs)

	succeeded := 0
	for _, item := range items {
		if item.Result.Success {
			succeeded++
		} else {
			log.Printf("main: extraction failed for %s: %s", item.Path, item.Result.Error)
		}
	}
	log.Printf("main: processed %d documents (%d succeeded, %d failed)",
		len(items), succeeded, len(items)-succeeded)

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := writeOutputs(*out, *batchName, *format, items); err != nil {
		return err
	}
	return nil
}

func validFormat(format string) bool {
	switch format {
	case "xlsx", "csv", "json", "all":
		return true
	}
	return false
}

// collectDocuments resolves the input path to a list of batch documents.
// A directory is walked recursively for .pdf files; a single file is taken
// as-is regardless of extension.
func collectDocuments(in, templatePath string) ([]pipeline.Document, error) {
	var tmpl *domain.Template
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		tmpl, err = template.Import(data)
		if err != nil {
			return nil, err
		}
		log.Printf("main: using template %q with %d field mappings", tmpl.Name, len(tmpl.FieldMappings))
	}

	info, err := os.Stat(in)
	if err != nil {
		return nil, fmt.Errorf("reading input path: %w", err)
	}
	if !info.IsDir() {
		return []pipeline.Document{{Path: in, Template: tmpl}}, nil
	}

	var docs []pipeline.Document
	err = filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		docs = append(docs, pipeline.Document{Path: path, Template: tmpl})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking input directory: %w", err)
	}
	return docs, nil
}

func writeOutputs(outDir, batchName, format string, items []pipeline.BatchItem) error {
	var rows []domain.FieldMap
	for _, item := range items {
		if !item.Result.Success {
			continue
		}
		rows = append(rows, export.MapToRow(item.Result.Data, filepath.Base(item.Path)))
	}

	if format == "xlsx" || format == "all" {
		data, err := export.BuildWorkbook(rows)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		path := filepath.Join(outDir, export.BuildFilename(batchName, "xlsx"))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("main: wrote %s (%d rows)", path, len(rows))
	}

	if format == "csv" || format == "all" {
		path := filepath.Join(outDir, export.BuildFilename(batchName, "csv"))
		if err := writeCSV(path, rows); err != nil {
			return err
		}
		log.Printf("main: wrote %s (%d rows)", path, len(rows))
	}

	if format == "json" || format == "all" {
		path := filepath.Join(outDir, export.BuildFilename(batchName, "json"))
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling results: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("main: wrote %s (%d results)", path, len(items))
	}

	return nil
}

func writeCSV(path string, rows []domain.FieldMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err = f.Write(export.BOM); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w := export.NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteRows(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
