package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"telextract/internal/domain"
)

// BatchConfig holds settings for the batch runner.
type BatchConfig struct {
	Concurrency int
	Timeout     time.Duration // per-document budget; bounds the AI call
	UseAI       bool
}

// Document is one unit of batch work.
type Document struct {
	Path     string
	Template *domain.Template
}

// BatchItem pairs a document with its extraction result.
type BatchItem struct {
	ID     uuid.UUID                `json:"id"`
	Path   string                   `json:"path"`
	Result *domain.ExtractionResult `json:"result"`
}

// BatchRunner fans a set of documents out over a bounded pool of workers.
// Document extractions share no mutable state, so the only coordination
// needed is the semaphore.
type BatchRunner struct {
	orch *Orchestrator
	cfg  BatchConfig
}

// NewBatchRunner creates a BatchRunner.
func NewBatchRunner(orch *Orchestrator, cfg BatchConfig) *BatchRunner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &BatchRunner{orch: orch, cfg: cfg}
}

// Run processes every document and returns results in input order. Each
// document gets its own timeout context so one slow AI call cannot stall
// the batch; on timeout the orchestrator's fallback path still produces a
// regex-based result.
func (r *BatchRunner) Run(ctx context.Context, docs []Document) []BatchItem {
	items := make([]BatchItem, len(docs))
	sem := make(chan struct{}, r.cfg.Concurrency)
	var wg sync.WaitGroup

	log.Printf("pipeline.BatchRunner: processing %d documents (concurrency=%d, useAI=%t)",
		len(docs), r.cfg.Concurrency, r.cfg.UseAI)

	for i := range docs {
		doc := docs[i]
		idx := i

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			docCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
			defer cancel()

			items[idx] = BatchItem{
				ID:     uuid.New(),
				Path:   doc.Path,
				Result: r.orch.ExtractInvoiceData(docCtx, doc.Path, doc.Template, r.cfg.UseAI),
			}
		}()
	}

	wg.Wait()
	return items
}
