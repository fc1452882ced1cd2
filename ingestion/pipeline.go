package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/extract"
	"github.com/studium-labs/studium/storage"
)

// Pipeline orchestrates document ingestion: persist the upload record,
// register a trackable job, then asynchronously extract, chunk, embed,
// and index the file on a bounded worker pool.
//
// Syllabus documents are never chunked or embedded; their full text is
// stored verbatim on the document for prompt injection. Notes documents
// are chunked and indexed batch by batch, with progress reported to the
// job tracker after every batch.
type Pipeline struct {
	documents storage.DocumentRepository
	indexer   *Indexer
	jobs      *JobTracker
	chunker   Chunker
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithChunker sets a custom chunker.
// Default splits into 1000-character chunks with 200-character overlap.
func WithChunker(chunker Chunker) Option {
	return func(p *Pipeline) error {
		if chunker.Size <= 0 || chunker.Overlap < 0 || chunker.Overlap >= chunker.Size {
			return ErrInvalidChunking
		}
		p.chunker = chunker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	vectors storage.VectorRepository,
	provider ai.Provider,
	jobs *JobTracker,
	batchSize int,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if jobs == nil {
		return nil, ErrJobTrackerRequired
	}

	indexer, err := NewIndexer(vectors, provider.Embedder(), batchSize)
	if err != nil {
		return nil, err
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		indexer:   indexer,
		jobs:      jobs,
		chunker:   DefaultChunker(),
		pool:      pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Jobs returns the job tracker used by this pipeline.
func (p *Pipeline) Jobs() *JobTracker {
	return p.jobs
}

// Ingest accepts an uploaded file: it persists a pending document,
// registers an ingestion job keyed by the document ID, and schedules the
// processing work on the pool. It returns the document ID immediately;
// callers poll the job tracker for completion.
//
// The uploaded file at filePath is removed once processing finishes,
// on success and failure alike.
func (p *Pipeline) Ingest(ctx context.Context, conversationId core.ID, userId, filePath, name string, role core.DocumentRole) (core.ID, error) {
	if err := core.ValidateDocumentRole(role); err != nil {
		return 0, err
	}

	doc, err := p.documents.AddDocument(ctx, &core.Document{
		ConversationId: conversationId,
		Name:           name,
		Role:           role,
		Status:         core.StatusPending,
	})
	if err != nil {
		return 0, err
	}

	if err := p.jobs.Register(doc.Id, userId); err != nil {
		return 0, err
	}

	jobId := doc.Id
	submitErr := p.pool.Submit(func() {
		// Detached from the upload request; errors are reported through
		// the job tracker, not a caller.
		if err := p.process(context.Background(), doc, filePath); err != nil {
			p.logger.Error("ingestion failed", "document", doc.Id, "err", err)
			p.jobs.Fail(jobId, err)
		}
	})
	if submitErr != nil {
		p.jobs.Fail(jobId, submitErr)
		return 0, submitErr
	}

	return doc.Id, nil
}

// process runs one ingestion job to completion. The document's status
// stays pending in durable storage when processing fails.
func (p *Pipeline) process(ctx context.Context, doc *core.Document, filePath string) error {
	defer func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			p.logger.Warn("failed to remove uploaded file", "path", filePath, "err", err)
		}
	}()

	pages, err := extract.Pages(ctx, filePath)
	if err != nil {
		return fmt.Errorf("extracting pages: %w", err)
	}
	content := strings.Join(pages, "\n")

	if doc.Role == core.RoleSyllabus {
		return p.processSyllabus(ctx, doc, content)
	}
	return p.processNotes(ctx, doc, content)
}

// processSyllabus stores the full extracted text verbatim and completes
// the job without touching the indexer. Progress jumps straight to 100.
func (p *Pipeline) processSyllabus(ctx context.Context, doc *core.Document, content string) error {
	if _, err := p.documents.MarkProcessed(ctx, doc.Id, content); err != nil {
		return fmt.Errorf("marking syllabus processed: %w", err)
	}
	p.jobs.Complete(doc.Id)
	p.logger.Info("syllabus ingested", "document", doc.Id, "chars", len(content))
	return nil
}

// processNotes chunks and indexes the text, advancing job progress after
// every embedded batch. Progress reaches 100 only at completion.
func (p *Pipeline) processNotes(ctx context.Context, doc *core.Document, content string) error {
	chunks, err := p.chunker.SplitText(content)
	if err != nil {
		return fmt.Errorf("chunking: %w", err)
	}

	if len(chunks) > 0 {
		err = p.indexer.Index(ctx, doc.ConversationId, doc.Id, chunks, func(submitted, total int) {
			progress := submitted * 100 / total
			if submitted < total && progress == 100 {
				progress = 99
			}
			p.jobs.Advance(doc.Id, progress)
		})
		if err != nil {
			return err
		}
	}

	if _, err := p.documents.MarkProcessed(ctx, doc.Id, ""); err != nil {
		return fmt.Errorf("marking notes processed: %w", err)
	}
	p.jobs.Complete(doc.Id)
	p.logger.Info("notes ingested", "document", doc.Id, "chunks", len(chunks))
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
