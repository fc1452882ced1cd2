package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage"
)

// DefaultBatchSize is the number of chunks embedded per indexing batch.
const DefaultBatchSize = 10

// Indexer embeds chunk texts and appends them to the vector namespace,
// tagged with the owning conversation and document.
//
// Submission is batched so a very large document does not block progress
// reporting for unbounded time. A failed embedding call aborts the
// remaining batches.
type Indexer struct {
	vectors   storage.VectorRepository
	embedder  ai.Embedder
	batchSize int
	logger    *slog.Logger
}

// NewIndexer creates an Indexer. A batchSize < 1 falls back to the default.
func NewIndexer(vectors storage.VectorRepository, embedder ai.Embedder, batchSize int) (*Indexer, error) {
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Indexer{
		vectors:   vectors,
		embedder:  embedder,
		batchSize: batchSize,
		logger:    slog.Default().With("component", "indexer"),
	}, nil
}

// BatchSize returns the configured batch size.
func (ix *Indexer) BatchSize() int {
	return ix.batchSize
}

// Index embeds texts in batches and appends the resulting chunks to the
// vector namespace. After each batch, onBatch is invoked with the number
// of texts submitted so far and the total. onBatch may be nil.
func (ix *Indexer) Index(ctx context.Context, conversationId, documentId core.ID, texts []string, onBatch func(submitted, total int)) error {
	total := len(texts)
	if total == 0 {
		return nil
	}

	ix.logger.Debug("indexing chunks", "conversation", conversationId, "document", documentId, "chunks", total)

	for start := 0; start < total; start += ix.batchSize {
		end := start + ix.batchSize
		if end > total {
			end = total
		}
		batch := texts[start:end]

		vectors, err := ix.embedder.EmbedTexts(ctx, batch)
		if err != nil {
			ix.logger.Error("embedding batch failed", "document", documentId, "batch_start", start, "err", err)
			return fmt.Errorf("embedding batch: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(vectors))
		}

		chunks := make([]*core.Chunk, len(batch))
		for i, text := range batch {
			// Salt the content ID with document and position so repeated
			// chunk texts stay distinct.
			seq := start + i
			chunks[i] = &core.Chunk{
				Id:             core.IDFromContent(fmt.Sprintf("%d:%d:%s", documentId, seq, text)),
				ConversationId: conversationId,
				DocumentId:     documentId,
				Seq:            seq,
				Contents:       text,
				Vector:         vectors[i],
			}
		}

		if err := ix.vectors.AddChunks(ctx, chunks...); err != nil {
			ix.logger.Error("appending chunks failed", "document", documentId, "batch_start", start, "err", err)
			return fmt.Errorf("appending chunks: %w", err)
		}

		if onBatch != nil {
			onBatch(end, total)
		}
	}

	return nil
}
