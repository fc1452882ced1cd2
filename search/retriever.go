package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage"
)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 5

// Retriever answers similarity queries over a conversation's slice of the
// vector namespace. Results never cross conversation boundaries.
type Retriever struct {
	vectors  storage.VectorRepository
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets the default number of results per retrieval.
// Values below 1 fall back to DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			k = DefaultTopK
		}
		r.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(vectors storage.VectorRepository, provider ai.Provider, opts ...Option) (*Retriever, error) {
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		vectors:  vectors,
		embedder: provider.Embedder(),
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to k chunks of the conversation ranked by similarity
// to the query, highest first. k < 1 uses the configured default. A
// conversation without indexed chunks yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, conversationId core.ID, query string, k int) ([]*core.ChunkMatch, error) {
	if k < 1 {
		k = r.topK
	}

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	matches, err := r.vectors.Search(ctx, conversationId, embedding, k)
	if err != nil {
		r.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved chunks", "conversation", conversationId, "hits", len(matches))
	return matches, nil
}

// ContextText retrieves chunks for the query and joins their texts with
// blank lines, ready for prompt injection. Empty when nothing is indexed.
func (r *Retriever) ContextText(ctx context.Context, conversationId core.ID, query string) (string, error) {
	matches, err := r.Retrieve(ctx, conversationId, query, r.topK)
	if err != nil {
		return "", err
	}
	return joinMatches(matches), nil
}

// ForTopics issues one retrieval per keyword and concatenates the
// resulting texts in keyword order. Used for topic-targeted generation
// such as quiz questions.
func (r *Retriever) ForTopics(ctx context.Context, conversationId core.ID, keywords []string) (string, error) {
	var sections []string
	for _, keyword := range keywords {
		matches, err := r.Retrieve(ctx, conversationId, keyword, r.topK)
		if err != nil {
			return "", err
		}
		if text := joinMatches(matches); text != "" {
			sections = append(sections, text)
		}
	}
	return strings.Join(sections, "\n\n"), nil
}

// joinMatches joins chunk texts with blank lines.
func joinMatches(matches []*core.ChunkMatch) string {
	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.Chunk.Contents)
	}
	return strings.Join(texts, "\n\n")
}
