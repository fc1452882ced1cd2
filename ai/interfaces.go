package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Role identifies the author of a prompt turn.
type Role int

const (
	// RoleUser marks a turn authored by the human.
	RoleUser Role = iota + 1
	// RoleAssistant marks a turn authored by the model.
	RoleAssistant
)

// PromptTurn is one prior exchange carried into a generation request.
type PromptTurn struct {
	Role    Role
	Content string
}

// GenerateRequest carries everything the model needs to produce a reply:
// a system prompt, the prior conversation history, and the new message.
type GenerateRequest struct {
	// System is the system prompt. Empty means no system message is sent.
	System string

	// History holds prior turns in chronological order.
	History []PromptTurn

	// Message is the new user message to answer.
	Message string
}

// Generator produces chat completions.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateContent produces a complete reply for the request.
	GenerateContent(ctx context.Context, req *GenerateRequest) (string, error)

	// StreamContent produces a reply incrementally, invoking onChunk for
	// each fragment as it arrives. The full accumulated reply is returned
	// once the stream ends. If onChunk returns an error the stream is
	// aborted and that error is returned; no further chunks are delivered.
	StreamContent(ctx context.Context, req *GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the chat completion service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
