package storage

import (
	"context"

	"github.com/studium-labs/studium/core"
)

// ConversationRepository provides operations for managing conversations.
// Implementations must be thread-safe and support concurrent access.
type ConversationRepository interface {
	// AddConversation adds a conversation to storage.
	// For a conversation with ID=0, generates a new ID from sequence.
	// Sets InsertedAt if not already set.
	AddConversation(ctx context.Context, conv *core.Conversation) (*core.Conversation, error)

	// GetConversation retrieves a conversation by ID.
	// Returns ErrNotFound if the conversation doesn't exist.
	GetConversation(ctx context.Context, id core.ID) (*core.Conversation, error)

	// ListConversations retrieves all conversations for a user,
	// ordered by insertion time ascending. An empty userId lists everything.
	ListConversations(ctx context.Context, userId string) ([]*core.Conversation, error)

	// SetBookmarked toggles the bookmark flag on a conversation.
	// Returns ErrNotFound if the conversation doesn't exist.
	SetBookmarked(ctx context.Context, id core.ID, bookmarked bool) error

	// DeleteConversation removes a conversation by ID.
	// Returns ErrNotFound if the conversation doesn't exist.
	DeleteConversation(ctx context.Context, id core.ID) error

	// Close releases resources held by the repository.
	Close() error
}

// DocumentRepository provides operations for managing uploaded documents.
type DocumentRepository interface {
	// AddDocument adds a document to storage.
	// For a document with ID=0, generates a new ID from sequence.
	// Sets InsertedAt timestamp if not already set.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentsByConversation retrieves all documents owned by a conversation.
	GetDocumentsByConversation(ctx context.Context, conversationId core.ID) ([]*core.Document, error)

	// FindSyllabus retrieves the syllabus-role document of a conversation.
	// Returns ErrNotFound if the conversation has no syllabus.
	FindSyllabus(ctx context.Context, conversationId core.ID) (*core.Document, error)

	// MarkProcessed transitions a document to processed status, storing the
	// given full text (empty for notes documents) and stamping ProcessedAt.
	// Returns ErrNotFound if the document doesn't exist.
	MarkProcessed(ctx context.Context, id core.ID, content string) (*core.Document, error)

	// DeleteDocument removes a document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	// Vector namespace entries are NOT removed here; see VectorRepository.
	DeleteDocument(ctx context.Context, id core.ID) error

	// Close releases resources held by the repository.
	Close() error
}

// TurnRepository provides operations for managing conversation turns.
type TurnRepository interface {
	// AddTurns adds one or more turns to storage.
	// For turns with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	AddTurns(ctx context.Context, turns ...*core.Turn) ([]*core.Turn, error)

	// GetTurnsByConversation retrieves all turns of a conversation,
	// ordered by timestamp ascending. That order is the chat history.
	GetTurnsByConversation(ctx context.Context, conversationId core.ID) ([]*core.Turn, error)

	// DeleteTurnsByConversation removes all turns of a conversation.
	DeleteTurnsByConversation(ctx context.Context, conversationId core.ID) error

	// Close releases resources held by the repository.
	Close() error
}

// VectorRepository is the vector namespace: an append-only store of
// embedded chunks, partitioned by conversation identity.
type VectorRepository interface {
	// AddChunks appends embedded chunks to the namespace.
	// Chunks are immutable once added.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) error

	// Search returns up to limit chunks belonging to the conversation,
	// ranked by similarity to the query vector (highest first).
	// Returns an empty slice when the conversation has no indexed chunks.
	Search(ctx context.Context, conversationId core.ID, vector []float32, limit int) ([]*core.ChunkMatch, error)

	// DeleteByDocument removes all chunks of a document from the namespace.
	// Used to cascade document deletion into the vector namespace.
	DeleteByDocument(ctx context.Context, conversationId, documentId core.ID) error

	// Close releases resources held by the repository.
	Close() error
}
