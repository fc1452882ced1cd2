package chat

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrTurnRepositoryRequired is returned when a turn repository is not provided.
	ErrTurnRepositoryRequired = errors.New("turn repository required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyMessage is returned when a chat message is blank.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrNoKeywords is returned when quiz generation is requested without keywords.
	ErrNoKeywords = errors.New("at least one keyword required")
)
