package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrVectorRepositoryRequired is returned when a vector repository is not provided.
	ErrVectorRepositoryRequired = errors.New("vector repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrJobTrackerRequired is returned when a job tracker is not provided.
	ErrJobTrackerRequired = errors.New("job tracker required")

	// ErrJobExists is returned when registering a job ID that is already tracked.
	ErrJobExists = errors.New("job already registered")

	// ErrInvalidChunking is returned for a chunk size/overlap combination
	// that cannot produce a valid overlapping split.
	ErrInvalidChunking = errors.New("chunk overlap must be non-negative and smaller than chunk size")
)
