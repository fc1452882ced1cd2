// Copyright 2026 Studium Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package studium

import (
	"context"
	"log/slog"
	"time"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/ai/openai"
	"github.com/studium-labs/studium/chat"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/ingestion"
	"github.com/studium-labs/studium/search"
	"github.com/studium-labs/studium/storage"
	"github.com/studium-labs/studium/storage/badger"
	"github.com/studium-labs/studium/storage/postgres"
)

// greeting is the bot turn seeded into every new conversation.
const greeting = "Hello! How can I help you today?"

// Backend wires storage, AI services, ingestion, retrieval, and chat
// into one unit serving the operations an HTTP layer would expose.
type Backend struct {
	stores    *badger.Stores
	vectors   storage.VectorRepository
	provider  ai.Provider
	jobs      *ingestion.JobTracker
	pipeline  *ingestion.Pipeline
	retriever *search.Retriever
	engine    *chat.Engine
	logger    *slog.Logger
}

// BackendOption configures a Backend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	aiConfig    *ai.Config
	provider    ai.Provider
	poolSize    int
	batchSize   int
	postgresDSN string
}

// WithAIConfig sets the AI service configuration used to build the
// default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) BackendOption {
	return func(o *backendOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider, bypassing the
// OpenAI-compatible default. Used for testing.
func WithAIProvider(provider ai.Provider) BackendOption {
	return func(o *backendOptions) {
		o.provider = provider
	}
}

// WithPoolSize sets the ingestion worker pool size.
func WithPoolSize(size int) BackendOption {
	return func(o *backendOptions) {
		o.poolSize = size
	}
}

// WithBatchSize sets the indexing batch size.
func WithBatchSize(size int) BackendOption {
	return func(o *backendOptions) {
		o.batchSize = size
	}
}

// WithPostgresVectors stores chunks in PostgreSQL/pgvector at dsn
// instead of the embedded BadgerDB vector store.
func WithPostgresVectors(dsn string) BackendOption {
	return func(o *backendOptions) {
		o.postgresDSN = dsn
	}
}

// New opens a backend rooted at filePath.
func New(filePath string, opts ...BackendOption) (*Backend, error) {
	options := &backendOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stores, err := badger.OpenStores(filePath)
	if err != nil {
		return nil, err
	}

	var vectors storage.VectorRepository = stores.Vectors
	if options.postgresDSN != "" {
		pgVectors, err := postgres.NewVectorRepository(options.postgresDSN)
		if err != nil {
			stores.Close()
			return nil, err
		}
		vectors = pgVectors
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			vectors.Close()
			stores.Close()
			return nil, err
		}
	}

	jobs := ingestion.NewJobTracker()

	var pipelineOpts []ingestion.Option
	if options.poolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(options.poolSize))
	}
	pipeline, err := ingestion.NewPipeline(stores.Documents, vectors, provider, jobs, options.batchSize, pipelineOpts...)
	if err != nil {
		provider.Close()
		vectors.Close()
		stores.Close()
		return nil, err
	}

	retriever, err := search.NewRetriever(vectors, provider)
	if err != nil {
		pipeline.Release()
		provider.Close()
		vectors.Close()
		stores.Close()
		return nil, err
	}

	engine, err := chat.NewEngine(stores.Documents, stores.Turns, retriever, provider)
	if err != nil {
		pipeline.Release()
		provider.Close()
		vectors.Close()
		stores.Close()
		return nil, err
	}

	return &Backend{
		stores:    stores,
		vectors:   vectors,
		provider:  provider,
		jobs:      jobs,
		pipeline:  pipeline,
		retriever: retriever,
		engine:    engine,
		logger:    slog.Default(),
	}, nil
}

// NewConversation creates a conversation for the user and seeds it with
// the bot greeting turn.
func (b *Backend) NewConversation(ctx context.Context, userId, title string) (*core.Conversation, error) {
	conv, err := b.stores.Conversations.AddConversation(ctx, &core.Conversation{
		UserId: userId,
		Title:  title,
	})
	if err != nil {
		return nil, err
	}

	_, err = b.stores.Turns.AddTurns(ctx, &core.Turn{
		ConversationId: conv.Id,
		Speaker:        core.SpeakerAI,
		Contents:       greeting,
		Timestamp:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// Conversations lists the user's conversations in insertion order.
func (b *Backend) Conversations(ctx context.Context, userId string) ([]*core.Conversation, error) {
	return b.stores.Conversations.ListConversations(ctx, userId)
}

// SetBookmarked toggles a conversation's bookmark flag.
func (b *Backend) SetBookmarked(ctx context.Context, id core.ID, bookmarked bool) error {
	return b.stores.Conversations.SetBookmarked(ctx, id, bookmarked)
}

// Turns returns a conversation's turns in timestamp order.
func (b *Backend) Turns(ctx context.Context, conversationId core.ID) ([]*core.Turn, error) {
	return b.stores.Turns.GetTurnsByConversation(ctx, conversationId)
}

// Documents returns a conversation's documents.
func (b *Backend) Documents(ctx context.Context, conversationId core.ID) ([]*core.Document, error) {
	return b.stores.Documents.GetDocumentsByConversation(ctx, conversationId)
}

// BeginIngestion accepts an uploaded file for the conversation and
// returns the ingestion job ID (also the document ID). The file at
// filePath is consumed: it is removed when processing ends.
func (b *Backend) BeginIngestion(ctx context.Context, conversationId core.ID, userId, filePath, name string, role core.DocumentRole) (core.ID, error) {
	if _, err := b.stores.Conversations.GetConversation(ctx, conversationId); err != nil {
		return 0, err
	}
	return b.pipeline.Ingest(ctx, conversationId, userId, filePath, name, role)
}

// PollIngestion reports an ingestion job's current progress and state.
func (b *Backend) PollIngestion(jobId core.ID) (ingestion.JobSnapshot, bool) {
	return b.jobs.Snapshot(jobId)
}

// SweepJobs evicts ingestion jobs idle longer than ttl.
func (b *Backend) SweepJobs(ttl time.Duration) int {
	return b.jobs.Sweep(ttl)
}

// AnswerTurn streams the model's answer to message in the conversation,
// forwarding increments to onChunk, and persists both turns after the
// stream completes.
func (b *Backend) AnswerTurn(ctx context.Context, conversationId core.ID, message string, onChunk func(ctx context.Context, chunk []byte) error) (*core.Turn, error) {
	if _, err := b.stores.Conversations.GetConversation(ctx, conversationId); err != nil {
		return nil, err
	}
	return b.engine.Answer(ctx, conversationId, message, onChunk)
}

// RetrieveForTopics returns retrieval context for each keyword,
// concatenated in keyword order.
func (b *Backend) RetrieveForTopics(ctx context.Context, conversationId core.ID, keywords []string) (string, error) {
	return b.retriever.ForTopics(ctx, conversationId, keywords)
}

// GenerateQuiz produces multiple-choice questions grounded in the
// conversation's indexed chunks for the given keywords.
func (b *Backend) GenerateQuiz(ctx context.Context, conversationId core.ID, keywords []string) (string, error) {
	return b.engine.GenerateQuiz(ctx, conversationId, keywords)
}

// DeleteDocument removes a document and cascades the deletion into the
// vector namespace, dropping its indexed chunks.
func (b *Backend) DeleteDocument(ctx context.Context, documentId core.ID) error {
	doc, err := b.stores.Documents.GetDocument(ctx, documentId)
	if err != nil {
		return err
	}
	if err := b.stores.Documents.DeleteDocument(ctx, documentId); err != nil {
		return err
	}
	return b.vectors.DeleteByDocument(ctx, doc.ConversationId, documentId)
}

// DeleteConversation removes a conversation along with its turns,
// documents, and indexed chunks.
func (b *Backend) DeleteConversation(ctx context.Context, conversationId core.ID) error {
	docs, err := b.stores.Documents.GetDocumentsByConversation(ctx, conversationId)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := b.stores.Documents.DeleteDocument(ctx, doc.Id); err != nil {
			return err
		}
		if err := b.vectors.DeleteByDocument(ctx, conversationId, doc.Id); err != nil {
			return err
		}
	}
	if err := b.stores.Turns.DeleteTurnsByConversation(ctx, conversationId); err != nil {
		return err
	}
	return b.stores.Conversations.DeleteConversation(ctx, conversationId)
}

// Close releases the pipeline, AI provider, and storage.
func (b *Backend) Close() error {
	b.pipeline.Release()

	if err := b.provider.Close(); err != nil {
		b.logger.Error("error closing AI provider", "err", err)
	}

	if b.vectors != b.stores.Vectors {
		if err := b.vectors.Close(); err != nil {
			b.logger.Error("error closing vector repository", "err", err)
		}
	}

	if err := b.stores.Close(); err != nil {
		b.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}
