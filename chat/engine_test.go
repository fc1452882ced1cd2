package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studium-labs/studium/ai"
	"github.com/studium-labs/studium/ai/mock"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/search"
	"github.com/studium-labs/studium/storage/badger"
)

func setupEngine(t *testing.T, embedder *mock.MockEmbedder, generator *mock.MockGenerator) (*Engine, *badger.Stores) {
	t.Helper()

	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	provider := mock.NewMockProviderWithServices(embedder, generator)

	retriever, err := search.NewRetriever(stores.Vectors, provider)
	require.NoError(t, err)

	engine, err := NewEngine(stores.Documents, stores.Turns, retriever, provider)
	require.NoError(t, err)

	return engine, stores
}

func TestAnswerPersistsTurnsAfterStream(t *testing.T) {
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), mock.NewMockGenerator())
	ctx := context.Background()

	var streamed strings.Builder
	botTurn, err := engine.Answer(ctx, 1, "explain recursion", func(ctx context.Context, chunk []byte) error {
		streamed.Write(chunk)
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, botTurn)

	assert.NotEmpty(t, streamed.String())
	assert.Equal(t, strings.TrimSpace(streamed.String()), botTurn.Contents)
	assert.Equal(t, core.SpeakerAI, botTurn.Speaker)

	turns, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, core.SpeakerHuman, turns[0].Speaker)
	assert.Equal(t, "explain recursion", turns[0].Contents)
	assert.Equal(t, core.SpeakerAI, turns[1].Speaker)
	assert.True(t, turns[0].Timestamp.Before(turns[1].Timestamp),
		"user turn must be strictly earlier than bot turn")
}

func TestAnswerFailurePersistsNothing(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.StreamContentFunc = func(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error) {
		return "", errors.New("model unavailable")
	}
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), generator)
	ctx := context.Background()

	_, err := engine.Answer(ctx, 1, "explain recursion", nil)
	require.Error(t, err)

	turns, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAnswerChunkAbortPersistsNothing(t *testing.T) {
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), mock.NewMockGenerator())
	ctx := context.Background()

	_, err := engine.Answer(ctx, 1, "explain recursion", func(ctx context.Context, chunk []byte) error {
		return errors.New("client disconnected")
	})
	require.Error(t, err)

	turns, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAnswerEmptyMessage(t *testing.T) {
	engine, _ := setupEngine(t, mock.NewMockEmbedder(), mock.NewMockGenerator())

	_, err := engine.Answer(context.Background(), 1, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAnswerRequestAssembly(t *testing.T) {
	var captured *ai.GenerateRequest
	generator := mock.NewMockGenerator()
	generator.StreamContentFunc = func(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error) {
		captured = req
		return "an answer", nil
	}
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), generator)
	ctx := context.Background()

	// Prior history
	now := time.Now().UTC().Add(-time.Minute)
	_, err := stores.Turns.AddTurns(ctx,
		&core.Turn{ConversationId: 1, Speaker: core.SpeakerHuman, Contents: "earlier question", Timestamp: now},
		&core.Turn{ConversationId: 1, Speaker: core.SpeakerAI, Contents: "earlier answer", Timestamp: now.Add(time.Second)},
	)
	require.NoError(t, err)

	// Processed syllabus
	doc, err := stores.Documents.AddDocument(ctx, &core.Document{
		ConversationId: 1, Name: "syllabus.txt", Role: core.RoleSyllabus, Status: core.StatusPending,
	})
	require.NoError(t, err)
	_, err = stores.Documents.MarkProcessed(ctx, doc.Id, "Unit 1: Recursion")
	require.NoError(t, err)

	// Indexed chunk for context
	require.NoError(t, stores.Vectors.AddChunks(ctx, &core.Chunk{
		Id: core.IDFromContent("recursion basics"), ConversationId: 1, DocumentId: 2,
		Contents: "recursion basics", Vector: []float32{1, 0},
	}))

	_, err = engine.Answer(ctx, 1, "explain recursion", nil)
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Contains(t, captured.System, "<syllabus>Unit 1: Recursion</syllabus>")
	assert.Contains(t, captured.System, "recursion basics")
	assert.Equal(t, "explain recursion", captured.Message)

	require.Len(t, captured.History, 2)
	assert.Equal(t, ai.RoleUser, captured.History[0].Role)
	assert.Equal(t, "earlier question", captured.History[0].Content)
	assert.Equal(t, ai.RoleAssistant, captured.History[1].Role)
}

func TestAnswerPendingSyllabusNotInjected(t *testing.T) {
	var captured *ai.GenerateRequest
	generator := mock.NewMockGenerator()
	generator.StreamContentFunc = func(ctx context.Context, req *ai.GenerateRequest, onChunk func(ctx context.Context, chunk []byte) error) (string, error) {
		captured = req
		return "an answer", nil
	}
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), generator)
	ctx := context.Background()

	_, err := stores.Documents.AddDocument(ctx, &core.Document{
		ConversationId: 1, Name: "syllabus.txt", Role: core.RoleSyllabus, Status: core.StatusPending,
	})
	require.NoError(t, err)

	_, err = engine.Answer(ctx, 1, "hello", nil)
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Contains(t, captured.System, "<syllabus></syllabus>")
}

func TestGenerateQuiz(t *testing.T) {
	var captured *ai.GenerateRequest
	generator := mock.NewMockGenerator()
	generator.GenerateContentFunc = func(ctx context.Context, req *ai.GenerateRequest) (string, error) {
		captured = req
		return `[{"id":1}]`, nil
	}
	engine, stores := setupEngine(t, mock.NewMockEmbedder(), generator)
	ctx := context.Background()

	require.NoError(t, stores.Vectors.AddChunks(ctx, &core.Chunk{
		Id: core.IDFromContent("paging notes"), ConversationId: 1, DocumentId: 2,
		Contents: "paging notes", Vector: []float32{1, 0},
	}))

	out, err := engine.GenerateQuiz(ctx, 1, []string{"paging"})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, out)

	require.NotNil(t, captured)
	assert.Contains(t, captured.System, "multiple-choice")
	assert.Contains(t, captured.System, "paging notes")

	// Quiz generation never persists turns
	turns, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestGenerateQuizNoKeywords(t *testing.T) {
	engine, _ := setupEngine(t, mock.NewMockEmbedder(), mock.NewMockGenerator())

	_, err := engine.GenerateQuiz(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNoKeywords)
}
