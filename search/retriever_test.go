package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studium-labs/studium/ai/mock"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage/badger"
)

// axisEmbedder maps known texts to fixed axis-aligned vectors so tests can
// control similarity exactly.
func axisEmbedder(mapping map[string][]float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if v, ok := mapping[text]; ok {
			return v, nil
		}
		return []float32{0, 0, 0}, nil
	}
	return embedder
}

func addChunk(t *testing.T, stores *badger.Stores, convID, docID core.ID, seq int, contents string, vector []float32) {
	t.Helper()
	err := stores.Vectors.AddChunks(context.Background(), &core.Chunk{
		Id:             core.IDFromContent(contents),
		ConversationId: convID,
		DocumentId:     docID,
		Seq:            seq,
		Contents:       contents,
		Vector:         vector,
	})
	require.NoError(t, err)
}

func TestRetrieveRanked(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	addChunk(t, stores, 1, 10, 0, "scheduling algorithms", []float32{1, 0, 0})
	addChunk(t, stores, 1, 10, 1, "memory paging", []float32{0, 1, 0})
	addChunk(t, stores, 1, 10, 2, "scheduling details", []float32{0.9, 0.1, 0})

	embedder := axisEmbedder(map[string][]float32{
		"explain scheduling": {1, 0, 0},
	})
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	retriever, err := NewRetriever(stores.Vectors, provider)
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), 1, "explain scheduling", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "scheduling algorithms", matches[0].Chunk.Contents)
	assert.Equal(t, "scheduling details", matches[1].Chunk.Contents)
}

func TestRetrieveIsolation(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	addChunk(t, stores, 1, 10, 0, "conversation A notes", []float32{1, 0})
	addChunk(t, stores, 2, 20, 0, "conversation B notes", []float32{1, 0})

	provider := mock.NewMockProvider()
	retriever, err := NewRetriever(stores.Vectors, provider)
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), 1, "any query at all", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.EqualValues(t, 1, matches[0].Chunk.ConversationId)
}

func TestRetrieveEmptyNamespace(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	retriever, err := NewRetriever(stores.Vectors, mock.NewMockProvider())
	require.NoError(t, err)

	matches, err := retriever.Retrieve(context.Background(), 99, "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)

	text, err := retriever.ContextText(context.Background(), 99, "anything")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestForTopicsKeywordOrder(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	addChunk(t, stores, 1, 10, 0, "all about scheduling", []float32{1, 0})
	addChunk(t, stores, 1, 10, 1, "all about paging", []float32{0, 1})

	embedder := axisEmbedder(map[string][]float32{
		"scheduling": {1, 0},
		"paging":     {0, 1},
	})
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

	retriever, err := NewRetriever(stores.Vectors, provider, WithTopK(1))
	require.NoError(t, err)

	text, err := retriever.ForTopics(context.Background(), 1, []string{"paging", "scheduling"})
	require.NoError(t, err)

	// Sections appear in keyword order
	pagingIdx := strings.Index(text, "all about paging")
	schedulingIdx := strings.Index(text, "all about scheduling")
	require.GreaterOrEqual(t, pagingIdx, 0)
	require.GreaterOrEqual(t, schedulingIdx, 0)
	assert.Less(t, pagingIdx, schedulingIdx)
}
