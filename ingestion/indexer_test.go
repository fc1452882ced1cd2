package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studium-labs/studium/ai/mock"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage/badger"
)

func makeTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk number %d", i)
	}
	return texts
}

func TestIndexerBatching(t *testing.T) {
	tests := []struct {
		name        string
		chunks      int
		batchSize   int
		wantBatches int
	}{
		{"single partial batch", 3, 10, 1},
		{"exact batches", 20, 10, 2},
		{"trailing partial batch", 25, 10, 3},
		{"batch of one", 4, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores, err := badger.NewMemoryStores()
			require.NoError(t, err)
			defer stores.Close()

			embedder := mock.NewMockEmbedder()
			indexer, err := NewIndexer(stores.Vectors, embedder, tt.batchSize)
			require.NoError(t, err)

			var submissions []int
			err = indexer.Index(context.Background(), 1, 2, makeTexts(tt.chunks), func(submitted, total int) {
				assert.Equal(t, tt.chunks, total)
				submissions = append(submissions, submitted)
			})
			require.NoError(t, err)

			// ceil(chunks / batchSize) submissions, monotonically increasing,
			// ending at the total
			require.Len(t, submissions, tt.wantBatches)
			for i := 1; i < len(submissions); i++ {
				assert.Greater(t, submissions[i], submissions[i-1])
			}
			assert.Equal(t, tt.chunks, submissions[len(submissions)-1])

			matches, err := stores.Vectors.Search(context.Background(), 1, []float32{0.5, 0.5}, tt.chunks+1)
			require.NoError(t, err)
			assert.Len(t, matches, tt.chunks)
		})
	}
}

func TestIndexerChunkMetadata(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	indexer, err := NewIndexer(stores.Vectors, mock.NewMockEmbedder(), 10)
	require.NoError(t, err)

	texts := makeTexts(3)
	require.NoError(t, indexer.Index(context.Background(), 7, 9, texts, nil))

	matches, err := stores.Vectors.Search(context.Background(), 7, []float32{1}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	seen := make(map[int]string)
	for _, match := range matches {
		assert.EqualValues(t, 7, match.Chunk.ConversationId)
		assert.EqualValues(t, 9, match.Chunk.DocumentId)
		assert.NotZero(t, match.Chunk.Id)
		assert.NotEmpty(t, match.Chunk.Vector)
		seen[match.Chunk.Seq] = match.Chunk.Contents
	}
	for i, text := range texts {
		assert.Equal(t, text, seen[i])
	}
}

func TestIndexerDuplicateTextsDistinctIds(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	indexer, err := NewIndexer(stores.Vectors, mock.NewMockEmbedder(), 10)
	require.NoError(t, err)

	texts := []string{"repeated passage", "repeated passage", "repeated passage"}
	require.NoError(t, indexer.Index(context.Background(), 7, 9, texts, nil))

	matches, err := stores.Vectors.Search(context.Background(), 7, []float32{1}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	ids := make(map[core.ID]bool)
	for _, match := range matches {
		ids[match.Chunk.Id] = true
	}
	assert.Len(t, ids, 3, "identical texts at different positions must get distinct ids")
}

func TestIndexerEmbeddingFailureAborts(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("embedding service unavailable")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}

	indexer, err := NewIndexer(stores.Vectors, embedder, 2)
	require.NoError(t, err)

	var submissions []int
	err = indexer.Index(context.Background(), 1, 2, makeTexts(6), func(submitted, total int) {
		submissions = append(submissions, submitted)
	})
	require.Error(t, err)

	// Only the first batch landed before the abort
	assert.Equal(t, []int{2}, submissions)

	matches, err := stores.Vectors.Search(context.Background(), 1, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestIndexerEmptyInput(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(stores.Vectors, embedder, 10)
	require.NoError(t, err)

	called := false
	require.NoError(t, indexer.Index(context.Background(), 1, 2, nil, func(submitted, total int) {
		called = true
	}))
	assert.False(t, called)
	assert.Zero(t, embedder.CallCount())
}
