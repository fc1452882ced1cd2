package badger

import (
	"context"
	"testing"

	"github.com/studium-labs/studium/core"
)

func makeTestChunk(convID, docID core.ID, seq int, contents string, vector []float32) *core.Chunk {
	return &core.Chunk{
		Id:             core.IDFromContent(contents),
		ConversationId: convID,
		DocumentId:     docID,
		Seq:            seq,
		Contents:       contents,
		Vector:         vector,
	}
}

func TestVectorSearchRanking(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	chunks := []*core.Chunk{
		makeTestChunk(1, 10, 0, "orthogonal", []float32{0, 1, 0}),
		makeTestChunk(1, 10, 1, "exact", []float32{1, 0, 0}),
		makeTestChunk(1, 10, 2, "close", []float32{0.9, 0.1, 0}),
	}
	if err := stores.Vectors.AddChunks(ctx, chunks...); err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	matches, err := stores.Vectors.Search(ctx, 1, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Chunk.Contents != "exact" {
		t.Fatalf("Expected 'exact' first, got %q", matches[0].Chunk.Contents)
	}
	if matches[1].Chunk.Contents != "close" {
		t.Fatalf("Expected 'close' second, got %q", matches[1].Chunk.Contents)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("Matches not sorted by score descending")
	}
}

func TestVectorSearchConversationIsolation(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	chunks := []*core.Chunk{
		makeTestChunk(1, 10, 0, "mine", []float32{1, 0}),
		makeTestChunk(2, 20, 0, "theirs", []float32{1, 0}),
	}
	if err := stores.Vectors.AddChunks(ctx, chunks...); err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	matches, err := stores.Vectors.Search(ctx, 1, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Chunk.Contents != "mine" {
		t.Fatalf("Got chunk from another conversation: %q", matches[0].Chunk.Contents)
	}
}

func TestVectorSearchEmptyConversation(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	matches, err := stores.Vectors.Search(context.Background(), 42, []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Expected no matches, got %d", len(matches))
	}
}

func TestVectorDeleteByDocument(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	chunks := []*core.Chunk{
		makeTestChunk(1, 10, 0, "doc ten a", []float32{1, 0}),
		makeTestChunk(1, 10, 1, "doc ten b", []float32{0, 1}),
		makeTestChunk(1, 11, 0, "doc eleven", []float32{1, 1}),
	}
	if err := stores.Vectors.AddChunks(ctx, chunks...); err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	if err := stores.Vectors.DeleteByDocument(ctx, 1, 10); err != nil {
		t.Fatalf("Failed to delete chunks: %v", err)
	}

	matches, err := stores.Vectors.Search(ctx, 1, []float32{1, 1}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Chunk.DocumentId != 11 {
		t.Fatalf("Expected chunk of document 11, got %d", matches[0].Chunk.DocumentId)
	}
}
