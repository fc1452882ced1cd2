package badger

import (
	"context"
	"testing"
	"time"

	"github.com/studium-labs/studium/core"
)

func TestTurnOrdering(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	// Insert out of chronological order
	turns := []*core.Turn{
		{ConversationId: 1, Speaker: core.SpeakerAI, Contents: "third", Timestamp: now},
		{ConversationId: 1, Speaker: core.SpeakerHuman, Contents: "first", Timestamp: now.Add(-2 * time.Hour)},
		{ConversationId: 1, Speaker: core.SpeakerAI, Contents: "second", Timestamp: now.Add(-1 * time.Hour)},
	}
	if _, err := stores.Turns.AddTurns(ctx, turns...); err != nil {
		t.Fatalf("Failed to add turns: %v", err)
	}

	history, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get turns: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(history))
	}

	want := []string{"first", "second", "third"}
	for i, turn := range history {
		if turn.Contents != want[i] {
			t.Fatalf("Position %d: expected %q, got %q", i, want[i], turn.Contents)
		}
	}
}

func TestTurnConversationIsolation(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	turns := []*core.Turn{
		{ConversationId: 1, Speaker: core.SpeakerHuman, Contents: "conv one", Timestamp: now},
		{ConversationId: 2, Speaker: core.SpeakerHuman, Contents: "conv two", Timestamp: now},
	}
	if _, err := stores.Turns.AddTurns(ctx, turns...); err != nil {
		t.Fatalf("Failed to add turns: %v", err)
	}

	forConv1, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get turns: %v", err)
	}
	if len(forConv1) != 1 || forConv1[0].Contents != "conv one" {
		t.Fatalf("Unexpected turns for conversation 1: %v", forConv1)
	}
}

func TestDeleteTurnsByConversation(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	turns := []*core.Turn{
		{ConversationId: 1, Speaker: core.SpeakerHuman, Contents: "doomed", Timestamp: now.Add(-time.Minute)},
		{ConversationId: 1, Speaker: core.SpeakerAI, Contents: "also doomed", Timestamp: now},
		{ConversationId: 2, Speaker: core.SpeakerHuman, Contents: "survivor", Timestamp: now},
	}
	if _, err := stores.Turns.AddTurns(ctx, turns...); err != nil {
		t.Fatalf("Failed to add turns: %v", err)
	}

	if err := stores.Turns.DeleteTurnsByConversation(ctx, 1); err != nil {
		t.Fatalf("Failed to delete turns: %v", err)
	}

	forConv1, err := stores.Turns.GetTurnsByConversation(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get turns: %v", err)
	}
	if len(forConv1) != 0 {
		t.Fatalf("Expected 0 turns, got %d", len(forConv1))
	}

	forConv2, err := stores.Turns.GetTurnsByConversation(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get turns: %v", err)
	}
	if len(forConv2) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(forConv2))
	}
}
