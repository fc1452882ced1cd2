package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage"
)

func TestDocumentBasics(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	doc := &core.Document{
		ConversationId: 7,
		Name:           "lecture-01.pdf",
		Role:           core.RoleNotes,
		Status:         core.StatusPending,
	}

	added, err := stores.Documents.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := stores.Documents.GetDocument(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Name != "lecture-01.pdf" {
		t.Fatalf("Expected 'lecture-01.pdf', got '%s'", retrieved.Name)
	}
	if retrieved.Status != core.StatusPending {
		t.Fatalf("Expected pending status, got %v", retrieved.Status)
	}
}

func TestDocumentsByConversation(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	docs := []*core.Document{
		{ConversationId: 1, Name: "a.txt", Role: core.RoleNotes, Status: core.StatusPending},
		{ConversationId: 1, Name: "b.txt", Role: core.RoleNotes, Status: core.StatusPending},
		{ConversationId: 2, Name: "c.txt", Role: core.RoleNotes, Status: core.StatusPending},
	}
	for _, doc := range docs {
		if _, err := stores.Documents.AddDocument(ctx, doc); err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
	}

	forConv1, err := stores.Documents.GetDocumentsByConversation(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(forConv1) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(forConv1))
	}
	for _, doc := range forConv1 {
		if doc.ConversationId != 1 {
			t.Fatalf("Got document of conversation %d", doc.ConversationId)
		}
	}
}

func TestFindSyllabus(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	if _, err := stores.Documents.FindSyllabus(ctx, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	docs := []*core.Document{
		{ConversationId: 1, Name: "notes.txt", Role: core.RoleNotes, Status: core.StatusPending},
		{ConversationId: 1, Name: "syllabus.pdf", Role: core.RoleSyllabus, Status: core.StatusPending},
	}
	for _, doc := range docs {
		if _, err := stores.Documents.AddDocument(ctx, doc); err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
	}

	syllabus, err := stores.Documents.FindSyllabus(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to find syllabus: %v", err)
	}
	if syllabus.Name != "syllabus.pdf" {
		t.Fatalf("Expected 'syllabus.pdf', got '%s'", syllabus.Name)
	}
}

func TestMarkProcessed(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	doc, err := stores.Documents.AddDocument(ctx, &core.Document{
		ConversationId: 1,
		Name:           "syllabus.pdf",
		Role:           core.RoleSyllabus,
		Status:         core.StatusPending,
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	processed, err := stores.Documents.MarkProcessed(ctx, doc.Id, "Unit 1\nUnit 2")
	if err != nil {
		t.Fatalf("Failed to mark processed: %v", err)
	}
	if processed.Status != core.StatusProcessed {
		t.Fatalf("Expected processed status, got %v", processed.Status)
	}
	if processed.Content != "Unit 1\nUnit 2" {
		t.Fatalf("Unexpected content: %q", processed.Content)
	}
	if processed.ProcessedAt.IsZero() {
		t.Fatal("Expected ProcessedAt to be set")
	}

	// The transition must be durable
	retrieved, err := stores.Documents.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Status != core.StatusProcessed {
		t.Fatal("Processed status not persisted")
	}

	if _, err := stores.Documents.MarkProcessed(ctx, 9999, ""); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	doc, err := stores.Documents.AddDocument(ctx, &core.Document{
		ConversationId: 1,
		Name:           "notes.txt",
		Role:           core.RoleNotes,
		Status:         core.StatusPending,
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := stores.Documents.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	if _, err := stores.Documents.GetDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Conversation index entry must be gone too
	remaining, err := stores.Documents.GetDocumentsByConversation(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected 0 documents, got %d", len(remaining))
	}

	if err := stores.Documents.DeleteDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}
