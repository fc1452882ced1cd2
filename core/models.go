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


package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SpeakerType identifies the source of a conversation turn.
type SpeakerType int

const (
	// SpeakerHuman represents the human user.
	SpeakerHuman SpeakerType = iota + 1
	// SpeakerAI represents the assistant.
	SpeakerAI
)

// DocumentRole identifies how an uploaded document participates in answering.
type DocumentRole int

const (
	// RoleSyllabus marks the scoping document. Its full text is injected
	// into the prompt and it is never chunked or embedded.
	RoleSyllabus DocumentRole = iota + 1
	// RoleNotes marks study material that is chunked, embedded, and indexed
	// into the conversation's vector namespace.
	RoleNotes
)

// DocumentStatus tracks the ingestion lifecycle of a document.
type DocumentStatus int

const (
	// StatusPending means the document has been accepted but not yet processed.
	StatusPending DocumentStatus = iota + 1
	// StatusProcessed means ingestion finished for the document.
	StatusProcessed
)

// Document represents an uploaded artifact owned by a conversation.
// Content is populated only for processed syllabus documents.
type Document struct {
	Id             ID
	ConversationId ID
	Name           string
	Role           DocumentRole
	Status         DocumentStatus
	Content        string    // Full extracted text; syllabus role only
	ProcessedAt    time.Time // Zero until the ingestion pipeline finishes
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// Conversation is a chat session scoping documents, turns, and retrieval.
type Conversation struct {
	Id         ID
	UserId     string // Opaque owner identifier; authentication lives elsewhere
	Title      string
	Bookmarked bool
	InsertedAt time.Time
}

// Turn is a single message in a conversation.
// Turns within a conversation are strictly ordered by Timestamp and that
// order defines the history handed to the language model.
type Turn struct {
	Id             ID
	ConversationId ID
	Speaker        SpeakerType
	Contents       string
	Timestamp      time.Time
	InsertedAt     time.Time
}

// Chunk is a bounded-length segment of a notes document with a fixed
// overlap with its neighbor. Chunks are immutable once indexed.
type Chunk struct {
	Id             ID
	ConversationId ID
	DocumentId     ID
	Seq            int // Position of the chunk within its document
	Contents       string
	Vector         []float32
}

// ChunkMatch is a vector search result with its similarity score.
type ChunkMatch struct {
	Chunk *Chunk
	Score float32
}
