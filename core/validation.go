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

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Role and Status must be valid enum values
//   - Content may be set only when Role is syllabus and Status is processed
//
// NOT validated (populated later by the pipeline):
//   - ProcessedAt (zero until processed)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyName)
	}

	if err := ValidateDocumentRole(doc.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := ValidateDocumentStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.Content != "" && (doc.Role != RoleSyllabus || doc.Status != StatusProcessed) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrUnexpectedContent)
	}

	return nil
}

// ValidateTurn validates a Turn according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - SpeakerType must be valid (Human or AI)
//   - Timestamp must not be in the future
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyContent)
	}

	if err := ValidateSpeakerType(turn.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}

	if !IsValidTimestamp(turn.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - ConversationId must be set (retrieval isolation depends on it)
//
// NOT validated:
//   - Vector (can be empty until the indexer embeds the chunk)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.ConversationId == 0 {
		return fmt.Errorf("%w: conversation id required", ErrInvalidChunk)
	}

	return nil
}

// ValidateSpeakerType checks that the SpeakerType is a defined value.
func ValidateSpeakerType(speaker SpeakerType) error {
	switch speaker {
	case SpeakerHuman, SpeakerAI:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSpeakerType, speaker)
	}
}

// ValidateDocumentRole checks that the DocumentRole is a defined value.
func ValidateDocumentRole(role DocumentRole) error {
	switch role {
	case RoleSyllabus, RoleNotes:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDocumentRole, role)
	}
}

// ValidateDocumentStatus checks that the DocumentStatus is a defined value.
func ValidateDocumentStatus(status DocumentStatus) error {
	switch status {
	case StatusPending, StatusProcessed:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDocumentStatus, status)
	}
}

// IsValidTimestamp reports whether ts is usable as a turn timestamp.
// A small clock-skew allowance keeps records from other hosts valid.
func IsValidTimestamp(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(time.Now().Add(5 * time.Minute))
}
