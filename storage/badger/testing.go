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


package badger

import "errors"

// Stores bundles the four repositories backed by a single BadgerDB
// instance.
type Stores struct {
	Conversations *ConversationRepository
	Documents     *DocumentRepository
	Turns         *TurnRepository
	Vectors       *VectorRepository

	backend *Backend
}

// OpenStores opens all repositories on a BadgerDB database at path.
func OpenStores(path string) (*Stores, error) {
	return openStores(path, false)
}

// NewMemoryStores creates in-memory repositories for testing.
// Caller must close the stores when done.
func NewMemoryStores() (*Stores, error) {
	return openStores("", true)
}

func openStores(path string, inMemory bool) (*Stores, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	convRepo, err := NewConversationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	docRepo, err := NewDocumentRepository(backend)
	if err != nil {
		convRepo.Close()
		backend.Close()
		return nil, err
	}

	turnRepo, err := NewTurnRepository(backend)
	if err != nil {
		docRepo.Close()
		convRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Stores{
		Conversations: convRepo,
		Documents:     docRepo,
		Turns:         turnRepo,
		Vectors:       NewVectorRepository(backend),
		backend:       backend,
	}, nil
}

// Close releases all repositories and the underlying database.
func (s *Stores) Close() error {
	return errors.Join(
		s.Vectors.Close(),
		s.Turns.Close(),
		s.Documents.Close(),
		s.Conversations.Close(),
		s.backend.Close(),
	)
}
