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

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage"
)

// ConversationRepository implements storage.ConversationRepository for BadgerDB.
type ConversationRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ConversationRepository = (*ConversationRepository)(nil)

// NewConversationRepository creates a new ConversationRepository.
func NewConversationRepository(backend *Backend) (*ConversationRepository, error) {
	idSeq, err := backend.GetSequence(conversationIDSeq)
	if err != nil {
		return nil, err
	}

	return &ConversationRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ConversationRepository) Close() error {
	return r.idSeq.Release()
}

// AddConversation adds a conversation to storage.
func (r *ConversationRepository) AddConversation(ctx context.Context, conv *core.Conversation) (*core.Conversation, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if conv.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			conv.Id = core.ID(nextID)
		}

		if conv.InsertedAt.IsZero() {
			conv.InsertedAt = time.Now().UTC()
		}

		key := makeConversationKey(conv.Id)
		if err := tx.Set(key, storage.MarshalConversation(conv)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return conv, err
}

// GetConversation retrieves a conversation by ID.
func (r *ConversationRepository) GetConversation(ctx context.Context, id core.ID) (*core.Conversation, error) {
	var result *core.Conversation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readConversation(tx, makeConversationKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListConversations retrieves all conversations for a user, ordered by
// insertion time ascending. An empty userId lists everything.
func (r *ConversationRepository) ListConversations(ctx context.Context, userId string) ([]*core.Conversation, error) {
	var results []*core.Conversation
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conversationRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var conv *core.Conversation
			err := iter.Item().Value(func(val []byte) error {
				var err error
				conv, err = storage.UnmarshalConversation(val)
				return err
			})
			if err != nil {
				return err
			}
			if conv == nil {
				continue
			}
			if userId != "" && conv.UserId != userId {
				continue
			}
			results = append(results, conv)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Record keys are decimal-formatted, so iteration order is not
	// chronological. Sort on insertion time instead.
	slices.SortFunc(results, func(a, b *core.Conversation) int {
		return a.InsertedAt.Compare(b.InsertedAt)
	})

	return results, nil
}

// SetBookmarked toggles the bookmark flag on a conversation.
func (r *ConversationRepository) SetBookmarked(ctx context.Context, id core.ID, bookmarked bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeConversationKey(id)
		conv, err := r.readConversation(tx, key)
		if err != nil {
			return err
		}
		if conv == nil {
			return storage.ErrNotFound
		}

		conv.Bookmarked = bookmarked
		if err := tx.Set(key, storage.MarshalConversation(conv)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteConversation removes a conversation by ID.
func (r *ConversationRepository) DeleteConversation(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeConversationKey(id)
		conv, err := r.readConversation(tx, key)
		if err != nil {
			return err
		}
		if conv == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readConversation reads a conversation record from the transaction.
func (r *ConversationRepository) readConversation(tx *badger.Txn, key []byte) (*core.Conversation, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var conv *core.Conversation
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		conv, unmarshalErr = storage.UnmarshalConversation(val)
		return unmarshalErr
	})
	return conv, err
}
