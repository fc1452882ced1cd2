package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/studium-labs/studium/core"
	"github.com/studium-labs/studium/storage"
)

// TurnRepository implements storage.TurnRepository for BadgerDB.
type TurnRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TurnRepository = (*TurnRepository)(nil)

// NewTurnRepository creates a new TurnRepository.
func NewTurnRepository(backend *Backend) (*TurnRepository, error) {
	idSeq, err := backend.GetSequence(turnIDSeq)
	if err != nil {
		return nil, err
	}

	return &TurnRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TurnRepository) Close() error {
	return r.idSeq.Release()
}

// AddTurns adds one or more turns to storage.
func (r *TurnRepository) AddTurns(ctx context.Context, turns ...*core.Turn) ([]*core.Turn, error) {
	for _, turn := range turns {
		if err := core.ValidateTurn(turn); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, turn := range turns {
			if turn.Id == 0 {
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
				turn.Id = core.ID(nextID)
			}

			if turn.InsertedAt.IsZero() {
				turn.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeTurnKey(turn.Id)
			if err := tx.Set(key, storage.MarshalTurn(turn)); err != nil {
				return err
			}

			// Update timestamp index
			indexKey := makeTurnIndexKey(turn.ConversationId, turn.Timestamp, turn.Id)
			if err := tx.Set(indexKey, storage.MarshalID(turn.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return turns, err
}

// GetTurnsByConversation retrieves all turns of a conversation, ordered by
// timestamp ascending. The index key embeds the timestamp in BigEndian, so
// iteration order is chronological.
func (r *TurnRepository) GetTurnsByConversation(ctx context.Context, conversationId core.ID) ([]*core.Turn, error) {
	var results []*core.Turn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTurnIndexKey(conversationId)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our conversationID prefix
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var turnID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				turnID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			turn, err := r.readTurn(tx, makeTurnKey(turnID))
			if err != nil {
				return err
			}
			if turn != nil {
				results = append(results, turn)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteTurnsByConversation removes all turns of a conversation.
func (r *TurnRepository) DeleteTurnsByConversation(ctx context.Context, conversationId core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTurnIndexKey(conversationId)

		// Collect keys first; deleting while iterating is undefined.
		var indexKeys [][]byte
		var turnIDs []core.ID

		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var turnID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				turnID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}

			indexKeys = append(indexKeys, iter.Item().KeyCopy(nil))
			turnIDs = append(turnIDs, turnID)
		}
		iter.Close()

		for _, key := range indexKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		for _, id := range turnIDs {
			if err := tx.Delete(makeTurnKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readTurn reads a turn record from the transaction.
func (r *TurnRepository) readTurn(tx *badger.Txn, key []byte) (*core.Turn, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var turn *core.Turn
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		turn, unmarshalErr = storage.UnmarshalTurn(val)
		return unmarshalErr
	})
	return turn, err
}
