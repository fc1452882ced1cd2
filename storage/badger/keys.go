package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/studium-labs/studium/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix     = "docrec"
	documentConvPrefix       = "docconv"
	documentIDSeq            = "docrecseq"
	conversationRecordPrefix = "convrec"
	conversationIDSeq        = "convrecseq"
	turnRecordPrefix         = "turnrec"
	turnIndexPrefix          = "turnidx"
	turnIDSeq                = "turnrecseq"
	chunkRecordPrefix        = "chkrec"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentConvKey generates a composite key for the conversation index.
// Format: prefix:conversationID:documentID
func makeDocumentConvKey(conversationID, documentID core.ID) []byte {
	prefix := documentConvPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makePartialDocumentConvKey generates a partial key for scanning all
// documents of a conversation.
func makePartialDocumentConvKey(conversationID core.ID) []byte {
	prefix := documentConvPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	return buf
}

// makeConversationKey generates a key for a conversation record by ID.
func makeConversationKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conversationRecordPrefix, id))
}

// makeTurnKey generates a key for a turn record by ID.
func makeTurnKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", turnRecordPrefix, id))
}

// makeTurnIndexKey generates a composite key for the per-conversation
// timestamp index. Format: prefix:conversationID:timestamp:turnID
func makeTurnIndexKey(conversationID core.ID, timestamp time.Time, turnID core.ID) []byte {
	prefix := turnIndexPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+24)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(turnID))
	return buf
}

// makePartialTurnIndexKey generates a partial key for scanning all turns
// of a conversation in timestamp order.
func makePartialTurnIndexKey(conversationID core.ID) []byte {
	prefix := turnIndexPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	return buf
}

// makeChunkKey generates a composite key for an embedded chunk.
// Format: prefix:conversationID:documentID:seq
func makeChunkKey(conversationID, documentID core.ID, seq int) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+24)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(seq))
	return buf
}

// makePartialChunkConvKey generates a partial key for scanning all chunks
// of a conversation.
func makePartialChunkConvKey(conversationID core.ID) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	return buf
}

// makePartialChunkDocKey generates a partial key for scanning all chunks
// of a document within a conversation.
func makePartialChunkDocKey(conversationID, documentID core.ID) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversationID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}
