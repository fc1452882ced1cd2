// Package storage defines repository interfaces for durable state and the
// conversation-partitioned vector namespace, together with MUS
// serialization helpers shared by backends.
//
// Repositories are thread-safe. The vector namespace is append-only and
// offers no isolation against concurrent readers: partially indexed
// documents are visible to retrieval mid-ingestion by design.
package storage
