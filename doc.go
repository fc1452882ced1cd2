// Package studium is a retrieval-augmented study assistant backend.
//
// A Backend manages per-conversation document ingestion (chunking,
// embedding, vector indexing with progress tracking), retrieval-grounded
// streaming chat scoped by an optional syllabus, and quiz generation.
// Storage is embedded BadgerDB by default, with an optional
// PostgreSQL/pgvector chunk store.
package studium
