// Package mock provides test doubles for the ai interfaces.
//
// Mocks default to deterministic behavior: embeddings are derived from an
// FNV hash of the input text, and generations return a canned reply.
// Tests can override either via the exported function fields.
package mock
