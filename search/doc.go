// Package search provides similarity retrieval over indexed chunks.
//
// The Retriever embeds a query and ranks a single conversation's chunks
// against it. Retrieval is strictly scoped: a query against one
// conversation never surfaces chunks indexed under another.
package search
