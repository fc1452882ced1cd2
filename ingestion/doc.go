// Package ingestion turns uploaded files into retrievable chunks.
//
// The Pipeline type manages the ingestion workflow for documents:
//   - Persisting the pending document record
//   - Extracting text and (for notes) chunking and embedding it
//   - Appending embedded chunks to the vector namespace batch by batch
//   - Tracking per-job progress for polling clients
//
// Processing runs on a bounded worker pool; the upload call returns
// immediately and the caller polls the JobTracker. Failed jobs carry an
// explicit failed state with an error summary, while the document stays
// pending in durable storage.
package ingestion
