// Package chat answers conversation turns with retrieval-augmented,
// syllabus-scoped generation.
//
// The Engine assembles a generation request from retrieved chunks, the
// conversation's syllabus text, and prior turns, streams the model's
// answer, and persists the user and bot turns only after the stream
// completes. A failed generation persists nothing.
package chat
