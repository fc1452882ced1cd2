// Package postgres provides a pgvector-backed implementation of the
// vector namespace, for deployments that prefer PostgreSQL similarity
// search over the embedded BadgerDB store.
package postgres
