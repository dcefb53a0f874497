// Package store is the durable session layer: saved project documents
// and per-project command journals, backed by a single SQLite file.
package store
