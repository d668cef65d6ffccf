// Package store persists configuration documents keyed by server name.
//
// Every backend implements Store with the same optimistic concurrency
// contract: Load returns the document together with an opaque Revision, and
// Save only succeeds if the stored revision still equals the one the caller
// loaded. A document that has never been saved carries an empty revision and
// can only be created, not overwritten. A mismatch is reported as ErrConflict
// and callers are expected to reload and reapply their change.
//
// Backends:
//
//   - memory: process-local map, used by tests and the "memory" backend
//   - file: one YAML file per server in a directory, with a fsnotify Watcher
//   - sqlite: one row per server in a SQLite database (WAL mode)
//   - kubernetes: one ConfigMap per server, via a controller-runtime client
//   - nats: one key per server in a JetStream key-value bucket
package store
