// Package store provides the key-value persistence contract of the
// launcher core and its two implementations.
//
// The contract (KV) is a single flat namespace of typed values:
//   - string, int, bool and string-set values
//   - ordered batches applied atomically (Apply)
//   - prefix enumeration of keys (Keys)
//
// Store is the durable SQLite implementation; Memory is a map-backed one
// for tests and ephemeral sessions. Both satisfy KV identically.
//
// The SQLite database runs in WAL mode with synchronous=NORMAL and a five
// second busy timeout. All writes come from one foreground context, so the
// pool holds a single connection.
package store
