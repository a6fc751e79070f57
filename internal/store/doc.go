// Package store provides persistent storage for briefcase variables.
//
// # Architecture
//
// Two backends implement the same Store interface:
//
//   - SQLiteStore: a single SQLite database file. Each mutation is one
//     committed statement, so concurrent readers observe either the pre- or
//     post-commit state, never an intermediate one.
//   - FileStore: a directory holding one regular file per entry, file
//     contents being the raw value bytes. Writes replace the file via
//     rename; there is no cross-process locking beyond that.
//
// Callers pick a backend at startup (see internal/config) and depend only
// on the interface.
//
// # Lifecycle
//
// Constructors perform no I/O. The store is created lazily on the first
// Set; reads against a store that was never created behave as an empty
// store. Purge destroys the whole store (file or directory tree) and is
// the one operation that errors when the store does not exist.
//
// # Error Handling
//
// Sentinel errors:
//
//   - ErrNotFound: the requested entry does not exist
//   - ErrStoreNotFound: Purge targeted a store that was never created
//   - entry.ErrInvalidName: the name fails validation; returned before any
//     storage access
package store
