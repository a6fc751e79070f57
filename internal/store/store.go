// ABOUTME: Store interface and sentinel errors for briefcase persistence
// ABOUTME: Two interchangeable backends implement it: SQLite file and directory-of-files

package store

import (
	"context"
	"errors"

	"github.com/2389/briefcase/internal/entry"
)

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = errors.New("entry not found")

// ErrStoreNotFound is returned when purging a store that was never created
var ErrStoreNotFound = errors.New("store not found")

// Store defines the operations every briefcase backend provides.
//
// Construction never touches the disk: the store is created lazily on the
// first Set, and reads against a missing store behave as an empty store.
// Set, Get and Remove reject names failing entry.Valid with
// entry.ErrInvalidName before any storage access.
type Store interface {
	// Set upserts a variable, silently overwriting an existing value.
	Set(ctx context.Context, name, value string) error

	// Get returns the exact stored value. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) (string, error)

	// Remove deletes a variable. Returns ErrNotFound if absent.
	Remove(ctx context.Context, name string) error

	// List returns all entries in no particular order.
	List(ctx context.Context) ([]entry.Entry, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)

	// Purge irreversibly destroys the whole store, not just its entries.
	// Returns ErrStoreNotFound if the store location does not exist.
	Purge() error

	// Close releases any resources held by the store
	Close() error
}
