// ABOUTME: Directory-of-files implementation of the Store interface
// ABOUTME: One regular file per entry, file contents are the raw value bytes

package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/2389/briefcase/internal/entry"
)

// FileStore implements the Store interface as a directory holding one file
// per entry, named exactly as the entry. It offers no cross-process mutual
// exclusion; concurrent writers to the same name are last-writer-wins.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a store backed by the directory at dir.
// The directory is created on the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: slog.Default().With("component", "store", "backend", "files"),
	}
}

// Close is a no-op; the file store holds no open resources
func (s *FileStore) Close() error {
	return nil
}

// Set upserts a variable. The value is written to a temp file and renamed
// over the target, so a reader never observes a partially written value.
func (s *FileStore) Set(ctx context.Context, name, value string) error {
	if !entry.Valid(name) {
		return entry.ErrInvalidName
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".write-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing value: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting entry permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replacing entry file: %w", err)
	}

	s.logger.Debug("set entry", "name", name)
	return nil
}

// Get returns the exact bytes of the entry file.
// Returns ErrNotFound if the entry doesn't exist.
func (s *FileStore) Get(ctx context.Context, name string) (string, error) {
	if !entry.Valid(name) {
		return "", entry.ErrInvalidName
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading entry file: %w", err)
	}

	return string(data), nil
}

// Remove deletes the entry file.
// Returns ErrNotFound if the entry doesn't exist.
func (s *FileStore) Remove(ctx context.Context, name string) error {
	if !entry.Valid(name) {
		return entry.ErrInvalidName
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("removing entry file: %w", err)
	}

	s.logger.Debug("removed entry", "name", name)
	return nil
}

// List returns all entries. Files whose names are not valid entry names
// (leftover temp files, foreign files) are not briefcase entries and are
// skipped. A store that was never created lists nothing.
func (s *FileStore) List(ctx context.Context) ([]entry.Entry, error) {
	files, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	var entries []entry.Entry
	for _, f := range files {
		if !f.Type().IsRegular() || !entry.Valid(f.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading entry file %q: %w", f.Name(), err)
		}
		entries = append(entries, entry.Entry{Name: f.Name(), Value: string(data)})
	}

	return entries, nil
}

// Count returns the number of entries without reading their contents.
func (s *FileStore) Count(ctx context.Context) (int, error) {
	files, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading store directory: %w", err)
	}

	count := 0
	for _, f := range files {
		if f.Type().IsRegular() && entry.Valid(f.Name()) {
			count++
		}
	}

	return count, nil
}

// Purge removes the store directory and everything in it.
// Returns ErrStoreNotFound if the store was never created.
func (s *FileStore) Purge() error {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return ErrStoreNotFound
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing store directory: %w", err)
	}

	s.logger.Info("purged store", "dir", s.dir)
	return nil
}
