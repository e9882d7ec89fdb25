// Package store implements the Badger-backed document store for the
// BookValley storefront. Values are JSON documents; secondary indexes are
// plain keys maintained inside the same transaction as the document write.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Users      *Entity[domain.User]
	Books      *Entity[domain.Book]
	Categories *Entity[domain.Category]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initUsers()
	store.initBooks()
	store.initCategories()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Ping verifies the database is accessible with a cheap read transaction.
func (s *Store) Ping() error {
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isIndexKey reports whether a key under the given prefix is a secondary
// index key rather than a document key.
func isIndexKey(key, prefix string) bool {
	return len(key) > len(prefix) && strings.HasPrefix(key[len(prefix):], "idx:")
}

// unmarshalValue decodes a stored JSON document into dest.
func unmarshalValue(val []byte, dest any) error {
	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	return nil
}

// normalizeEmail lowercases and trims an email for case-insensitive indexing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName lowercases and trims a display name for case-insensitive indexing.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// initUsers initializes the Users entity on the store.
// Uses case-insensitive email indexing via normalizeEmail transformation.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		)
}

// initBooks initializes the Books entity on the store.
// Books carry no unique secondary index; category membership is resolved by scan.
func (s *Store) initBooks() {
	s.Books = NewEntity[domain.Book](s, "book:")
}

// initCategories initializes the Categories entity on the store.
// The unique name index is what rejects duplicate category names.
func (s *Store) initCategories() {
	s.Categories = NewEntity[domain.Category](s, "category:").
		WithIndexTransform("name",
			func(c *domain.Category) []string {
				return []string{normalizeName(c.Name)}
			},
			normalizeName,
		)
}
