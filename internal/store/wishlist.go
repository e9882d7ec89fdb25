package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

// Wishlist entries are stored under wishlist:{userID}:{bookID}. The key
// itself is the (user, book) uniqueness constraint.
const wishlistPrefix = "wishlist:"

func wishlistKey(userID, bookID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s", wishlistPrefix, userID, bookID)
}

// AddWishlistEntry stores a new wishlist entry.
// Returns ErrDuplicateWishlistEntry if the user already wishlisted the book.
func (s *Store) AddWishlistEntry(ctx context.Context, entry *domain.WishlistEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := wishlistKey(entry.UserID, entry.BookID)

	err := s.db.Update(func(txn *badger.Txn) error {
		// The existence check and the write share a transaction so two
		// racing adds cannot both succeed.
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicateWishlistEntry
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check wishlist entry: %w", err)
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal wishlist entry: %w", err)
		}

		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("wishlist entry added",
			"user_id", entry.UserID,
			"book_id", entry.BookID,
		)
	}
	return nil
}

// ListWishlistByUser returns a user's wishlist entries, newest first.
func (s *Store) ListWishlistByUser(ctx context.Context, userID string) ([]*domain.WishlistEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := fmt.Appendf(nil, "%s%s:", wishlistPrefix, userID)

	var entries []*domain.WishlistEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry domain.WishlistEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				entries = append(entries, &entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})

	return entries, nil
}

// DeleteWishlistEntry removes a wishlist entry.
// Returns ErrWishlistEntryNotFound if the book was never wishlisted.
func (s *Store) DeleteWishlistEntry(ctx context.Context, userID, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := wishlistKey(userID, bookID)

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrWishlistEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("check wishlist entry: %w", err)
		}

		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("wishlist entry removed",
			"user_id", userID,
			"book_id", bookID,
		)
	}
	return nil
}

// HasWishlistEntry reports whether the user has wishlisted the book.
func (s *Store) HasWishlistEntry(ctx context.Context, userID, bookID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return s.exists(wishlistKey(userID, bookID))
}
