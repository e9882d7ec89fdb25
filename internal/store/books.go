package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

const bookPrefix = "book:"

// CreateBook stores a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Create(ctx, book.ID, book); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrAlreadyExists.WithMessage("book already exists")
		}
		return fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book created", "id", book.ID, "title", book.Title)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.Books.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// UpdateBook updates an existing book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Update(ctx, book.ID, book); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("update book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book updated", "id", book.ID)
	}
	return nil
}

// DeleteBook removes a book. Cart lines and wishlist entries referencing the
// book are left in place; readers treat them as unresolvable.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.GetBook(ctx, id); err != nil {
		return err
	}

	if err := s.Books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book deleted", "id", id)
	}
	return nil
}

// ListBooks returns a page of books in key order using cursor pagination.
func (s *Store) ListBooks(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Book], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Validate()

	startKey, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, ErrInvalidInput.WithCause(err)
	}

	result := &PaginatedResult[*domain.Book]{
		Items: make([]*domain.Book, 0, params.Limit),
	}

	var lastKey string
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		seek := []byte(bookPrefix)
		if startKey != "" {
			seek = []byte(startKey)
		}

		for it.Seek(seek); it.ValidForPrefix([]byte(bookPrefix)); it.Next() {
			key := string(it.Item().Key())

			// The cursor points at the last key of the previous page.
			if startKey != "" && key == startKey {
				continue
			}

			if isIndexKey(key, bookPrefix) {
				continue
			}

			if len(result.Items) >= params.Limit {
				result.HasMore = true
				result.NextCursor = EncodeCursor(lastKey)
				return nil
			}

			var book domain.Book
			err := it.Item().Value(func(val []byte) error {
				return unmarshalValue(val, &book)
			})
			if err != nil {
				return err
			}

			result.Items = append(result.Items, &book)
			lastKey = key
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return result, nil
}

// AllBooks returns every book in key order. Used by search and seeding.
func (s *Store) AllBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.Books.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}
	return books, nil
}

// CountBooksByCategory counts books belonging to a category.
// Category documents never persist a count; this scan is the source of truth.
func (s *Store) CountBooksByCategory(ctx context.Context, categoryID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	for book, err := range s.Books.List(ctx) {
		if err != nil {
			return 0, fmt.Errorf("count books by category: %w", err)
		}
		if book.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}
