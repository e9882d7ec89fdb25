package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JeelMungra28/BookValley/internal/domain"
	domainerrors "github.com/JeelMungra28/BookValley/internal/errors"
	"github.com/JeelMungra28/BookValley/internal/id"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// WishlistService manages per-user wishlists. A wishlist is a set: each
// (user, book) pair appears at most once, enforced by the storage key.
type WishlistService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(store *store.Store, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		logger: logger,
	}
}

// WishlistEntryView is a wishlist entry resolved against the live catalog.
type WishlistEntryView struct {
	ID      string             `json:"id"`
	Book    domain.BookSummary `json:"book"`
	AddedAt time.Time          `json:"added_at"`
}

// Get returns the user's wishlist, newest first, with entries resolved to
// book summaries. Entries whose book has been deleted are skipped.
func (s *WishlistService) Get(ctx context.Context, userID string) ([]WishlistEntryView, error) {
	entries, err := s.store.ListWishlistByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	views := make([]WishlistEntryView, 0, len(entries))
	for _, entry := range entries {
		book, err := s.store.GetBook(ctx, entry.BookID)
		if err != nil {
			if errors.Is(err, store.ErrBookNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve wishlist entry: %w", err)
		}
		views = append(views, WishlistEntryView{
			ID:      entry.ID,
			Book:    book.Summary(),
			AddedAt: entry.AddedAt,
		})
	}

	return views, nil
}

// Add puts a book on the user's wishlist.
// Returns AlreadyExists if the book is already wishlisted.
func (s *WishlistService) Add(ctx context.Context, userID, bookID string) (*WishlistEntryView, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	entryID, err := id.Generate("wish")
	if err != nil {
		return nil, fmt.Errorf("generate entry ID: %w", err)
	}

	entry := &domain.WishlistEntry{
		ID:      entryID,
		UserID:  userID,
		BookID:  bookID,
		AddedAt: time.Now(),
	}

	if err := s.store.AddWishlistEntry(ctx, entry); err != nil {
		if errors.Is(err, store.ErrDuplicateWishlistEntry) {
			return nil, domainerrors.AlreadyExists("book already in wishlist")
		}
		return nil, fmt.Errorf("add wishlist entry: %w", err)
	}

	return &WishlistEntryView{
		ID:      entry.ID,
		Book:    book.Summary(),
		AddedAt: entry.AddedAt,
	}, nil
}

// Remove takes a book off the user's wishlist.
// Returns NotFound if the book was never wishlisted.
func (s *WishlistService) Remove(ctx context.Context, userID, bookID string) error {
	if err := s.store.DeleteWishlistEntry(ctx, userID, bookID); err != nil {
		if errors.Is(err, store.ErrWishlistEntryNotFound) {
			return domainerrors.NotFound("book not found in wishlist")
		}
		return fmt.Errorf("delete wishlist entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("wishlist entry removed", "user_id", userID, "book_id", bookID)
	}
	return nil
}

// Check reports whether the book is on the user's wishlist.
// Absence is a valid answer, never an error.
func (s *WishlistService) Check(ctx context.Context, userID, bookID string) (bool, error) {
	has, err := s.store.HasWishlistEntry(ctx, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("check wishlist entry: %w", err)
	}
	return has, nil
}
