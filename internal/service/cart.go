// Package service implements the storefront's business operations on top of
// the store layer. Services validate input, translate store errors into
// domain errors, and never touch HTTP concerns.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/JeelMungra28/BookValley/internal/domain"
	domainerrors "github.com/JeelMungra28/BookValley/internal/errors"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// CartService manages per-user carts. Every mutation and the read-recompute
// path run under a per-user mutex, so concurrent requests for the same user
// serialize instead of racing on the read-modify-write cycle.
type CartService struct {
	store  *store.Store
	locks  *xsync.MapOf[string, *sync.Mutex]
	logger *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store *store.Store, logger *slog.Logger) *CartService {
	return &CartService{
		store:  store,
		locks:  xsync.NewMapOf[string, *sync.Mutex](),
		logger: logger,
	}
}

// CartItemView is a cart line resolved against the live catalog.
type CartItemView struct {
	Book     domain.BookSummary `json:"book"`
	Quantity int                `json:"quantity"`
	Subtotal float64            `json:"subtotal"`
}

// CartResponse is the client-facing cart projection.
type CartResponse struct {
	UserID     string         `json:"user_id"`
	Items      []CartItemView `json:"items"`
	TotalPrice float64        `json:"total_price"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// lockUser acquires the user's cart mutex and returns the unlock func.
func (s *CartService) lockUser(userID string) func() {
	mu, _ := s.locks.LoadOrCompute(userID, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}

// Get returns the user's cart with items resolved against the live catalog
// and a freshly recomputed total. A user without a cart gets an empty one,
// created and persisted on the spot.
func (s *CartService) Get(ctx context.Context, userID string) (*CartResponse, error) {
	defer s.lockUser(userID)()

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrCartNotFound) {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		cart = domain.NewCart(userID)
	}

	// Prices drift between requests; the stored total is only a cache of
	// the last resolution. Recompute and persist on every read.
	return s.resolveAndPersist(ctx, cart)
}

// AddItem adds quantity of a book to the user's cart, merging into an
// existing line for the same book.
func (s *CartService) AddItem(ctx context.Context, userID, bookID string, quantity int) (*CartResponse, error) {
	if quantity < 1 {
		return nil, domainerrors.Validation("quantity must be at least 1")
	}

	defer s.lockUser(userID)()

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	if !book.Available {
		return nil, domainerrors.Unavailable("book is not available for rent")
	}

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrCartNotFound) {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		cart = domain.NewCart(userID)
	}

	if !cart.AddItem(bookID, quantity) {
		return nil, domainerrors.Validationf("quantity for a single book cannot exceed %d", domain.MaxItemQuantity)
	}

	resp, err := s.resolveAndPersist(ctx, cart)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("cart item added",
			"user_id", userID,
			"book_id", bookID,
			"quantity", quantity,
		)
	}
	return resp, nil
}

// UpdateItemQuantity sets the absolute quantity of a cart line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, bookID string, quantity int) (*CartResponse, error) {
	if quantity < 1 {
		return nil, domainerrors.Validation("quantity must be at least 1")
	}
	if quantity > domain.MaxItemQuantity {
		return nil, domainerrors.Validationf("quantity for a single book cannot exceed %d", domain.MaxItemQuantity)
	}

	defer s.lockUser(userID)()

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return nil, domainerrors.NotFound("cart not found")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if !cart.SetQuantity(bookID, quantity) {
		return nil, domainerrors.NotFound("book not found in cart")
	}

	return s.resolveAndPersist(ctx, cart)
}

// RemoveItem removes a book from the cart. Removing a book that is not in
// the cart succeeds with the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, userID, bookID string) (*CartResponse, error) {
	defer s.lockUser(userID)()

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return nil, domainerrors.NotFound("cart not found")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart.RemoveItem(bookID)

	return s.resolveAndPersist(ctx, cart)
}

// Clear empties the user's cart. The cart document survives as an empty cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	defer s.lockUser(userID)()

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			return domainerrors.NotFound("cart not found")
		}
		return fmt.Errorf("get cart: %w", err)
	}

	cart.Clear()

	if err := s.store.PutCart(ctx, cart); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("cart cleared", "user_id", userID)
	}
	return nil
}

// resolveAndPersist resolves cart lines against the catalog, recomputes the
// total from current prices, persists, and builds the client view. Lines
// whose book has been deleted stay in the document but resolve to nothing.
// Callers must hold the user's cart lock.
func (s *CartService) resolveAndPersist(ctx context.Context, cart *domain.Cart) (*CartResponse, error) {
	books := make(map[string]*domain.Book, len(cart.Items))
	for _, item := range cart.Items {
		book, err := s.store.GetBook(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, store.ErrBookNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve cart item: %w", err)
		}
		books[item.BookID] = book
	}

	cart.Recompute(func(bookID string) (float64, bool) {
		book, ok := books[bookID]
		if !ok {
			return 0, false
		}
		return book.Price, true
	})

	if err := s.store.PutCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("put cart: %w", err)
	}

	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		book, ok := books[item.BookID]
		if !ok {
			continue
		}
		items = append(items, CartItemView{
			Book:     book.Summary(),
			Quantity: item.Quantity,
			Subtotal: book.Price * float64(item.Quantity),
		})
	}

	return &CartResponse{
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: cart.TotalPrice,
		UpdatedAt:  cart.UpdatedAt,
	}, nil
}
