package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

// Carts are stored one document per user under cart:{userID}.
const cartPrefix = "cart:"

// GetCart retrieves a user's cart.
// Returns ErrCartNotFound if the user has never carted anything; callers
// decide whether that means "create one" or "report empty".
func (s *Store) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(cartPrefix + userID)

	var cart domain.Cart
	if err := s.get(key, &cart); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return &cart, nil
}

// PutCart writes a user's cart document, replacing any previous state.
// Mutation ordering is the service layer's job; the store just persists
// whatever snapshot it is handed.
func (s *Store) PutCart(ctx context.Context, cart *domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(cartPrefix + cart.UserID)
	if err := s.set(key, cart); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

// DeleteCart removes a user's cart document. Idempotent.
func (s *Store) DeleteCart(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(cartPrefix + userID)
	if err := s.delete(key); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
