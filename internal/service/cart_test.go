package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/domain"
	domainerrors "github.com/JeelMungra28/BookValley/internal/errors"
	"github.com/JeelMungra28/BookValley/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return s
}

func seedBook(t *testing.T, s *store.Store, id string, price float64, available bool) *domain.Book {
	t.Helper()

	book := &domain.Book{
		ID:         id,
		Title:      "Title " + id,
		Author:     "Author " + id,
		CategoryID: "cat_fiction",
		Price:      price,
		Available:  available,
		Stock:      10,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, s.CreateBook(context.Background(), book))
	return book
}

func TestCartGet_LazilyCreatesEmptyCart(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	cart, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)

	// The empty cart was persisted
	stored, err := s.GetCart(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestCartAddItem_MergesQuantities(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	_, err := svc.AddItem(ctx, "user_1", "book_1", 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "user_1", "book_1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.TotalPrice)
}

func TestCartAddItem_MissingBook(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)

	_, err := svc.AddItem(context.Background(), "user_1", "book_missing", 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartAddItem_UnavailableBook(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)

	seedBook(t, s, "book_1", 100, false)

	_, err := svc.AddItem(context.Background(), "user_1", "book_1", 1)
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)

	seedBook(t, s, "book_1", 100, true)

	_, err := svc.AddItem(context.Background(), "user_1", "book_1", 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.AddItem(context.Background(), "user_1", "book_1", -3)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCartAddItem_QuantityCap(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	_, err := svc.AddItem(ctx, "user_1", "book_1", 60)
	require.NoError(t, err)

	// 60 + 50 crosses the cap; the cart must be left untouched
	_, err = svc.AddItem(ctx, "user_1", "book_1", 50)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	cart, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 60, cart.Items[0].Quantity)
}

func TestCartGet_LivePriceRecompute(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	book := seedBook(t, s, "book_1", 100, true)

	cart, err := svc.AddItem(ctx, "user_1", "book_1", 2)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.TotalPrice)

	// Price change outside the cart flow
	book.Price = 250
	require.NoError(t, s.UpdateBook(ctx, book))

	cart, err = svc.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, cart.TotalPrice)

	// A later mutation also totals at current prices
	seedBook(t, s, "book_2", 250, true)
	cart, err = svc.AddItem(ctx, "user_1", "book_2", 1)
	require.NoError(t, err)
	assert.Equal(t, 750.0, cart.TotalPrice)
}

func TestCartGet_DanglingBookContributesNothing(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)
	seedBook(t, s, "book_2", 50, true)

	_, err := svc.AddItem(ctx, "user_1", "book_1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user_1", "book_2", 2)
	require.NoError(t, err)

	require.NoError(t, s.DeleteBook(ctx, "book_1"))

	cart, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "book_2", cart.Items[0].Book.ID)
	assert.Equal(t, 100.0, cart.TotalPrice)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	_, err := svc.AddItem(ctx, "user_1", "book_1", 2)
	require.NoError(t, err)

	cart, err := svc.UpdateItemQuantity(ctx, "user_1", "book_1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.Equal(t, 700.0, cart.TotalPrice)

	_, err = svc.UpdateItemQuantity(ctx, "user_1", "book_1", 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.UpdateItemQuantity(ctx, "user_1", "book_1", domain.MaxItemQuantity+1)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.UpdateItemQuantity(ctx, "user_1", "book_other", 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.UpdateItemQuantity(ctx, "user_nocart", "book_1", 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartRemoveItem(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	_, err := svc.RemoveItem(ctx, "user_nocart", "book_1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.AddItem(ctx, "user_1", "book_1", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "user_1", "book_1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)

	// Removing again is a no-op, not an error
	cart, err = svc.RemoveItem(ctx, "user_1", "book_1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartClear(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	err := svc.Clear(ctx, "user_nocart")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.AddItem(ctx, "user_1", "book_1", 3)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user_1"))

	cart, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartConcurrentAdds_AllApplied(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCartService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 10, true)

	const workers = 8
	done := make(chan error, workers)
	for range workers {
		go func() {
			_, err := svc.AddItem(ctx, "user_1", "book_1", 1)
			done <- err
		}()
	}
	for range workers {
		require.NoError(t, <-done)
	}

	cart, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
	assert.Equal(t, float64(workers)*10, cart.TotalPrice)
}
