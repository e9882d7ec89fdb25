package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func testBook(id, title string) *domain.Book {
	return &domain.Book{
		ID:          id,
		Title:       title,
		Author:      "Test Author",
		CategoryID:  "cat_fiction",
		Price:       250,
		Available:   true,
		Stock:       5,
		CreatedAt:   time.Now(),
	}
}

func TestCreateBook_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	book := testBook("book_1", "The Go Programming Language")
	require.NoError(t, s.CreateBook(ctx, book))

	got, err := s.GetBook(ctx, "book_1")
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Price, got.Price)
}

func TestGetBook_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetBook(context.Background(), "book_missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook_MissingReturnsNotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.DeleteBook(context.Background(), "book_missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestListBooks_Pagination(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	for i := range 5 {
		book := testBook(fmt.Sprintf("book_%02d", i), fmt.Sprintf("Book %d", i))
		require.NoError(t, s.CreateBook(ctx, book))
	}

	page1, err := s.ListBooks(ctx, PaginationParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.True(t, page1.HasMore)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := s.ListBooks(ctx, PaginationParams{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)

	// No overlap between pages
	assert.NotEqual(t, page1.Items[1].ID, page2.Items[0].ID)

	page3, err := s.ListBooks(ctx, PaginationParams{Limit: 2, Cursor: page2.NextCursor})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.False(t, page3.HasMore)
	assert.Empty(t, page3.NextCursor)
}

func TestCountBooksByCategory(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	a := testBook("book_a", "A")
	b := testBook("book_b", "B")
	c := testBook("book_c", "C")
	c.CategoryID = "cat_other"

	require.NoError(t, s.CreateBook(ctx, a))
	require.NoError(t, s.CreateBook(ctx, b))
	require.NoError(t, s.CreateBook(ctx, c))

	count, err := s.CountBooksByCategory(ctx, "cat_fiction")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.CountBooksByCategory(ctx, "cat_empty")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreateCategory_DuplicateNameCaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first := &domain.Category{ID: "cat_1", Name: "Science Fiction", CreatedAt: time.Now()}
	require.NoError(t, s.CreateCategory(ctx, first))

	dup := &domain.Category{ID: "cat_2", Name: "science fiction", CreatedAt: time.Now()}
	err := s.CreateCategory(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	// Lookup works regardless of case
	got, err := s.GetCategoryByName(ctx, "SCIENCE FICTION")
	require.NoError(t, err)
	assert.Equal(t, "cat_1", got.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := &domain.User{ID: "user_1", Email: "jane@example.com", Name: "Jane"}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := &domain.User{ID: "user_2", Email: "Jane@Example.com", Name: "Other Jane"}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailExists)

	got, err := s.GetUserByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.ID)
}

func TestCart_RoundTrip(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := s.GetCart(ctx, "user_1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	cart := domain.NewCart("user_1")
	cart.AddItem("book_1", 2)
	cart.TotalPrice = 500
	require.NoError(t, s.PutCart(ctx, cart))

	got, err := s.GetCart(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "book_1", got.Items[0].BookID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 500.0, got.TotalPrice)

	require.NoError(t, s.DeleteCart(ctx, "user_1"))
	_, err = s.GetCart(ctx, "user_1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestWishlist_DuplicateRejected(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	entry := &domain.WishlistEntry{
		ID:      "wish_1",
		UserID:  "user_1",
		BookID:  "book_1",
		AddedAt: time.Now(),
	}
	require.NoError(t, s.AddWishlistEntry(ctx, entry))

	dup := &domain.WishlistEntry{
		ID:      "wish_2",
		UserID:  "user_1",
		BookID:  "book_1",
		AddedAt: time.Now(),
	}
	err := s.AddWishlistEntry(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateWishlistEntry)

	// Same book for another user is fine
	other := &domain.WishlistEntry{
		ID:      "wish_3",
		UserID:  "user_2",
		BookID:  "book_1",
		AddedAt: time.Now(),
	}
	require.NoError(t, s.AddWishlistEntry(ctx, other))
}

func TestWishlist_ListNewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now()

	for i := range 3 {
		entry := &domain.WishlistEntry{
			ID:      fmt.Sprintf("wish_%d", i),
			UserID:  "user_1",
			BookID:  fmt.Sprintf("book_%d", i),
			AddedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.AddWishlistEntry(ctx, entry))
	}

	entries, err := s.ListWishlistByUser(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "book_2", entries[0].BookID)
	assert.Equal(t, "book_0", entries[2].BookID)
}

func TestWishlist_DeleteAndHas(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	entry := &domain.WishlistEntry{
		ID:      "wish_1",
		UserID:  "user_1",
		BookID:  "book_1",
		AddedAt: time.Now(),
	}
	require.NoError(t, s.AddWishlistEntry(ctx, entry))

	has, err := s.HasWishlistEntry(ctx, "user_1", "book_1")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, s.DeleteWishlistEntry(ctx, "user_1", "book_1"))

	has, err = s.HasWishlistEntry(ctx, "user_1", "book_1")
	require.NoError(t, err)
	assert.False(t, has)

	err = s.DeleteWishlistEntry(ctx, "user_1", "book_1")
	assert.ErrorIs(t, err, ErrWishlistEntryNotFound)
}

func TestSession_RefreshTokenLookupAndRotation(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := &domain.Session{
		ID:               "sess_1",
		UserID:           "user_1",
		RefreshTokenHash: "hash_a",
		ExpiresAt:        time.Now().Add(24 * time.Hour),
		CreatedAt:        time.Now(),
		LastUsedAt:       time.Now(),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSessionByRefreshToken(ctx, "hash_a")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", got.ID)

	// Rotate the refresh token
	session.RefreshTokenHash = "hash_b"
	require.NoError(t, s.UpdateSession(ctx, session))

	_, err = s.GetSessionByRefreshToken(ctx, "hash_a")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err = s.GetSessionByRefreshToken(ctx, "hash_b")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", got.ID)
}

func TestSession_ExpiredReported(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	session := &domain.Session{
		ID:               "sess_old",
		UserID:           "user_1",
		RefreshTokenHash: "hash_old",
		ExpiresAt:        time.Now().Add(-time.Hour),
		CreatedAt:        time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	_, err := s.GetSession(ctx, "sess_old")
	assert.ErrorIs(t, err, ErrSessionExpired)

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetSession(ctx, "sess_old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteAllUserSessions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	for i := range 3 {
		session := &domain.Session{
			ID:               fmt.Sprintf("sess_%d", i),
			UserID:           "user_1",
			RefreshTokenHash: fmt.Sprintf("hash_%d", i),
			ExpiresAt:        time.Now().Add(24 * time.Hour),
			CreatedAt:        time.Now(),
		}
		require.NoError(t, s.CreateSession(ctx, session))
	}

	sessions, err := s.ListUserSessions(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	require.NoError(t, s.DeleteAllUserSessions(ctx, "user_1"))

	sessions, err = s.ListUserSessions(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
