package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeelMungra28/BookValley/internal/domain"
	"github.com/JeelMungra28/BookValley/internal/store"
)

func seedCategory(t *testing.T, s *store.Store, id, name, description string) {
	t.Helper()

	require.NoError(t, s.CreateCategory(context.Background(), &domain.Category{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}))
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	s := setupTestStore(t)
	svc := NewSearchService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true)

	for _, q := range []string{"", "   ", "\t"} {
		resp, err := svc.Search(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, resp.Books)
		assert.Empty(t, resp.Categories)
		assert.Empty(t, resp.Suggestions)
		assert.Zero(t, resp.Total)
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := setupTestStore(t)
	svc := NewSearchService(s, nil)
	ctx := context.Background()

	book := &domain.Book{
		ID:          "book_1",
		Title:       "The Pragmatic Programmer",
		Author:      "Andrew Hunt",
		Description: "Journeyman to master",
		CategoryID:  "cat_tech",
		Price:       300,
		Available:   true,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateBook(ctx, book))
	seedCategory(t, s, "cat_tech", "Technology", "Programming and software books")

	// Title match
	resp, err := svc.Search(ctx, "PRAGMATIC")
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)

	// Author match
	resp, err = svc.Search(ctx, "hunt")
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)

	// Description match
	resp, err = svc.Search(ctx, "journeyman")
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)

	// Category name and description match
	resp, err = svc.Search(ctx, "software")
	require.NoError(t, err)
	assert.Empty(t, resp.Books)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, 1, resp.Total)

	// No match
	resp, err = svc.Search(ctx, "zzzz")
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
}

func TestSearch_CapsAndSuggestions(t *testing.T) {
	s := setupTestStore(t)
	svc := NewSearchService(s, nil)
	ctx := context.Background()

	for i := range 12 {
		book := &domain.Book{
			ID:         fmt.Sprintf("book_%02d", i),
			Title:      fmt.Sprintf("Gopher Tales %d", i),
			Author:     "Various",
			CategoryID: "cat_fiction",
			Price:      100,
			Available:  true,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, s.CreateBook(ctx, book))
	}
	seedCategory(t, s, "cat_1", "Gopher Fiction", "")
	seedCategory(t, s, "cat_2", "Gopher History", "")

	resp, err := svc.Search(ctx, "gopher")
	require.NoError(t, err)

	assert.Len(t, resp.Books, 10)
	assert.Len(t, resp.Categories, 2)
	assert.Equal(t, 12, resp.Total)

	// Suggestions are capped at 5 and book-first
	require.Len(t, resp.Suggestions, 5)
	for _, sug := range resp.Suggestions {
		assert.Equal(t, "book", sug.Type)
	}
}

func TestSearch_CategorySuggestionsAfterBooks(t *testing.T) {
	s := setupTestStore(t)
	svc := NewSearchService(s, nil)
	ctx := context.Background()

	seedBook(t, s, "book_1", 100, true) // Title "Title book_1"
	seedCategory(t, s, "cat_1", "book_1 essays", "")

	resp, err := svc.Search(ctx, "book_1")
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "book", resp.Suggestions[0].Type)
	assert.Equal(t, "category", resp.Suggestions[1].Type)
	assert.Equal(t, 2, resp.Total)
}
