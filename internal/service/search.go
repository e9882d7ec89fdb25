package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JeelMungra28/BookValley/internal/domain"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// Result caps. Search is a storefront quick-search, not a browse surface;
// clients wanting more use the paginated catalog listing.
const (
	maxBookResults       = 10
	maxCategoryResults   = 5
	maxSuggestionResults = 5
)

// SearchService implements case-insensitive substring search over the
// catalog. Matching scans documents in storage order; the catalog is small
// enough that a linear scan beats maintaining a parallel index.
type SearchService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// Suggestion is a typed search suggestion for autocomplete clients.
type Suggestion struct {
	Type  string `json:"type"` // "book" or "category"
	Title string `json:"title"`
	ID    string `json:"id"`
}

// SearchResponse bundles all result groups for a single query.
type SearchResponse struct {
	Books       []*domain.Book     `json:"books"`
	Categories  []*domain.Category `json:"categories"`
	Suggestions []Suggestion       `json:"suggestions"`
	Total       int                `json:"total"`
}

// emptyResponse returns a response with empty (non-nil) result groups.
func emptyResponse() *SearchResponse {
	return &SearchResponse{
		Books:       []*domain.Book{},
		Categories:  []*domain.Category{},
		Suggestions: []Suggestion{},
	}
}

// Search runs a substring query against books and categories.
// A blank query returns empty groups without touching the store.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResponse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return emptyResponse(), nil
	}

	resp := emptyResponse()

	for book, err := range s.store.Books.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan books: %w", err)
		}
		if len(resp.Books) >= maxBookResults {
			break
		}
		if containsFold(book.Title, q) || containsFold(book.Author, q) || containsFold(book.Description, q) {
			resp.Books = append(resp.Books, book)
		}
	}

	for category, err := range s.store.Categories.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan categories: %w", err)
		}
		if len(resp.Categories) >= maxCategoryResults {
			break
		}
		if containsFold(category.Name, q) || containsFold(category.Description, q) {
			resp.Categories = append(resp.Categories, category)
		}
	}

	// Book suggestions first, then categories, truncated as a whole.
	for _, book := range resp.Books {
		if len(resp.Suggestions) >= maxSuggestionResults {
			break
		}
		resp.Suggestions = append(resp.Suggestions, Suggestion{Type: "book", Title: book.Title, ID: book.ID})
	}
	for _, category := range resp.Categories {
		if len(resp.Suggestions) >= maxSuggestionResults {
			break
		}
		resp.Suggestions = append(resp.Suggestions, Suggestion{Type: "category", Title: category.Name, ID: category.ID})
	}

	resp.Total = len(resp.Books) + len(resp.Categories)

	if s.logger != nil {
		s.logger.Debug("search executed",
			"query", q,
			"books", len(resp.Books),
			"categories", len(resp.Categories),
		)
	}
	return resp, nil
}

// containsFold reports whether s contains the already-lowercased substr.
func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
