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
	"github.com/JeelMungra28/BookValley/internal/validation"
)

// validate is the shared request validator for the service layer.
var validate = validation.New()

// CatalogService manages the book and category catalog. Reads are public;
// writes come from admin flows only (enforced at the HTTP layer).
type CatalogService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// CreateBookRequest contains the data for a new catalog book.
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Author      string  `json:"author" validate:"required,max=200"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	CoverImage  string  `json:"cover_image" validate:"omitempty,url"`
	Available   *bool   `json:"available"` // nil means available
	Stock       int     `json:"stock" validate:"gte=0"`
}

// UpdateBookRequest carries a partial book update. Nil fields are left
// untouched, so a PATCH body only names what it changes.
type UpdateBookRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=500"`
	Author      *string  `json:"author" validate:"omitempty,max=200"`
	CategoryID  *string  `json:"category_id"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	CoverImage  *string  `json:"cover_image"`
	Available   *bool    `json:"available"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// CreateCategoryRequest contains the data for a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// ListBooks returns a page of the catalog in storage order.
func (s *CatalogService) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Book], error) {
	result, err := s.store.ListBooks(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			return nil, domainerrors.Validation("invalid pagination cursor")
		}
		return nil, fmt.Errorf("list books: %w", err)
	}
	return result, nil
}

// GetBook returns a single book.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// CreateBook adds a book to the catalog.
func (s *CatalogService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domainerrors.Validation("category does not exist")
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	book := &domain.Book{
		ID:          bookID,
		Title:       req.Title,
		Author:      req.Author,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Price:       req.Price,
		CoverImage:  req.CoverImage,
		Available:   available,
		Stock:       req.Stock,
		CreatedAt:   time.Now(),
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	return book, nil
}

// UpdateBook applies a partial update to a book.
func (s *CatalogService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, store.ErrCategoryNotFound) {
				return nil, domainerrors.Validation("category does not exist")
			}
			return nil, fmt.Errorf("check category: %w", err)
		}
		book.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.CoverImage != nil {
		book.CoverImage = *req.CoverImage
	}
	if req.Available != nil {
		book.Available = *req.Available
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// DeleteBook removes a book from the catalog. Carts and wishlists keep
// their references; resolution treats them as gone.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// ListCategories returns all categories with book counts computed from the
// live catalog at read time.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.store.AllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	for _, category := range categories {
		count, err := s.store.CountBooksByCategory(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("count books: %w", err)
		}
		category.BookCount = count
	}

	return categories, nil
}

// GetCategory returns a single category with its computed book count.
func (s *CatalogService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	count, err := s.store.CountBooksByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	category.BookCount = count

	return category, nil
}

// CreateCategory adds a new category. Names are unique case-insensitively.
func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	categoryID, err := id.Generate("cat")
	if err != nil {
		return nil, fmt.Errorf("generate category ID: %w", err)
	}

	now := time.Now()
	category := &domain.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicateCategory) {
			return nil, domainerrors.AlreadyExists("category name already in use")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}
