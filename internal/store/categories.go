package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeelMungra28/BookValley/internal/domain"
)

// CreateCategory stores a new category.
// The unique name index rejects duplicates regardless of letter case.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.Categories.Create(ctx, category.ID, category); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("create category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("category created", "id", category.ID, "name", category.Name)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.Categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by name, case-insensitively.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.Categories.GetByIndex(ctx, "name", name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return category, nil
}

// UpdateCategory updates an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := s.Categories.Update(ctx, category.ID, category); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrCategoryNotFound
		}
		if errors.Is(err, ErrAlreadyExists) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("update category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("category updated", "id", category.ID)
	}
	return nil
}

// DeleteCategory removes a category. Books keep their CategoryID; a missing
// category simply stops resolving.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("category deleted", "id", id)
	}
	return nil
}

// AllCategories returns every category in key order.
func (s *Store) AllCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.Categories.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
