// Package domain contains the core business entities and domain logic for the BookValley storefront.
package domain

import "time"

// Book represents a rentable book in the catalog.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CategoryID  string    `json:"category_id"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Available   bool      `json:"available"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary returns the subset of book fields embedded in cart and wishlist views.
func (b *Book) Summary() BookSummary {
	return BookSummary{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		CoverImage: b.CoverImage,
		Price:      b.Price,
	}
}

// BookSummary is the denormalized book projection used when resolving
// cart items and wishlist entries for clients.
type BookSummary struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage string  `json:"cover_image,omitempty"`
	Price      float64 `json:"price"`
}
