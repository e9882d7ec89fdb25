// Package main provides a tool to seed the database with a sample catalog.
//
// Usage:
//
//	DB_PATH=~/bookvalley/db go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/JeelMungra28/BookValley/internal/domain"
	domainerrors "github.com/JeelMungra28/BookValley/internal/errors"
	"github.com/JeelMungra28/BookValley/internal/id"
	"github.com/JeelMungra28/BookValley/internal/store"
)

type seedBook struct {
	title       string
	author      string
	category    string
	description string
	price       float64
	stock       int
}

var seedCategories = []struct {
	name        string
	description string
}{
	{"Science Fiction", "Futures near and far"},
	{"Fantasy", "Dragons, quests, and forgotten kingdoms"},
	{"Non-Fiction", "Essays, history, and science"},
}

var seedBooks = []seedBook{
	{"Dune", "Frank Herbert", "Science Fiction", "Politics and prophecy on a desert planet.", 12.50, 8},
	{"Hyperion", "Dan Simmons", "Science Fiction", "Seven pilgrims, seven stories.", 14.00, 5},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", "An envoy on a winter world.", 11.25, 3},
	{"The Name of the Wind", "Patrick Rothfuss", "Fantasy", "The making of a legend, told by himself.", 13.75, 6},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", "Fantasy", "A young wizard chases his own shadow.", 9.99, 10},
	{"The Making of the Atomic Bomb", "Richard Rhodes", "Non-Fiction", "The definitive history.", 19.50, 2},
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/bookvalley/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now()

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, c := range seedCategories {
		if existing, err := s.GetCategoryByName(ctx, c.name); err == nil {
			categoryIDs[c.name] = existing.ID
			fmt.Printf("Category %q already present\n", c.name)
			continue
		}

		categoryID, err := id.Generate("cat")
		if err != nil {
			log.Fatalf("Failed to generate category ID: %v", err)
		}

		category := &domain.Category{
			ID:          categoryID,
			Name:        c.name,
			Description: c.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.CreateCategory(ctx, category); err != nil {
			log.Fatalf("Failed to create category %q: %v", c.name, err)
		}

		categoryIDs[c.name] = categoryID
		fmt.Printf("Created category %q\n", c.name)
	}

	created := 0
	for _, b := range seedBooks {
		bookID, err := id.Generate("book")
		if err != nil {
			log.Fatalf("Failed to generate book ID: %v", err)
		}

		book := &domain.Book{
			ID:          bookID,
			Title:       b.title,
			Author:      b.author,
			CategoryID:  categoryIDs[b.category],
			Description: b.description,
			Price:       b.price,
			Available:   b.stock > 0,
			Stock:       b.stock,
			CreatedAt:   now,
		}
		if err := s.CreateBook(ctx, book); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				continue
			}
			log.Fatalf("Failed to create book %q: %v", b.title, err)
		}
		created++
	}

	fmt.Printf("Seeded %d books across %d categories\n", created, len(categoryIDs))
}
