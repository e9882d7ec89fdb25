package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/JeelMungra28/BookValley/internal/errors"
	"github.com/JeelMungra28/BookValley/internal/http/response"
)

type addWishlistRequest struct {
	BookID string `json:"book_id"`
}

// handleGetWishlist returns the caller's wishlist, newest additions first.
func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.wishlistService.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, entries, s.logger)
}

// handleAddWishlistEntry adds a book to the caller's wishlist. Duplicate adds
// surface as 400, matching the API contract rather than the generic conflict
// status.
func (s *Server) handleAddWishlistEntry(w http.ResponseWriter, r *http.Request) {
	var req addWishlistRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.BookID == "" {
		response.BadRequest(w, "book_id is required", s.logger)
		return
	}

	entry, err := s.wishlistService.Add(r.Context(), getUserID(r.Context()), req.BookID)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
			response.BadRequest(w, "Book is already in wishlist", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, entry, s.logger)
}

// handleRemoveWishlistEntry removes a book from the caller's wishlist.
func (s *Server) handleRemoveWishlistEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.wishlistService.Remove(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"message": "removed from wishlist"}, s.logger)
}

// handleCheckWishlist reports whether a book is in the caller's wishlist.
func (s *Server) handleCheckWishlist(w http.ResponseWriter, r *http.Request) {
	inWishlist, err := s.wishlistService.Check(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]bool{"in_wishlist": inWishlist}, s.logger)
}
