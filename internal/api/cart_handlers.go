package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JeelMungra28/BookValley/internal/http/response"
)

type addCartItemRequest struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// handleGetCart returns the caller's cart, creating an empty one on first read.
func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartService.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cart, s.logger)
}

// handleAddCartItem adds a book to the caller's cart. Quantity defaults to 1.
func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if req.BookID == "" {
		response.BadRequest(w, "book_id is required", s.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := s.cartService.AddItem(r.Context(), getUserID(r.Context()), req.BookID, req.Quantity)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cart, s.logger)
}

// handleUpdateCartItem replaces the quantity of an item already in the cart.
func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	cart, err := s.cartService.UpdateItemQuantity(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID"), req.Quantity)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cart, s.logger)
}

// handleRemoveCartItem drops a single book from the cart.
func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := s.cartService.RemoveItem(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cart, s.logger)
}

// handleClearCart empties the caller's cart.
func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cartService.Clear(r.Context(), getUserID(r.Context())); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"message": "cart cleared"}, s.logger)
}
