package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JeelMungra28/BookValley/internal/http/response"
	"github.com/JeelMungra28/BookValley/internal/service"
	"github.com/JeelMungra28/BookValley/internal/store"
)

// handleListBooks returns a page of the catalog.
// Query params: limit (default 20, max 100) and cursor (opaque).
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	params := store.DefaultPaginationParams()

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter", s.logger)
			return
		}
		params.Limit = limit
	}
	params.Cursor = r.URL.Query().Get("cursor")

	page, err := s.catalogService.ListBooks(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, page, s.logger)
}

// handleGetBook returns a single book.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.catalogService.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleCreateBook adds a book to the catalog. Admin only.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.catalogService.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleUpdateBook applies a partial update. Only fields present in the
// body are touched. Admin only.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.catalogService.UpdateBook(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleDeleteBook removes a book from the catalog. Admin only.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogService.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"message": "book deleted"}, s.logger)
}
