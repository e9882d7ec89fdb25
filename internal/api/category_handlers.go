package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JeelMungra28/BookValley/internal/http/response"
	"github.com/JeelMungra28/BookValley/internal/service"
)

// handleListCategories returns all categories with live book counts.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalogService.ListCategories(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, categories, s.logger)
}

// handleGetCategory returns a single category with its live book count.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.catalogService.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, category, s.logger)
}

// handleCreateCategory adds a new category. Admin only.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	category, err := s.catalogService.CreateCategory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, category, s.logger)
}
