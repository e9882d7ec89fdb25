package api

import (
	"net/http"

	"github.com/JeelMungra28/BookValley/internal/http/response"
)

// handleSearch runs a catalog search over books and categories.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, results, s.logger)
}
