package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/desperati0n/ismism/internal/http/response"
)

// handleListIsms returns the full catalog in file order.
func (s *Server) handleListIsms(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.catalogService.List(), s.logger)
}

// handleGetIsm returns the single entry at an exact code.
func (s *Server) handleGetIsm(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ism, err := s.catalogService.Get(code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, ism, s.logger)
}

// SearchCodeQuery is the query for matching entries against a code,
// where the $ symbol matches any symbol in that position.
type SearchCodeQuery struct {
	Code string `json:"code" validate:"required,ismcode"`
}

// handleSearchByCode returns the entries matching a code query.
func (s *Server) handleSearchByCode(w http.ResponseWriter, r *http.Request) {
	query := SearchCodeQuery{Code: r.URL.Query().Get("code")}
	if err := s.validator.Validate(&query); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	results, err := s.catalogService.SearchByCode(query.Code)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, results, s.logger)
}

// handleKeywordSearch runs a full-text query over entry prose.
func (s *Server) handleKeywordSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "missing q query parameter", s.logger)
		return
	}

	limit := parseIntParam(r, "limit", 20)
	offset := parseIntParam(r, "offset", 0)

	results, err := s.catalogService.SearchByKeyword(r.Context(), query, limit, offset)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, results, s.logger)
}

// parseIntParam reads a non-negative integer query parameter, falling
// back to def on absence or garbage.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
