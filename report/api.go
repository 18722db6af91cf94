package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"econwatch/articles"
)

// APIServer exposes stored reports over HTTP for whatever reads the
// processed output (dashboards, the original system's frontend).
type APIServer struct {
	store *FileStore
}

// NewAPIServer creates an API server backed by the given store.
func NewAPIServer(store *FileStore) *APIServer {
	return &APIServer{store: store}
}

// ListArticlesResponse is the body of GET /api/v1/articles.
type ListArticlesResponse struct {
	Articles []articles.Article `json:"articles"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// ErrorResponse wraps an error code and message.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Routes registers the API handlers on the given mux.
func (s *APIServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/articles", s.HandleListArticles)
	mux.HandleFunc("/api/v1/reports/latest", s.HandleLatestReport)
}

// HandleListArticles handles GET /api/v1/articles: every article across all
// stored reports, newest report first, with optional category filter and
// limit/offset pagination.
func (s *APIServer) HandleListArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	reports, err := s.store.List()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list reports: "+err.Error())
		return
	}

	// Newest report's articles first, document order within a report.
	all := []articles.Article{}
	for i := len(reports) - 1; i >= 0; i-- {
		all = append(all, reports[i].Articles...)
	}

	query := r.URL.Query()

	if category := query.Get("category"); category != "" {
		filtered := all[:0]
		for _, item := range all {
			if strings.EqualFold(item.Category, category) {
				filtered = append(filtered, item)
			}
		}
		all = filtered
	}

	total := len(all)

	limit := 50
	if limitParam := query.Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	offset := 0
	if offsetParam := query.Get("offset"); offsetParam != "" {
		parsed, err := strconv.Atoi(offsetParam)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid offset parameter")
			return
		}
		offset = parsed
	}

	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	response := ListArticlesResponse{
		Articles: all[offset:end],
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// HandleLatestReport handles GET /api/v1/reports/latest.
func (s *APIServer) HandleLatestReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	latest, err := s.store.Latest()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load latest report: "+err.Error())
		return
	}
	if latest == nil {
		s.writeError(w, http.StatusNotFound, "not_found", "No reports stored yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(latest)
}

// writeError writes a JSON error response.
func (s *APIServer) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}
