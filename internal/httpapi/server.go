// internal/httpapi/server.go

// Package httpapi exposes the search service under /api.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"price-scout/internal/common/config"
	apperrors "price-scout/internal/common/errors"
	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// Searcher is the orchestrator surface the API depends on.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
	RecentSearches(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error)
}

// Suggester produces AI suggestion lists.
type Suggester interface {
	SimilarProducts(ctx context.Context, query string, limit int) models.SuggestionResponse
	SmartRecommendations(ctx context.Context, query string, limit int) models.SuggestionResponse
}

type Server struct {
	cfg       *config.Config
	searcher  Searcher
	suggester Suggester
	aiModel   string
	validate  *validator.Validate
	router    *mux.Router
	logger    logger.Logger
}

func NewServer(cfg *config.Config, searcher Searcher, suggester Suggester, aiModel string, log logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		searcher:  searcher,
		suggester: suggester,
		aiModel:   aiModel,
		validate:  validator.New(),
		logger:    log.WithFields(map[string]interface{}{"component": "httpapi"}),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.corsMiddleware)

	api.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/recent-searches", s.handleRecentSearches).Methods(http.MethodGet)
	api.HandleFunc("/similar-products", s.handleSimilarProducts).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/smart-recommendations", s.handleSmartRecommendations).Methods(http.MethodPost, http.MethodOptions)

	return r
}

// ==========================
// Handlers
// ==========================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"message": fmt.Sprintf("%s API", s.cfg.App.Name),
		"version": s.cfg.App.Version,
		"endpoints": []string{
			"GET /api/health",
			"POST /api/search",
			"GET /api/recent-searches",
			"POST /api/similar-products",
			"POST /api/smart-recommendations",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"model":  s.aiModel,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		s.writeSearchError(w, req.Query, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := s.searcher.RecentSearches(r.Context(), limit)
	if err != nil {
		s.logger.WithError(err).Error("recent searches failed", nil)
		s.writeError(w, http.StatusInternalServerError, "failed to load search history")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"searches": entries,
	})
}

func (s *Server) handleSimilarProducts(w http.ResponseWriter, r *http.Request) {
	s.handleSuggestion(w, r, s.suggester.SimilarProducts)
}

func (s *Server) handleSmartRecommendations(w http.ResponseWriter, r *http.Request) {
	s.handleSuggestion(w, r, s.suggester.SmartRecommendations)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, int) models.SuggestionResponse) {
	var req models.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}
	s.writeJSON(w, http.StatusOK, fn(r.Context(), req.Query, limit))
}

// ==========================
// Middleware and Helpers
// ==========================

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.cfg.Server.AllowedOrigins) > 0 {
			origin = s.cfg.Server.AllowedOrigins[0]
			for _, allowed := range s.cfg.Server.AllowedOrigins {
				if allowed == "*" || allowed == r.Header.Get("Origin") {
					origin = allowed
					break
				}
			}
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeSearchError(w http.ResponseWriter, query string, err error) {
	var stdErr *apperrors.StandardError
	status := http.StatusInternalServerError
	message := "search failed"

	if errors.As(err, &stdErr) {
		message = stdErr.Message
		switch stdErr.Code {
		case apperrors.ErrCodeQueryTooShort, apperrors.ErrCodeInvalidRequest:
			status = http.StatusBadRequest
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("search failed", map[string]interface{}{"query": query})
	}

	s.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"query":   query,
		"error":   message,
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}
