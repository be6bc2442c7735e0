// internal/models/search.go
package models

import "time"

// SearchRequest is the inbound /search payload. Transient, one per HTTP call.
type SearchRequest struct {
	Query      string `json:"query" validate:"required,min=2"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=100"`
}

// DefaultMaxResults applies when the client omits max_results.
const DefaultMaxResults = 50

// SearchResponse is the full /search reply consumed by the dashboard.
type SearchResponse struct {
	Success      bool            `json:"success"`
	Query        string          `json:"query"`
	Message      string          `json:"message,omitempty"`
	Response     string          `json:"response"`
	Results      []ProductResult `json:"results"`
	ResultsCount int             `json:"results_count"`
	AIModel      string          `json:"ai_model"`
	DataSources  []DataSource    `json:"data_sources"`
}

// SearchHistoryEntry is the append-only log row written per completed search.
// Rows are never updated or deleted through the API.
type SearchHistoryEntry struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// SuggestionRequest feeds the similar-products and smart-recommendations
// endpoints.
type SuggestionRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// SuggestionResponse carries AI-derived product suggestions. Available is
// false when the AI backend could not be reached; suggestions are then empty
// rather than invented.
type SuggestionResponse struct {
	Success     bool     `json:"success"`
	Available   bool     `json:"available"`
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}
