// internal/search/history.go
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"price-scout/internal/common/database"
	"price-scout/internal/common/logger"
	"price-scout/internal/models"
)

// HistoryStore persists completed searches. The log is append-only; rows are
// never updated or deleted through the API.
type HistoryStore struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewHistoryStore(db *database.PostgresClient, log logger.Logger) *HistoryStore {
	return &HistoryStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "history"}),
	}
}

// Record inserts one history row and returns the stored entry.
func (s *HistoryStore) Record(ctx context.Context, query string, resultsCount int) (*models.SearchHistoryEntry, error) {
	entry := &models.SearchHistoryEntry{
		ID:           uuid.NewString(),
		Query:        query,
		ResultsCount: resultsCount,
		Timestamp:    time.Now().UTC(),
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO search_history (id, query, results_count, created_at) VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Query, entry.ResultsCount, entry.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert search history: %w", err)
	}
	return entry, nil
}

// Recent returns the latest entries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, query, results_count, created_at FROM search_history ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	defer rows.Close()

	entries := []models.SearchHistoryEntry{}
	for rows.Next() {
		var e models.SearchHistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.ResultsCount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan search history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search history rows: %w", err)
	}
	return entries, nil
}
