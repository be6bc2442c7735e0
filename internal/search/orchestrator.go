// internal/search/orchestrator.go

// Package search coordinates a full product search: location resolution,
// intent extraction, marketplace discovery, fan-out fetching, normalization,
// vendor enrichment, summary and history.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"price-scout/internal/common/config"
	apperrors "price-scout/internal/common/errors"
	"price-scout/internal/common/logger"
	"price-scout/internal/common/metrics"
	"price-scout/internal/common/observability"
	"price-scout/internal/discovery"
	"price-scout/internal/fetch"
	"price-scout/internal/intent"
	"price-scout/internal/location"
	"price-scout/internal/models"
	"price-scout/internal/normalize"
	"price-scout/internal/vendor"
)

// Deps collects the orchestrator's collaborators. History and Obs may be nil;
// recording is then skipped.
type Deps struct {
	Config     config.SearchConfig
	Resolver   *location.Resolver
	Extractor  intent.Extractor
	Discovery  *discovery.Service
	Fetchers   []fetch.Fetcher
	Normalizer *normalize.Normalizer
	Enricher   *vendor.Enricher
	Summarizer *Summarizer
	History    *HistoryStore
	Obs        *observability.Observability
	AIModel    string
	Logger     logger.Logger
}

type Orchestrator struct {
	deps   Deps
	logger logger.Logger
}

func NewOrchestrator(deps Deps) *Orchestrator {
	return &Orchestrator{
		deps:   deps,
		logger: deps.Logger.WithFields(map[string]interface{}{"component": "search"}),
	}
}

// fetchOutcome is one fetcher's contribution to a search.
type fetchOutcome struct {
	fetcher  string
	listings []fetch.RawListing
	err      error
}

// Search runs the full pipeline for one query.
func (o *Orchestrator) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if len(query) < 2 {
		return nil, apperrors.NewQueryTooShortError(req.Query)
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = models.DefaultMaxResults
	}

	start := time.Now()
	loc := o.deps.Resolver.Resolve(query)

	productIntent, err := o.deps.Extractor.Extract(ctx, query, loc)
	if err != nil {
		return nil, apperrors.NewIntentParsingFailedError(err)
	}

	if !productIntent.Searchable {
		resp := o.unsearchableResponse(query)
		o.record(ctx, query, 0)
		o.observe(ctx, start, "unsearchable")
		return resp, nil
	}

	region := o.deps.Resolver.RegionFor(loc)
	sources := o.deps.Discovery.Discover(ctx, productIntent.Category, region, "")

	raw := o.fanOut(ctx, productIntent, loc)

	results := o.deps.Normalizer.Normalize(raw, productIntent, loc, time.Now())
	o.deps.Enricher.Enrich(results, loc)

	// Cheapest first; price-on-request entries sort after everything priced.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PriceOnRequest != results[j].PriceOnRequest {
			return !results[i].PriceOnRequest
		}
		return results[i].Price < results[j].Price
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	resp := &models.SearchResponse{
		Success:      true,
		Query:        query,
		Response:     o.deps.Summarizer.Summarize(query, results, loc),
		Results:      results,
		ResultsCount: len(results),
		AIModel:      o.deps.AIModel,
		DataSources:  sources,
	}
	if len(results) == 0 {
		resp.Message = "No live listings found. Results are never estimated; try refining the query."
	}

	o.record(ctx, query, len(results))
	o.observe(ctx, start, outcomeLabel(len(results)))

	o.logger.Info("search completed", map[string]interface{}{
		"query":    query,
		"results":  len(results),
		"location": loc.Country,
		"tookMs":   time.Since(start).Milliseconds(),
	})
	return resp, nil
}

// fanOut runs every available fetcher concurrently with a per-fetcher
// deadline. A failing fetcher contributes zero listings; it never fails the
// search.
func (o *Orchestrator) fanOut(ctx context.Context, productIntent models.ProductIntent, loc models.LocationContext) []fetch.RawListing {
	timeout := config.GetDuration(o.deps.Config.FetchTimeout)

	outcomes := make(chan fetchOutcome, len(o.deps.Fetchers))
	var wg sync.WaitGroup

	for _, f := range o.deps.Fetchers {
		if !f.Available() {
			o.logger.Debug("fetcher skipped, not configured", map[string]interface{}{
				"fetcher": f.Name(),
			})
			continue
		}

		wg.Add(1)
		go func(f fetch.Fetcher) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			metrics.FetchersActive.WithLabelValues(f.Name()).Inc()
			defer metrics.FetchersActive.WithLabelValues(f.Name()).Dec()

			listings, err := f.Fetch(fetchCtx, productIntent, loc)
			outcomes <- fetchOutcome{fetcher: f.Name(), listings: listings, err: err}
		}(f)
	}

	wg.Wait()
	close(outcomes)

	merged := []fetch.RawListing{}
	for out := range outcomes {
		if out.err != nil {
			metrics.FetcherFailures.WithLabelValues(out.fetcher, "FETCH_FAILED").Inc()
			o.logger.WithError(out.err).Warn("fetcher failed, continuing without it", map[string]interface{}{
				"fetcher": out.fetcher,
			})
			continue
		}
		metrics.FetcherResults.WithLabelValues(out.fetcher).Add(float64(len(out.listings)))
		merged = append(merged, out.listings...)
	}
	return merged
}

func (o *Orchestrator) unsearchableResponse(query string) *models.SearchResponse {
	return &models.SearchResponse{
		Success:      false,
		Query:        query,
		Message:      "Search Unavailable",
		Response: fmt.Sprintf(
			"## Search Unavailable\n\n**%s** does not look like a product search. Try queries like:\n\n- \"laptop price in mumbai\"\n- \"wireless headphones under 5000\"\n- \"basmati rice wholesale\"",
			query,
		),
		Results:      []models.ProductResult{},
		ResultsCount: 0,
		AIModel:      o.deps.AIModel,
		DataSources:  []models.DataSource{},
	}
}

func (o *Orchestrator) record(ctx context.Context, query string, resultsCount int) {
	if o.deps.History == nil {
		return
	}
	if _, err := o.deps.History.Record(ctx, query, resultsCount); err != nil {
		// History is best-effort; the search result still stands.
		o.logger.WithError(err).Error("failed to record search history", map[string]interface{}{
			"query": query,
		})
	}
}

func (o *Orchestrator) observe(ctx context.Context, start time.Time, outcome string) {
	elapsed := time.Since(start)
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if o.deps.Obs != nil {
		o.deps.Obs.RecordSearchProcessed(ctx, outcome)
		o.deps.Obs.RecordSearchDuration(ctx, elapsed, outcome)
	}
}

func outcomeLabel(results int) string {
	if results == 0 {
		return "empty"
	}
	return "ok"
}

// RecentSearches returns the latest history entries, newest first.
func (o *Orchestrator) RecentSearches(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error) {
	if o.deps.History == nil {
		return []models.SearchHistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = o.deps.Config.HistoryLimit
	}
	entries, err := o.deps.History.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewHistoryReadFailedError(err)
	}
	return entries, nil
}
