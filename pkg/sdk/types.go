package fedsearch

import (
	"context"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// Record is one raw entity record as stored: a JSON-like field map with an "id".
type Record map[string]any

// FetchQuery narrows a provider fetch.
type FetchQuery struct {
	// Limit caps the number of records returned.
	Limit int
	// Equals holds exact-match conditions the provider may apply. Applying them is optional.
	Equals map[string]string
}

// Provider supplies raw records of one entity type, newest first.
type Provider interface {
	Fetch(ctx context.Context, kind string, q FetchQuery) ([]Record, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, kind string, q FetchQuery) ([]Record, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, kind string, q FetchQuery) ([]Record, error) {
	return f(ctx, kind, q)
}

// SearchRequest is a federated search query. Zero values take defaults.
type SearchRequest struct {
	Query          string
	Types          []string
	Filters        map[string]string
	Limit          int
	Offset         int
	SortBy         string   // relevance (default), date or title
	FuzzyThreshold *float64 // nil uses the client default
}

// SearchResponse is one page of results plus facets over the whole match set.
type SearchResponse struct {
	Results   []Result
	Facets    Facets
	Total     int
	QueryTime time.Duration
}

// Result is one matched record.
type Result struct {
	ID             string
	Type           string
	Title          string
	Description    string
	URL            string
	RelevanceScore float64
	Metadata       map[string]any
	Highlights     []string
}

// Facets are frequency tables keyed by value.
type Facets struct {
	Types      map[string]int
	Categories map[string]int
	Tags       map[string]int
	DateRanges map[string]int
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

func responseFromDomain(resp result.Response) *SearchResponse {
	results := make([]Result, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		results[i] = Result{
			ID:             r.ID(),
			Type:           r.Type().String(),
			Title:          r.Title(),
			Description:    r.Description(),
			URL:            r.URL(),
			RelevanceScore: r.Score(),
			Metadata:       r.Metadata(),
			Highlights:     r.Highlights(),
		}
	}
	return &SearchResponse{
		Results: results,
		Facets: Facets{
			Types:      resp.Facets.Types,
			Categories: resp.Facets.Categories,
			Tags:       resp.Facets.Tags,
			DateRanges: resp.Facets.DateRanges,
		},
		Total:     resp.Total,
		QueryTime: resp.QueryTime,
	}
}

// providerAdapter exposes a public Provider as the internal adapter.Provider.
type providerAdapter struct {
	inner Provider
}

func (p providerAdapter) Fetch(ctx context.Context, kind entity.Type, q adapter.FetchQuery) ([]record.Raw, error) {
	recs, err := p.inner.Fetch(ctx, kind.String(), FetchQuery{Limit: q.Limit, Equals: q.Equals})
	if err != nil {
		return nil, err
	}
	raws := make([]record.Raw, len(recs))
	for i, r := range recs {
		raws[i] = record.Raw(r)
	}
	return raws, nil
}
