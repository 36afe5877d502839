package chi

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

type searchRequestBody struct {
	Query          string            `json:"query"`
	Types          []string          `json:"types,omitempty"`
	Filters        map[string]string `json:"filters,omitempty"`
	Limit          int               `json:"limit,omitempty"`
	Offset         int               `json:"offset,omitempty"`
	SortBy         string            `json:"sortBy,omitempty"`
	FuzzyThreshold *float64          `json:"fuzzyThreshold,omitempty"`
}

type searchResponse struct {
	Results   []resultItem `json:"results"`
	Facets    facetsBody   `json:"facets"`
	Total     int          `json:"total"`
	QueryTime float64      `json:"queryTime"` // milliseconds
}

type resultItem struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Score       float64         `json:"relevanceScore"`
	Metadata    result.Metadata `json:"metadata"`
	Highlights  []string        `json:"highlights"`
}

type facetsBody struct {
	Types      map[string]int `json:"types"`
	Categories map[string]int `json:"categories"`
	Tags       map[string]int `json:"tags"`
	DateRanges map[string]int `json:"dateRanges"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type trendingResponse struct {
	Trending []string `json:"trending"`
}

type typesResponse struct {
	Types []string `json:"types"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func responseToDTO(resp result.Response) searchResponse {
	items := make([]resultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToDTO(&resp.Results[i])
	}
	return searchResponse{
		Results:   items,
		Facets:    facetsToDTO(resp.Facets),
		Total:     resp.Total,
		QueryTime: float64(resp.QueryTime) / float64(time.Millisecond),
	}
}

func resultToDTO(r *result.Result) resultItem {
	md := r.Metadata()
	if md == nil {
		md = result.Metadata{}
	}
	highlights := r.Highlights()
	if highlights == nil {
		highlights = []string{}
	}
	return resultItem{
		ID:          r.ID(),
		Type:        r.Type().String(),
		Title:       r.Title(),
		Description: r.Description(),
		URL:         r.URL(),
		Score:       r.Score(),
		Metadata:    md,
		Highlights:  highlights,
	}
}

func facetsToDTO(f result.Facets) facetsBody {
	return facetsBody{
		Types:      nonNilCounts(f.Types),
		Categories: nonNilCounts(f.Categories),
		Tags:       nonNilCounts(f.Tags),
		DateRanges: nonNilCounts(f.DateRanges),
	}
}

func nonNilCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
