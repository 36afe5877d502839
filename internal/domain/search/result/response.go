package result

import "time"

// Response is one page of a federated search.
type Response struct {
	Results   []Result
	Facets    Facets
	Total     int
	QueryTime time.Duration
}

// Empty returns a well-formed response with no results.
func Empty(elapsed time.Duration) Response {
	return Response{
		Results:   []Result{},
		Facets:    NewFacets(),
		QueryTime: elapsed,
	}
}
