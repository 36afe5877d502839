// Package adapter turns one entity kind's raw records into ranked search results.
package adapter

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
)

// DefaultCandidateLimit is the per-type fetch ceiling.
const DefaultCandidateLimit = 100

// FetchQuery narrows a provider fetch.
type FetchQuery struct {
	// Limit caps the number of records returned, newest first.
	Limit int
	// Equals holds raw-field equality conditions the provider may apply.
	// Providers that cannot filter ignore it; results are post-filtered anyway.
	Equals map[string]string
}

// Provider supplies raw records for an entity kind.
type Provider interface {
	Fetch(ctx context.Context, kind entity.Type, q FetchQuery) ([]record.Raw, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, kind entity.Type, q FetchQuery) ([]record.Raw, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, kind entity.Type, q FetchQuery) ([]record.Raw, error) {
	return f(ctx, kind, q)
}
