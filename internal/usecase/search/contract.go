package search

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// Registry dispatches a per-type search to the adapter registered for it.
type Registry interface {
	// Types returns registered kinds in merge order.
	Types() []entity.Type
	// Search returns ok=false when kind has no adapter.
	Search(
		ctx context.Context, kind entity.Type,
		query string, filters filter.Expression, threshold float64,
	) ([]result.Result, bool)
}
