package chi

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// SearchService is the search use case surface the HTTP API needs.
type SearchService interface {
	Search(ctx context.Context, req *request.Request) (result.Response, error)
	Suggest(ctx context.Context, partial string, limit int) ([]string, error)
	Trending() []string
	Types() []entity.Type
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
