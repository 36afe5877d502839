package fedsearch

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, req *request.Request) (result.Response, error)
	suggestFn func(ctx context.Context, partial string, limit int) ([]string, error)
	trending  []string
	types     []entity.Type
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Response, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	return m.suggestFn(ctx, partial, limit)
}

func (m *mockSearchUC) Trending() []string { return m.trending }

func (m *mockSearchUC) Types() []entity.Type { return m.types }

// --- recordWriter mock ---

type mockWriter struct {
	putFn    func(ctx context.Context, kind entity.Type, raws []record.Raw) (int, error)
	deleteFn func(ctx context.Context, kind entity.Type, id string) error
}

func (m *mockWriter) PutMany(ctx context.Context, kind entity.Type, raws []record.Raw) (int, error) {
	return m.putFn(ctx, kind, raws)
}

func (m *mockWriter) Delete(ctx context.Context, kind entity.Type, id string) error {
	return m.deleteFn(ctx, kind, id)
}

// staticProvider serves fixed records per type.
func staticProvider(records map[string][]Record) Provider {
	return ProviderFunc(func(_ context.Context, kind string, q FetchQuery) ([]Record, error) {
		recs := records[kind]
		if q.Limit > 0 && len(recs) > q.Limit {
			recs = recs[:q.Limit]
		}
		return recs, nil
	})
}
