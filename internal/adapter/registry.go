package adapter

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/matcher"
)

// Registry maps entity kinds to adapters and remembers registration order,
// which is the merge order of federated results.
type Registry struct {
	mu       sync.RWMutex
	order    []entity.Type
	adapters map[entity.Type]*Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[entity.Type]*Adapter)}
}

// NewDefaultRegistry registers an adapter for every spec in DefaultSpecs, all backed by provider.
func NewDefaultRegistry(
	provider Provider, m matcher.Matcher, opts matcher.Options,
	candidateLimit int, logger *zap.Logger,
) *Registry {
	r := NewRegistry()
	for _, spec := range DefaultSpecs() {
		// DefaultSpecs has one spec per kind, so Register cannot fail here.
		_ = r.Register(New(spec, provider, m, opts, candidateLimit, logger))
	}
	return r
}

// Register adds an adapter. Each kind may be registered once.
func (r *Registry) Register(a *Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !a.Type().IsValid() {
		return fmt.Errorf("adapter for unknown entity type %q", a.Type())
	}
	if _, exists := r.adapters[a.Type()]; exists {
		return fmt.Errorf("adapter for %s already registered", a.Type())
	}
	r.adapters[a.Type()] = a
	r.order = append(r.order, a.Type())
	return nil
}

// Get returns the adapter for kind.
func (r *Registry) Get(kind entity.Type) (*Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[kind]
	return a, ok
}

// Types returns registered kinds in registration order.
func (r *Registry) Types() []entity.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Type, len(r.order))
	copy(out, r.order)
	return out
}

// Search runs the adapter registered for kind. ok is false for unregistered kinds.
func (r *Registry) Search(
	ctx context.Context, kind entity.Type,
	query string, filters filter.Expression, threshold float64,
) (results []result.Result, ok bool) {
	a, ok := r.Get(kind)
	if !ok {
		return nil, false
	}
	return a.Search(ctx, query, filters, threshold), true
}
