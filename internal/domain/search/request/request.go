package request

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/sortby"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength   = 512
	DefaultLimit     = 20
	MaxLimit         = 100
	DefaultThreshold = 0.3
)

// Params are the raw caller-supplied search parameters.
type Params struct {
	Query     string
	Types     []string
	Filters   map[string]string
	Limit     int
	Offset    int
	SortBy    string
	Threshold *float64
}

// Request is a validated federated search query.
type Request struct {
	query     string
	types     []entity.Type
	filters   filter.Expression
	limit     int
	offset    int
	order     sortby.Order
	threshold float64
}

// New validates and normalizes search parameters.
// Pagination and threshold are clamped; an unknown sort order or type is an error.
func New(p Params) (Request, error) {
	if utf8.RuneCountInString(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}

	order, err := sortby.Parse(p.SortBy)
	if err != nil {
		return Request{}, err
	}

	var types []entity.Type
	if len(p.Types) > 0 {
		types, err = entity.ParseList(p.Types)
		if err != nil {
			return Request{}, err
		}
	}

	filters, err := filter.FromMap(p.Filters)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	return Request{
		query:     p.Query,
		types:     types,
		filters:   filters,
		limit:     limit,
		offset:    offset,
		order:     order,
		threshold: clampThreshold(p.Threshold),
	}, nil
}

func clampThreshold(t *float64) float64 {
	if t == nil || math.IsNaN(*t) {
		return DefaultThreshold
	}
	return math.Min(1, math.Max(0, *t))
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Types returns the requested entity kinds; empty means the configured default set.
func (r *Request) Types() []entity.Type { return r.types }

// Filters returns the post-hoc metadata equality filters.
func (r *Request) Filters() filter.Expression { return r.filters }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the page start.
func (r *Request) Offset() int { return r.offset }

// SortBy returns the result ordering.
func (r *Request) SortBy() sortby.Order { return r.order }

// Threshold returns the fuzzy threshold in [0,1].
func (r *Request) Threshold() float64 { return r.threshold }

// WithTypes returns a copy restricted to the given kinds.
func (r Request) WithTypes(types []entity.Type) Request {
	r.types = types
	return r
}
