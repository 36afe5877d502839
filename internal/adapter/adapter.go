package adapter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/highlight"
	"github.com/kailas-cloud/fedsearch/internal/matcher"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
)

// Adapter searches a single entity kind.
type Adapter struct {
	spec           Spec
	provider       Provider
	matcher        matcher.Matcher
	opts           matcher.Options
	candidateLimit int
	pushdown       map[string]struct{}
	logger         *zap.Logger
}

// New creates an adapter. A non-positive candidateLimit falls back to DefaultCandidateLimit.
func New(
	spec Spec, provider Provider, m matcher.Matcher,
	opts matcher.Options, candidateLimit int, logger *zap.Logger,
) *Adapter {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pushdown := make(map[string]struct{}, len(spec.PushdownFields))
	for _, f := range spec.PushdownFields {
		pushdown[f] = struct{}{}
	}
	return &Adapter{
		spec:           spec,
		provider:       provider,
		matcher:        m,
		opts:           opts,
		candidateLimit: candidateLimit,
		pushdown:       pushdown,
		logger:         logger,
	}
}

// Type returns the entity kind this adapter serves.
func (a *Adapter) Type() entity.Type { return a.spec.Type }

// Search fetches candidates, matches them against query and maps hits to results
// ordered by relevance. Provider failures, panics included, are logged and yield no results.
func (a *Adapter) Search(
	ctx context.Context, query string, filters filter.Expression, threshold float64,
) (out []result.Result) {
	kind := a.spec.Type.String()
	defer func() {
		if rv := recover(); rv != nil {
			metrics.AdapterFailuresTotal.WithLabelValues(kind).Inc()
			a.logger.Error("Adapter search panicked",
				zap.String("type", kind),
				zap.Any("panic", rv),
				zap.Stack("stack"),
			)
			out = []result.Result{}
		}
	}()

	start := time.Now()
	raws, err := a.provider.Fetch(ctx, a.spec.Type, FetchQuery{
		Limit:  a.candidateLimit,
		Equals: filters.Subset(a.pushdown),
	})
	metrics.AdapterFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AdapterFailuresTotal.WithLabelValues(kind).Inc()
		a.logger.Warn("Record provider fetch failed",
			zap.String("type", kind),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return []result.Result{}
	}
	if len(raws) > a.candidateLimit {
		raws = raws[:a.candidateLimit]
	}

	records := make([]record.Searchable, 0, len(raws))
	for _, raw := range raws {
		rec, ok := Normalize(a.spec, raw)
		if !ok {
			a.logger.Debug("Skipping record without id", zap.String("type", kind))
			continue
		}
		records = append(records, rec)
	}

	matches := a.matcher.Match(records, query, a.opts.WithThreshold(threshold))
	metrics.AdapterMatchesTotal.WithLabelValues(kind).Add(float64(len(matches)))

	out = make([]result.Result, 0, len(matches))
	for _, m := range matches {
		out = append(out, a.toResult(&records[m.Index], m, query))
	}
	return out
}

func (a *Adapter) toResult(rec *record.Searchable, m matcher.Match, query string) result.Result {
	url := ""
	if a.spec.URL != nil {
		url = a.spec.URL(rec.ID(), rec.Raw())
	}
	return result.New(
		rec.ID(), rec.Kind(),
		rec.Title(), rec.Description(), url,
		m.Score, metadataFor(a.spec, rec), highlight.Extract(m.Fields, query),
	)
}
