package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
)

// Suggestion limits.
const (
	DefaultSuggestLimit       = 5
	MaxSuggestLimit           = 20
	DefaultSuggestSearchLimit = 50
	minSuggestLength          = 2
)

// Suggest returns distinct result titles containing partial, in relevance order.
// Inputs shorter than two characters yield nothing. A non-positive limit uses the default.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < minSuggestLength {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.SuggestLimit
	}
	limit = min(limit, MaxSuggestLimit)

	req, err := request.New(request.Params{
		Query:     partial,
		Limit:     s.cfg.SuggestSearchLimit,
		Threshold: s.cfg.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	resp, err := s.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	needle := strings.ToLower(partial)
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for i := range resp.Results {
		title := resp.Results[i].Title()
		if !strings.Contains(strings.ToLower(title), needle) {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Trending returns the configured trending searches. The slice is a fresh copy.
func (s *Service) Trending() []string {
	out := make([]string, len(s.cfg.Trending))
	copy(out, s.cfg.Trending)
	return out
}
