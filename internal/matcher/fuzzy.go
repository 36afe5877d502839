// Package matcher implements approximate multi-field string matching over an
// in-memory set of searchable records. The working set is rebuilt per call;
// nothing is indexed across calls.
package matcher

import (
	"math"
	"sort"

	"github.com/kailas-cloud/fedsearch/internal/domain/record"
)

// Field identifies a weighted record field.
type Field string

// Matched fields in scan order.
const (
	Title       Field = "title"
	Description Field = "description"
	Content     Field = "content"
	Tags        Field = "tags"
)

// ScanOrder is the order fields are evaluated and reported in.
var ScanOrder = []Field{Title, Description, Content, Tags}

// minFieldDistance keeps an exact field match from zeroing the weighted product.
const minFieldDistance = 1e-6

// Range is a matched rune span [Start, End) within a field value.
type Range struct {
	Start int
	End   int
}

// FieldMatch is one field that matched the query.
type FieldMatch struct {
	Field Field
	// Value is the original field text (the matched tag for Tags).
	Value string
	// TagIndex is the position of the matched tag; -1 for other fields.
	TagIndex int
	// Distance is the normalized field distance in [0,1]; 0 is exact.
	Distance float64
	Ranges   []Range
}

// Match is a record that matched under the threshold.
type Match struct {
	// Index is the record's position in the input slice.
	Index int
	// Score is 1 - weighted distance, in [0,1].
	Score  float64
	Fields []FieldMatch
}

// Matcher is the pluggable matching strategy used by search adapters.
type Matcher interface {
	Match(records []record.Searchable, query string, opts Options) []Match
}

// Fuzzy rebuilds an ephemeral weighted index per call and scores records by
// approximate substring edit distance.
type Fuzzy struct{}

var _ Matcher = Fuzzy{}

// NewFuzzy creates the default matcher.
func NewFuzzy() Fuzzy { return Fuzzy{} }

// Match returns the records matching query, best first; ties keep input order.
// An empty query matches nothing.
func (Fuzzy) Match(records []record.Searchable, query string, opts Options) []Match {
	opts = opts.normalized()
	q := compile(query, opts)
	if q == nil {
		return nil
	}

	weightSum := opts.Weights.sum()
	var matches []Match
	for i := range records {
		rec := &records[i]
		fields := q.matchRecord(rec)
		if len(fields) == 0 {
			continue
		}
		raw := 1.0
		for _, fm := range fields {
			w := opts.Weights.of(fm.Field) / weightSum
			raw *= math.Pow(math.Max(fm.Distance, minFieldDistance), w)
		}
		matches = append(matches, Match{
			Index:  i,
			Score:  clamp01(1 - raw),
			Fields: fields,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// compiledQuery is the folded query plus its tokens.
type compiledQuery struct {
	pattern []rune
	tokens  [][]rune
	opts    Options
}

func compile(query string, opts Options) *compiledQuery {
	pattern := collapse(fold(query))
	if len(pattern) == 0 {
		return nil
	}
	q := &compiledQuery{pattern: pattern, opts: opts}
	if tokens := tokenize(pattern, opts.MinMatchCharLength); len(tokens) > 1 {
		q.tokens = tokens
	}
	return q
}

func (q *compiledQuery) matchRecord(rec *record.Searchable) []FieldMatch {
	var out []FieldMatch
	for _, f := range ScanOrder {
		switch f {
		case Tags:
			if fm, ok := q.matchTags(rec.Tags()); ok {
				out = append(out, fm)
			}
		default:
			value := fieldValue(rec, f)
			if fm, ok := q.matchField(f, value, -1); ok {
				out = append(out, fm)
			}
		}
	}
	return out
}

func fieldValue(rec *record.Searchable, f Field) string {
	switch f {
	case Title:
		return rec.Title()
	case Description:
		return rec.Description()
	case Content:
		return rec.Content()
	default:
		return ""
	}
}

func (q *compiledQuery) matchTags(tags []string) (FieldMatch, bool) {
	var best FieldMatch
	found := false
	for i, tag := range tags {
		fm, ok := q.matchField(Tags, tag, i)
		if ok && (!found || fm.Distance < best.Distance) {
			best, found = fm, true
		}
	}
	return best, found
}

func (q *compiledQuery) matchField(f Field, value string, tagIndex int) (FieldMatch, bool) {
	if value == "" {
		return FieldMatch{}, false
	}
	text := fold(value)
	dist, ranges, ok := q.distance(text)
	if !ok || dist > q.opts.Threshold {
		return FieldMatch{}, false
	}
	return FieldMatch{
		Field:    f,
		Value:    value,
		TagIndex: tagIndex,
		Distance: dist,
		Ranges:   ranges,
	}, true
}

// distance scores text against the query: the better of the whole-pattern
// alignment and the merged per-token alignments.
func (q *compiledQuery) distance(text []rune) (float64, []Range, bool) {
	minLen := q.opts.MinMatchCharLength

	// Query longer than the field: compare whole field.
	if len(q.pattern) > len(text) {
		if len(text) < minLen {
			return 0, nil, false
		}
		d := float64(levenshtein(q.pattern, text)) / float64(len(q.pattern))
		return clamp01(d), []Range{{Start: 0, End: len(text)}}, true
	}

	best, bestRanges, found := 1.0, []Range(nil), false
	if a := align(q.pattern, text); a.span() >= minLen {
		best = float64(a.errors) / float64(len(q.pattern))
		bestRanges = []Range{{Start: a.start, End: a.end}}
		found = true
	}

	if q.tokens != nil && (!found || best > 0) {
		if d, ranges, ok := q.tokenDistance(text); ok && (!found || d < best) {
			best, bestRanges, found = d, ranges, true
		}
	}
	return clamp01(best), bestRanges, found
}

// tokenDistance aligns each token independently. Tokens merge into one match only
// when their starts lie within the configured distance of each other.
func (q *compiledQuery) tokenDistance(text []rune) (float64, []Range, bool) {
	ranges := make([]Range, 0, len(q.tokens))
	total := 0.0
	minStart, maxStart := len(text), 0
	for _, tok := range q.tokens {
		if len(tok) > len(text) {
			return 0, nil, false
		}
		a := align(tok, text)
		if a.span() < q.opts.MinMatchCharLength {
			return 0, nil, false
		}
		total += float64(a.errors) / float64(len(tok))
		minStart = min(minStart, a.start)
		maxStart = max(maxStart, a.start)
		ranges = append(ranges, Range{Start: a.start, End: a.end})
	}
	if maxStart-minStart > q.opts.Distance {
		return 0, nil, false
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return total / float64(len(q.tokens)), ranges, true
}

func clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}
