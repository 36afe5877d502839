// Package fixture serves records from a YAML file. Used for local development,
// demos and as the source of the load command.
package fixture

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
)

// Compile-time check: Repo is a record provider.
var _ adapter.Provider = (*Repo)(nil)

// file is the on-disk layout: records grouped by entity type.
type file struct {
	Records map[string][]map[string]any `yaml:"records"`
}

// Repo is an immutable in-memory record set.
type Repo struct {
	records map[entity.Type][]record.Raw
}

// Load reads a fixture file.
func Load(path string) (*Repo, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes fixtures from r. Type names accept the same aliases as search requests.
// Records of each type are kept newest first by created_at; undated records go last.
func Parse(r io.Reader) (*Repo, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	records := make(map[entity.Type][]record.Raw, len(doc.Records))
	for name, items := range doc.Records {
		kind, err := parseKind(name)
		if err != nil {
			return nil, fmt.Errorf("fixtures: %w", err)
		}
		raws := make([]record.Raw, 0, len(items))
		for _, item := range items {
			raws = append(raws, record.Raw(item))
		}
		slices.SortStableFunc(raws, newestFirst)
		records[kind] = append(records[kind], raws...)
	}
	return &Repo{records: records}, nil
}

// Fetch returns up to q.Limit records of kind satisfying q.Equals.
func (r *Repo) Fetch(ctx context.Context, kind entity.Type, q adapter.FetchQuery) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = adapter.DefaultCandidateLimit
	}

	out := make([]record.Raw, 0, min(limit, len(r.records[kind])))
	for _, raw := range r.records[kind] {
		if !matches(raw, q.Equals) {
			continue
		}
		out = append(out, raw)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Records returns every record grouped by type.
func (r *Repo) Records() map[entity.Type][]record.Raw {
	out := make(map[entity.Type][]record.Raw, len(r.records))
	for k, v := range r.records {
		out[k] = slices.Clone(v)
	}
	return out
}

// Len returns the number of records across all types.
func (r *Repo) Len() int {
	n := 0
	for _, v := range r.records {
		n += len(v)
	}
	return n
}

// parseKind accepts singular and plural type names ("event", "events").
func parseKind(name string) (entity.Type, error) {
	kind, err := entity.Parse(name)
	if err == nil {
		return kind, nil
	}
	if singular, ok := strings.CutSuffix(name, "s"); ok {
		if k, perr := entity.Parse(singular); perr == nil {
			return k, nil
		}
	}
	return "", err
}

func newestFirst(a, b record.Raw) int {
	ta, okA := a.Time("created_at")
	tb, okB := b.Time("created_at")
	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func matches(raw record.Raw, equals map[string]string) bool {
	for k, v := range equals {
		if raw.First(k) != v {
			return false
		}
	}
	return true
}
