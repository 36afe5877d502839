package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	domrec "github.com/kailas-cloud/fedsearch/internal/domain/record"
)

// scanFactor bounds how many index entries Fetch may walk per requested record
// when Equals filters reject candidates.
const scanFactor = 10

// store is the consumer interface for records (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	SetMulti(ctx context.Context, items []db.KVItem) error
	Del(ctx context.Context, keys ...string) error
	ZAdd(ctx context.Context, key string, members ...db.ScoredMember) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZCard(ctx context.Context, key string) (int64, error)
	ZRem(ctx context.Context, key string, members ...string) error
}

// Compile-time check: Repo is a record provider.
var _ adapter.Provider = (*Repo)(nil)

// Repo stores raw records as JSON strings with a per-type recency index.
type Repo struct {
	store  store
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a record repository. prefix namespaces every key.
func New(s store, prefix string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, prefix: prefix, logger: logger, now: time.Now}
}

// Fetch returns up to q.Limit records of kind, newest first, that satisfy q.Equals.
func (r *Repo) Fetch(ctx context.Context, kind entity.Type, q adapter.FetchQuery) ([]domrec.Raw, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = adapter.DefaultCandidateLimit
	}
	maxScan := int64(limit * scanFactor)
	page := int64(limit)
	idx := r.indexKey(kind)

	out := make([]domrec.Raw, 0, limit)
	for start := int64(0); start < maxScan && len(out) < limit; {
		stop := min(start+page, maxScan) - 1
		ids, err := r.store.ZRevRange(ctx, idx, start, stop)
		if err != nil {
			return nil, fmt.Errorf("%w: zrange %s: %w", domain.ErrProviderUnavailable, idx, err)
		}

		raws, err := r.load(ctx, kind, ids)
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			if !matchesEquals(raw, q.Equals) {
				continue
			}
			out = append(out, raw)
			if len(out) == limit {
				break
			}
		}

		// A short page means the index is exhausted.
		if int64(len(ids)) < stop-start+1 {
			break
		}
		start = stop + 1
	}
	return out, nil
}

// load MGETs bodies for ids, skipping stale index entries and corrupt bodies.
func (r *Repo) load(ctx context.Context, kind entity.Type, ids []string) ([]domrec.Raw, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(kind, id)
	}
	bodies, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: mget %s: %w", domain.ErrProviderUnavailable, kind, err)
	}

	out := make([]domrec.Raw, 0, len(ids))
	for i, body := range bodies {
		if body == nil {
			continue
		}
		raw, err := decode(body)
		if err != nil {
			r.logger.Warn("Skipping corrupt record",
				zap.String("key", keys[i]),
				zap.Error(err),
			)
			continue
		}
		if _, ok := raw["id"]; !ok {
			raw["id"] = ids[i]
		}
		out = append(out, raw)
	}
	return out, nil
}

// Get returns one record.
func (r *Repo) Get(ctx context.Context, kind entity.Type, id string) (domrec.Raw, error) {
	key := r.recordKey(kind, id)
	body, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	raw, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return raw, nil
}

// Put stores one record and indexes it by its created_at (now when absent).
func (r *Repo) Put(ctx context.Context, kind entity.Type, raw domrec.Raw) error {
	_, err := r.PutMany(ctx, kind, []domrec.Raw{raw})
	return err
}

// PutMany stores records in one pipelined round-trip plus one ZADD. Every record needs an id.
func (r *Repo) PutMany(ctx context.Context, kind entity.Type, raws []domrec.Raw) (int, error) {
	if !kind.IsValid() {
		return 0, domain.NewOptionError("type", kind.String())
	}
	if len(raws) == 0 {
		return 0, nil
	}

	items := make([]db.KVItem, 0, len(raws))
	members := make([]db.ScoredMember, 0, len(raws))
	for i, raw := range raws {
		id := raw.First("id")
		if id == "" {
			return 0, fmt.Errorf("%w: record %d of %s has no id", domain.ErrInvalidRequest, i, kind)
		}
		body, err := json.Marshal(raw)
		if err != nil {
			return 0, fmt.Errorf("marshal record %s: %w", id, err)
		}
		created, ok := raw.Time("created_at")
		if !ok {
			created = r.now()
		}
		items = append(items, db.KVItem{Key: r.recordKey(kind, id), Value: body})
		members = append(members, db.ScoredMember{Member: id, Score: float64(created.UnixMilli())})
	}

	if err := r.store.SetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("set records %s: %w", kind, err)
	}
	if err := r.store.ZAdd(ctx, r.indexKey(kind), members...); err != nil {
		return 0, fmt.Errorf("index records %s: %w", kind, err)
	}
	return len(items), nil
}

// Delete removes a record and its index entry.
func (r *Repo) Delete(ctx context.Context, kind entity.Type, id string) error {
	if err := r.store.Del(ctx, r.recordKey(kind, id)); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if err := r.store.ZRem(ctx, r.indexKey(kind), id); err != nil {
		return fmt.Errorf("unindex record %s: %w", id, err)
	}
	return nil
}

// Count returns the number of indexed records of kind.
func (r *Repo) Count(ctx context.Context, kind entity.Type) (int64, error) {
	n, err := r.store.ZCard(ctx, r.indexKey(kind))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

func (r *Repo) recordKey(kind entity.Type, id string) string {
	return r.prefix + "rec:" + kind.String() + ":" + id
}

func (r *Repo) indexKey(kind entity.Type) string {
	return r.prefix + "idx:" + kind.String()
}

func decode(body []byte) (domrec.Raw, error) {
	var raw domrec.Raw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if raw == nil {
		return nil, errors.New("record body is not an object")
	}
	return raw, nil
}

// matchesEquals compares trimmed raw fields, the same form metadata filters see.
func matchesEquals(raw domrec.Raw, equals map[string]string) bool {
	for k, v := range equals {
		if raw.First(k) != v {
			return false
		}
	}
	return true
}
