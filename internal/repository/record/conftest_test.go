package record

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/db"
)

// memStore implements the consumer interface in memory.
type memStore struct {
	kv    map[string][]byte
	zsets map[string]map[string]float64

	zrangeErr error
	mgetErr   error
	zrangeN   int
}

func newMemStore() *memStore {
	return &memStore{kv: map[string][]byte{}, zsets: map[string]map[string]float64{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) MGet(_ context.Context, keys []string) ([][]byte, error) {
	if m.mgetErr != nil {
		return nil, m.mgetErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.kv[k]
	}
	return out, nil
}

func (m *memStore) SetMulti(_ context.Context, items []db.KVItem) error {
	for _, it := range items {
		m.kv[it.Key] = it.Value
	}
	return nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}

func (m *memStore) ZAdd(_ context.Context, key string, members ...db.ScoredMember) error {
	z, ok := m.zsets[key]
	if !ok {
		z = map[string]float64{}
		m.zsets[key] = z
	}
	for _, mem := range members {
		z[mem.Member] = mem.Score
	}
	return nil
}

func (m *memStore) ZRevRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.zrangeN++
	if m.zrangeErr != nil {
		return nil, m.zrangeErr
	}
	z := m.zsets[key]
	members := make([]string, 0, len(z))
	for k := range z {
		members = append(members, k)
	}
	// Descending score, then descending member like Redis REV.
	sort.Slice(members, func(i, j int) bool {
		if z[members[i]] != z[members[j]] {
			return z[members[i]] > z[members[j]]
		}
		return strings.Compare(members[i], members[j]) > 0
	})
	if start >= int64(len(members)) {
		return []string{}, nil
	}
	end := min(stop+1, int64(len(members)))
	return slices.Clone(members[start:end]), nil
}

func (m *memStore) ZCard(_ context.Context, key string) (int64, error) {
	return int64(len(m.zsets[key])), nil
}

func (m *memStore) ZRem(_ context.Context, key string, members ...string) error {
	for _, mem := range members {
		delete(m.zsets[key], mem)
	}
	return nil
}
