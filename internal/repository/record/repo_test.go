package record

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	domrec "github.com/kailas-cloud/fedsearch/internal/domain/record"
)

func seed(t *testing.T, r *Repo, kind entity.Type, n int, status func(i int) string) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	raws := make([]domrec.Raw, n)
	for i := range n {
		raws[i] = domrec.Raw{
			"id":         fmt.Sprintf("%s-%03d", kind, i),
			"title":      fmt.Sprintf("Item %d", i),
			"status":     status(i),
			"created_at": base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
	}
	if _, err := r.PutMany(context.Background(), kind, raws); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
}

func always(s string) func(int) string { return func(int) string { return s } }

func TestFetch_NewestFirstWithLimit(t *testing.T) {
	s := newMemStore()
	r := New(s, "fs:", nil)
	seed(t, r, entity.Event, 30, always("published"))

	got, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 records, got %d", len(got))
	}
	if got[0].String("id") != "event-029" || got[4].String("id") != "event-025" {
		t.Errorf("unexpected order: first=%s last=%s", got[0].String("id"), got[4].String("id"))
	}
}

func TestFetch_KeyLayout(t *testing.T) {
	s := newMemStore()
	r := New(s, "fs:", nil)
	seed(t, r, entity.Blog, 1, always("draft"))

	if _, ok := s.kv["fs:rec:blog:blog-000"]; !ok {
		t.Errorf("record key missing, have %v", s.kv)
	}
	if _, ok := s.zsets["fs:idx:blog"]["blog-000"]; !ok {
		t.Errorf("index entry missing, have %v", s.zsets)
	}
	want := float64(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	if got := s.zsets["fs:idx:blog"]["blog-000"]; got != want {
		t.Errorf("index score = %f, want %f", got, want)
	}
}

func TestFetch_EqualsScansPastRejected(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	// Only every 4th record is published; newest ones are drafts.
	seed(t, r, entity.Event, 40, func(i int) string {
		if i%4 == 0 {
			return "published"
		}
		return "draft"
	})

	got, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{
		Limit: 3, Equals: map[string]string{"status": "published"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for _, raw := range got {
		if raw.String("status") != "published" {
			t.Errorf("unexpected status %q", raw.String("status"))
		}
	}
	if got[0].String("id") != "event-036" {
		t.Errorf("first = %s", got[0].String("id"))
	}
}

func TestFetch_EqualsIgnoresSurroundingSpace(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	seed(t, r, entity.Event, 2, func(i int) string {
		if i == 0 {
			return " completed "
		}
		return "scheduled"
	})

	got, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{
		Limit: 10, Equals: map[string]string{"status": "completed"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].String("id") != "event-000" {
		t.Errorf("Fetch() = %v, want event-000", got)
	}
}

func TestFetch_ScanBound(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	seed(t, r, entity.Event, 100, always("draft"))

	got, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{
		Limit: 2, Equals: map[string]string{"status": "published"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
	// 2 * scanFactor ids in pages of 2.
	if s.zrangeN != scanFactor {
		t.Errorf("expected %d ZRANGE pages, got %d", scanFactor, s.zrangeN)
	}
}

func TestFetch_EmptyIndex(t *testing.T) {
	r := New(newMemStore(), "", nil)
	got, err := r.Fetch(context.Background(), entity.Team, adapter.FetchQuery{Limit: 10})
	if err != nil || len(got) != 0 {
		t.Errorf("Fetch() = %v, %v", got, err)
	}
}

func TestFetch_SkipsStaleAndCorrupt(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	seed(t, r, entity.FAQ, 3, always("x"))
	delete(s.kv, "rec:faq:faq-002")
	s.kv["rec:faq:faq-001"] = []byte("{not json")

	got, err := r.Fetch(context.Background(), entity.FAQ, adapter.FetchQuery{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].String("id") != "faq-000" {
		t.Errorf("unexpected records: %v", got)
	}
}

func TestFetch_StoreErrorIsProviderUnavailable(t *testing.T) {
	s := newMemStore()
	s.zrangeErr = errors.New("connection reset")
	r := New(s, "", nil)

	_, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{Limit: 10})
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestPutMany_RequiresID(t *testing.T) {
	r := New(newMemStore(), "", nil)
	_, err := r.PutMany(context.Background(), entity.Event, []domrec.Raw{{"title": "no id"}})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestPutMany_UnknownType(t *testing.T) {
	r := New(newMemStore(), "", nil)
	_, err := r.PutMany(context.Background(), entity.Type("widget"), []domrec.Raw{{"id": "1"}})
	if !errors.Is(err, domain.ErrUnrecognizedOption) {
		t.Errorf("expected ErrUnrecognizedOption, got %v", err)
	}
}

func TestPut_MissingCreatedAtUsesNow(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	fixed := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	if err := r.Put(context.Background(), entity.Team, domrec.Raw{"id": 7.0, "name": "Robotics"}); err != nil {
		t.Fatal(err)
	}
	if got := s.zsets["idx:team"]["7"]; got != float64(fixed.UnixMilli()) {
		t.Errorf("score = %f", got)
	}
}

func TestGetDeleteCount(t *testing.T) {
	s := newMemStore()
	r := New(s, "", nil)
	seed(t, r, entity.School, 2, always("open"))
	ctx := context.Background()

	raw, err := r.Get(ctx, entity.School, "school-001")
	if err != nil || raw.String("title") != "Item 1" {
		t.Fatalf("Get() = %v, %v", raw, err)
	}
	if n, _ := r.Count(ctx, entity.School); n != 2 {
		t.Errorf("Count() = %d", n)
	}
	if err := r.Delete(ctx, entity.School, "school-001"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(ctx, entity.School, "school-001"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if n, _ := r.Count(ctx, entity.School); n != 1 {
		t.Errorf("Count() after delete = %d", n)
	}
}
