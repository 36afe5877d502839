package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/fedsearch/internal/adapter"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
)

const sample = `
records:
  events:
    - id: e1
      title: Ocean Cleanup Event
      status: scheduled
      created_at: 2026-01-01T10:00:00Z
    - id: e2
      title: Climate Change Workshop
      status: completed
      created_at: 2026-02-01T10:00:00Z
    - id: e3
      title: Undated Meetup
      status: completed
  faq:
    - id: 1
      question: How do I volunteer?
      answer: Sign up on the volunteers page.
      category: general
`

func TestParse_GroupsAndOrders(t *testing.T) {
	r, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", r.Len())
	}

	events, err := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, e := range events {
		ids = append(ids, e.String("id"))
	}
	if strings.Join(ids, ",") != "e2,e1,e3" {
		t.Errorf("order = %v, want newest first with undated last", ids)
	}

	faqs, _ := r.Fetch(context.Background(), entity.FAQ, adapter.FetchQuery{})
	if len(faqs) != 1 || faqs[0].String("id") != "1" {
		t.Errorf("faq records = %v", faqs)
	}
}

func TestFetch_EqualsAndLimit(t *testing.T) {
	r, _ := Parse(strings.NewReader(sample))

	got, _ := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{
		Limit: 1, Equals: map[string]string{"status": "completed"},
	})
	if len(got) != 1 || got[0].String("id") != "e2" {
		t.Errorf("Fetch() = %v", got)
	}
}

func TestFetch_EqualsIgnoresSurroundingSpace(t *testing.T) {
	r, err := Parse(strings.NewReader(`
records:
  events:
    - id: e1
      status: " completed"
    - id: e2
      status: scheduled
`))
	if err != nil {
		t.Fatal(err)
	}

	got, _ := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{
		Equals: map[string]string{"status": "completed"},
	})
	if len(got) != 1 || got[0].String("id") != "e1" {
		t.Errorf("Fetch() = %v, want e1", got)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	r, _ := Parse(strings.NewReader(sample))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Fetch(ctx, entity.Event, adapter.FetchQuery{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParse_UnknownType(t *testing.T) {
	_, err := Parse(strings.NewReader("records:\n  widgets:\n    - id: 1\n"))
	if !errors.Is(err, domain.ErrUnrecognizedOption) {
		t.Errorf("expected ErrUnrecognizedOption, got %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	r, err := Parse(strings.NewReader(""))
	if err != nil || r.Len() != 0 {
		t.Errorf("Parse(empty) = %v, %v", r, err)
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	r, _ := Parse(strings.NewReader(sample))
	all := r.Records()
	all[entity.Event][0] = nil

	events, _ := r.Fetch(context.Background(), entity.Event, adapter.FetchQuery{})
	if events[0] == nil {
		t.Error("Records() must not expose internal slices")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil || r.Len() != 4 {
		t.Fatalf("Load() = %v, %v", r, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_RepoFixtures(t *testing.T) {
	r, err := Load(filepath.Join("..", "..", "..", "testdata", "records.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for _, kind := range entity.All() {
		got, _ := r.Fetch(context.Background(), kind, adapter.FetchQuery{})
		if len(got) == 0 {
			t.Errorf("testdata has no %s records", kind)
		}
	}
}
