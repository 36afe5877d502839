package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// writeFixtureConfig points a fixture-driver config at the repo's sample records.
func writeFixtureConfig(t *testing.T) string {
	t.Helper()
	fixtures, err := filepath.Abs(filepath.Join("..", "..", "testdata", "records.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := "http:\n  port: 8080\nstore:\n  driver: fixture\n  fixtures_path: " + fixtures +
		"\nsearch:\n  trending:\n    - robotics\n    - ocean cleanup\n"
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.Writer = &out
	full := append([]string{"fedsearch", "--env", "test", "--config", writeFixtureConfig(t)}, args...)
	err := cmd.Run(context.Background(), full)
	return out.String(), err
}

func TestSearchCommand_Fixtures(t *testing.T) {
	out, err := run(t, "search", "--type", "presentation", "robots")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Building Robots with Cardboard") {
		t.Errorf("expected presentation in output:\n%s", out)
	}
}

func TestSearchCommand_Facets(t *testing.T) {
	out, err := run(t, "search", "--facets", "ocean")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Types") {
		t.Errorf("expected facet table in output:\n%s", out)
	}
}

func TestSearchCommand_UnknownSort(t *testing.T) {
	_, err := run(t, "search", "--sort", "popularity", "robots")
	if !errors.Is(err, domain.ErrUnrecognizedOption) {
		t.Fatalf("expected ErrUnrecognizedOption, got %v", err)
	}
}

func TestSearchCommand_BadFilter(t *testing.T) {
	_, err := run(t, "search", "--filter", "status", "robots")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestTrendingCommand(t *testing.T) {
	out, err := run(t, "trending")
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if !strings.Contains(out, "robotics") || !strings.Contains(out, "ocean cleanup") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, "suggest", "ocean")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !strings.Contains(out, "Ocean Cleanup Event") {
		t.Errorf("expected completion in output:\n%s", out)
	}
}

func TestLoadCommand_RequiresStore(t *testing.T) {
	fixtures := filepath.Join("..", "..", "testdata", "records.yaml")
	if _, err := run(t, "load", fixtures); err == nil {
		t.Fatal("expected load to refuse the fixture driver")
	}
}

func TestLoadCommand_RequiresPath(t *testing.T) {
	if _, err := run(t, "load"); err == nil {
		t.Fatal("expected error without a path")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "fedsearch ") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestParseFilters(t *testing.T) {
	got, err := parseFilters([]string{"status=active", " category = stem "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["status"] != "active" || got["category"] != "stem" {
		t.Errorf("got %v", got)
	}

	if got, _ := parseFilters(nil); got != nil {
		t.Errorf("nil input: got %v", got)
	}

	for _, bad := range []string{"status", "=x"} {
		if _, err := parseFilters([]string{bad}); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("%q: expected ErrInvalidRequest, got %v", bad, err)
		}
	}
}

func TestAssignIDs(t *testing.T) {
	raws := []record.Raw{
		{"id": "keep"},
		{"_id": "mongo"},
		{"title": "no id"},
	}
	if n := assignIDs(raws); n != 1 {
		t.Fatalf("assigned = %d, want 1", n)
	}
	if raws[0]["id"] != "keep" {
		t.Errorf("existing id changed: %v", raws[0]["id"])
	}
	if raws[1]["id"] != "mongo" {
		t.Errorf("_id not promoted: %v", raws[1]["id"])
	}
	if id, _ := raws[2]["id"].(string); len(id) != 36 {
		t.Errorf("expected uuid, got %q", id)
	}
}

func TestRenderResponse(t *testing.T) {
	r := result.New("e1", entity.Event, "Ocean Cleanup Event", "Beach day", "/events/e1", 0.8,
		nil, []string{"…ocean cleanup…"})
	facets := result.NewFacets()
	facets.Types["event"] = 1
	out := renderResponse(result.Response{
		Results:   []result.Result{r},
		Facets:    facets,
		Total:     1,
		QueryTime: 2 * time.Millisecond,
	}, 10, true)

	for _, want := range []string{"1 results", "11.", "Ocean Cleanup Event", "[event]", "/events/e1", "…ocean cleanup…", "Types"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderResponse_Empty(t *testing.T) {
	out := renderResponse(result.Empty(0), 0, false)
	if !strings.Contains(out, "No results found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestByCount(t *testing.T) {
	got := byCount(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
