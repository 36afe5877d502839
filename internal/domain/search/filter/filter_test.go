package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

func mustExpr(t *testing.T, m map[string]string) Expression {
	t.Helper()
	e, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	return e
}

func TestNewCondition_EmptyKey(t *testing.T) {
	if _, err := NewCondition("", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestNewExpression_TooMany(t *testing.T) {
	conds := make([]Condition, MaxConditions+1)
	for i := range conds {
		conds[i] = Condition{key: "k", value: "v"}
	}
	_, err := NewExpression(conds...)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too many") {
		t.Errorf("error = %q", err)
	}
}

func TestMatches(t *testing.T) {
	md := result.Metadata{
		"status":   "completed",
		"category": "energy",
		"featured": true,
		"grade":    5,
		"date":     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		"tags":     []string{"solar"},
	}

	tests := []struct {
		name    string
		filters map[string]string
		want    bool
	}{
		{"empty matches everything", nil, true},
		{"single equal", map[string]string{"status": "completed"}, true},
		{"single different", map[string]string{"status": "scheduled"}, false},
		{"AND both hold", map[string]string{"status": "completed", "category": "energy"}, true},
		{"AND one fails", map[string]string{"status": "completed", "category": "water"}, false},
		{"unknown key", map[string]string{"color": "green"}, false},
		{"bool canonical", map[string]string{"featured": "true"}, true},
		{"int canonical", map[string]string{"grade": "5"}, true},
		{"time canonical", map[string]string{"date": "2026-03-01T00:00:00Z"}, true},
		{"no partial match", map[string]string{"status": "complete"}, false},
		{"lists never equal", map[string]string{"tags": "solar"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustExpr(t, tt.filters).Matches(md); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubset(t *testing.T) {
	e := mustExpr(t, map[string]string{"status": "completed", "category": "energy"})

	got := e.Subset(map[string]struct{}{"status": {}})
	if len(got) != 1 || got["status"] != "completed" {
		t.Errorf("Subset() = %v", got)
	}
	if got := e.Subset(nil); got != nil {
		t.Errorf("Subset(nil) = %v, want nil", got)
	}
	if got := e.Subset(map[string]struct{}{"other": {}}); got != nil {
		t.Errorf("Subset(disjoint) = %v, want nil", got)
	}
}
