package filter

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// MaxConditions is the maximum number of equality conditions per request.
const MaxConditions = 32

// Expression is a conjunction of metadata equality conditions.
type Expression struct {
	conditions []Condition
}

// Condition is a single metadata equality clause.
type Condition struct {
	key   string
	value string
}

// NewCondition creates an equality condition.
func NewCondition(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, value: value}, nil
}

// Key returns the metadata key.
func (c Condition) Key() string { return c.key }

// Value returns the expected canonical value.
func (c Condition) Value() string { return c.value }

// NewExpression validates and creates an Expression.
func NewExpression(conditions ...Condition) (Expression, error) {
	if len(conditions) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{conditions: conditions}, nil
}

// FromMap builds an Expression from a flat key/value map, ordered by key.
func FromMap(m map[string]string) (Expression, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]Condition, 0, len(keys))
	for _, k := range keys {
		c, err := NewCondition(k, m[k])
		if err != nil {
			return Expression{}, err
		}
		conditions = append(conditions, c)
	}
	return NewExpression(conditions...)
}

// Conditions returns the ANDed conditions.
func (e Expression) Conditions() []Condition { return e.conditions }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Matches reports whether every condition holds for the metadata.
// An unknown key matches nothing.
func (e Expression) Matches(m result.Metadata) bool {
	for _, c := range e.conditions {
		if !m.Equals(c.key, c.value) {
			return false
		}
	}
	return true
}

// Subset returns the conditions whose keys are in allowed.
func (e Expression) Subset(allowed map[string]struct{}) map[string]string {
	if len(allowed) == 0 || len(e.conditions) == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, c := range e.conditions {
		if _, ok := allowed[c.key]; ok {
			out[c.key] = c.value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
