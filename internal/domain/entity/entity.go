// Package entity holds the closed set of searchable entity kinds.
package entity

import (
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain"
)

// Type is a searchable entity kind.
type Type string

// Entity kinds.
const (
	Presentation Type = "presentation"
	Volunteer    Type = "volunteer"
	Teacher      Type = "teacher"
	School       Type = "school"
	Event        Type = "event"
	FAQ          Type = "faq"
	Blog         Type = "blog"
	Resource     Type = "resource"
	Team         Type = "team"
)

var all = []Type{Presentation, Volunteer, Teacher, School, Event, FAQ, Blog, Resource, Team}

// aliases accepts the human names the API has historically exposed.
var aliases = map[string]Type{
	"person":       Volunteer,
	"contact":      Teacher,
	"organization": School,
	"article":      Blog,
	"file":         Resource,
	"group":        Team,
}

// All returns every entity kind in canonical order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// IsValid checks if the type is one of the supported kinds.
func (t Type) IsValid() bool {
	for _, a := range all {
		if a == t {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// Parse resolves a type name or alias (case-insensitive).
func Parse(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if t := Type(name); t.IsValid() {
		return t, nil
	}
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	return "", domain.NewOptionError("type", s)
}

// ParseList resolves a list of names, dropping duplicates and keeping order.
func ParseList(names []string) ([]Type, error) {
	out := make([]Type, 0, len(names))
	seen := make(map[Type]struct{}, len(names))
	for _, n := range names {
		t, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
