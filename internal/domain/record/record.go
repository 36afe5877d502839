// Package record holds the searchable projection of a raw provider record.
package record

import (
	"errors"
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
)

// ErrEmptyTitle signals a record without a primary field to match against.
var ErrEmptyTitle = errors.New("record title is required")

// Searchable is the common shape every entity kind is projected into before matching.
// Built per query, never persisted.
type Searchable struct {
	id          string
	kind        entity.Type
	title       string
	description string
	content     string
	tags        []string
	raw         Raw
}

// New creates a searchable record. Title must be non-empty.
func New(
	id string, kind entity.Type,
	title, description, content string,
	tags []string, raw Raw,
) (Searchable, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Searchable{}, ErrEmptyTitle
	}
	return Searchable{
		id:          id,
		kind:        kind,
		title:       title,
		description: strings.TrimSpace(description),
		content:     content,
		tags:        compactTags(tags),
		raw:         raw,
	}, nil
}

// ID returns the identifier, unique within its entity kind.
func (s *Searchable) ID() string { return s.id }

// Kind returns the entity kind.
func (s *Searchable) Kind() entity.Type { return s.kind }

// Title returns the primary (highest weight) field.
func (s *Searchable) Title() string { return s.title }

// Description returns the secondary field.
func (s *Searchable) Description() string { return s.description }

// Content returns the full-text blob.
func (s *Searchable) Content() string { return s.content }

// Tags returns the ordered tag list.
func (s *Searchable) Tags() []string { return s.tags }

// Raw returns the original provider fields.
func (s *Searchable) Raw() Raw { return s.raw }

func compactTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
