package result

import (
	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
)

// MaxHighlights caps the snippets attached to one result.
const MaxHighlights = 3

// Result is a single federated search hit.
type Result struct {
	id          string
	kind        entity.Type
	title       string
	description string
	url         string
	score       float64
	metadata    Metadata
	highlights  []string
}

// New creates a search result. Score is clamped to [0,1] and highlights to MaxHighlights.
func New(
	id string, kind entity.Type,
	title, description, url string,
	score float64, metadata Metadata, highlights []string,
) Result {
	switch {
	case score < 0:
		score = 0
	case score > 1:
		score = 1
	}
	if len(highlights) > MaxHighlights {
		highlights = highlights[:MaxHighlights]
	}
	if metadata == nil {
		metadata = Metadata{}
	}
	return Result{
		id: id, kind: kind,
		title: title, description: description, url: url,
		score: score, metadata: metadata, highlights: highlights,
	}
}

// ID returns the record identifier (unique within its type).
func (r *Result) ID() string { return r.id }

// Type returns the entity kind.
func (r *Result) Type() entity.Type { return r.kind }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Description returns the short description.
func (r *Result) Description() string { return r.description }

// URL returns the caller-navigable path.
func (r *Result) URL() string { return r.url }

// Score returns the relevance score in [0,1]; only comparable within one result set.
func (r *Result) Score() float64 { return r.score }

// Metadata returns the type-specific projection.
func (r *Result) Metadata() Metadata { return r.metadata }

// Highlights returns up to MaxHighlights snippets.
func (r *Result) Highlights() []string { return r.highlights }
