package adapter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// Projection is the type-specific part of a searchable record.
// Content is always the flattened raw record.
type Projection struct {
	Title       string
	Description string
	Tags        []string
}

// Spec describes how one entity kind is searched.
type Spec struct {
	Type entity.Type
	// Normalize projects a raw record onto the matchable fields.
	Normalize func(raw record.Raw) Projection
	// URL builds the navigable path of a record.
	URL func(id string, raw record.Raw) string
	// Metadata adds type-specific keys. date, status and tags are set by the adapter.
	Metadata func(raw record.Raw) result.Metadata
	// DateFields are tried in order for the primary date.
	DateFields []string
	// PushdownFields are raw keys whose equality filters the provider may apply.
	PushdownFields []string
}

// Normalize builds the searchable record for raw. Records without an id are skipped.
// A missing title falls back to "<Type> <id>".
func Normalize(spec Spec, raw record.Raw) (record.Searchable, bool) {
	id := raw.First("id", "_id")
	if id == "" {
		return record.Searchable{}, false
	}

	var p Projection
	if spec.Normalize != nil {
		p = spec.Normalize(raw)
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = FallbackTitle(spec.Type, id)
	}

	rec, err := record.New(id, spec.Type, title, p.Description, raw.Flatten(), p.Tags, raw)
	if err != nil {
		return record.Searchable{}, false
	}
	return rec, true
}

// FallbackTitle synthesizes a display title for untitled records.
func FallbackTitle(kind entity.Type, id string) string {
	return cases.Title(language.English).String(kind.String()) + " " + id
}

// metadataFor assembles the result metadata for rec.
func metadataFor(spec Spec, rec *record.Searchable) result.Metadata {
	raw := rec.Raw()
	md := result.Metadata{}
	if spec.Metadata != nil {
		for k, v := range spec.Metadata(raw) {
			if isBlank(v) {
				continue
			}
			md[k] = v
		}
	}

	dateFields := spec.DateFields
	if len(dateFields) == 0 {
		dateFields = []string{"created_at"}
	}
	if t, ok := raw.FirstTime(dateFields...); ok {
		md[result.KeyDate] = t.UTC()
	}
	if s := raw.First("status"); s != "" {
		md[result.KeyStatus] = s
	}
	if tags := rec.Tags(); len(tags) > 0 {
		md[result.KeyTags] = append([]string(nil), tags...)
	}
	return md
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	default:
		return false
	}
}
