package adapter

import (
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
	"github.com/kailas-cloud/fedsearch/internal/domain/record"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// DefaultSpecs returns the specs for every entity kind in entity.All() order.
func DefaultSpecs() []Spec {
	return []Spec{
		presentationSpec(),
		volunteerSpec(),
		teacherSpec(),
		schoolSpec(),
		eventSpec(),
		faqSpec(),
		blogSpec(),
		resourceSpec(),
		teamSpec(),
	}
}

func presentationSpec() Spec {
	return Spec{
		Type: entity.Presentation,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("title"),
				Description: raw.First("description"),
				Tags:        concat(raw.Strings("topics"), raw.Strings("grade_levels")),
			}
		},
		URL: pathURL("/presentations/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				result.KeyCategory: raw.First("topic", "category"),
				"school":           raw.First("school_name"),
				"presenters":       names(raw, "presenters", "presenter_name"),
			}
		},
		DateFields:     []string{"scheduled_date", "created_at"},
		PushdownFields: []string{"status"},
	}
}

func volunteerSpec() Spec {
	return Spec{
		Type: entity.Volunteer,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("name", "email"),
				Description: raw.First("bio"),
				Tags:        raw.Strings("skills"),
			}
		},
		URL: pathURL("/volunteers/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				"school": raw.First("school", "school_name"),
			}
		},
		PushdownFields: []string{"status"},
	}
}

func teacherSpec() Spec {
	return Spec{
		Type: entity.Teacher,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("name", "email"),
				Description: joinNonEmpty(", ", raw.First("subject"), raw.First("school_name")),
				Tags:        raw.Strings("grades"),
			}
		},
		URL: pathURL("/teachers/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				"school":  raw.First("school_name"),
				"subject": raw.First("subject"),
				"grade":   raw.First("grade"),
			}
		},
		PushdownFields: []string{"status", "subject"},
	}
}

func schoolSpec() Spec {
	return Spec{
		Type: entity.School,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("name"),
				Description: raw.First("address"),
				Tags:        concat(raw.Strings("district"), raw.Strings("city")),
			}
		},
		URL: pathURL("/schools/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				"district": raw.First("district"),
				"city":     raw.First("city"),
			}
		},
		PushdownFields: []string{"status", "district", "city"},
	}
}

func eventSpec() Spec {
	return Spec{
		Type: entity.Event,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("title"),
				Description: raw.First("description"),
				Tags:        raw.Strings("tags"),
			}
		},
		URL: pathURL("/events/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				result.KeyCategory: raw.First("category"),
				"location":         raw.First("location"),
				"organizer":        raw.First("organizer", "organizer_name"),
			}
		},
		DateFields:     []string{"start_date", "created_at"},
		PushdownFields: []string{"status", "category"},
	}
}

func faqSpec() Spec {
	return Spec{
		Type: entity.FAQ,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("question"),
				Description: raw.First("answer"),
				Tags:        raw.Strings("category"),
			}
		},
		URL: func(id string, _ record.Raw) string { return "/faq#" + id },
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				result.KeyCategory: raw.First("category"),
			}
		},
		PushdownFields: []string{"category"},
	}
}

func blogSpec() Spec {
	return Spec{
		Type: entity.Blog,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("title"),
				Description: raw.First("excerpt"),
				Tags:        raw.Strings("tags"),
			}
		},
		URL: func(id string, raw record.Raw) string {
			if slug := raw.First("slug"); slug != "" {
				return "/blog/" + slug
			}
			return "/blog/" + id
		},
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				result.KeyCategory: raw.First("category"),
				"author":           raw.First("author", "author_name"),
			}
		},
		DateFields:     []string{"published_at", "created_at"},
		PushdownFields: []string{"status", "category"},
	}
}

func resourceSpec() Spec {
	return Spec{
		Type: entity.Resource,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("title", "filename"),
				Description: raw.First("description"),
				Tags:        raw.Strings("tags"),
			}
		},
		URL: pathURL("/resources/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				result.KeyCategory: raw.First("category"),
				"filename":         raw.First("filename"),
				"mime_type":        raw.First("mime_type"),
			}
		},
		PushdownFields: []string{"category"},
	}
}

func teamSpec() Spec {
	return Spec{
		Type: entity.Team,
		Normalize: func(raw record.Raw) Projection {
			return Projection{
				Title:       raw.First("name"),
				Description: raw.First("description"),
				Tags:        raw.Strings("focus_areas"),
			}
		},
		URL: pathURL("/teams/"),
		Metadata: func(raw record.Raw) result.Metadata {
			return result.Metadata{
				"leads": names(raw, "leads", "lead_name"),
			}
		},
		PushdownFields: []string{"status"},
	}
}

func pathURL(prefix string) func(string, record.Raw) string {
	return func(id string, _ record.Raw) string { return prefix + id }
}

// names collects display names from a list of people objects or plain strings,
// falling back to a scalar field.
func names(raw record.Raw, listKey, scalarKey string) []string {
	var out []string
	if items, ok := raw[listKey].([]any); ok {
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case map[string]any:
				if n := record.Raw(v).First("name", "full_name", "email"); n != "" {
					out = append(out, n)
				}
			}
		}
	}
	if len(out) == 0 {
		if n := raw.First(scalarKey); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
