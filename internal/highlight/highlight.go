// Package highlight extracts short snippets around query terms inside matched fields.
package highlight

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/fedsearch/internal/matcher"
)

// Snippet shape.
const (
	// Window is the approximate snippet length in runes.
	Window = 40
	// MaxSnippets caps snippets per result.
	MaxSnippets = 3
	// minTokenLen excludes short tokens ("a", "of") from snippet search.
	minTokenLen = 3
	ellipsis    = "…"
)

// Extract returns up to MaxSnippets snippets in field scan order. Snippets are
// centered on literal query tokens; a field with no literal occurrence (a typo
// match) falls back to the matcher's ranges. A snippet overlapping an earlier
// one is dropped. An empty result is valid.
func Extract(fields []matcher.FieldMatch, query string) []string {
	tokens := queryTokens(query)
	if len(tokens) == 0 || len(fields) == 0 {
		return []string{}
	}

	snippets := make([]string, 0, MaxSnippets)
	bodies := make([]string, 0, MaxSnippets)
	add := func(s string) bool {
		body := strings.ToLower(strings.Trim(s, ellipsis))
		for _, prev := range bodies {
			if strings.Contains(prev, body) || strings.Contains(body, prev) {
				return false
			}
		}
		bodies = append(bodies, body)
		snippets = append(snippets, s)
		return len(snippets) == MaxSnippets
	}

	for _, fm := range fields {
		text := []rune(fm.Value)
		lower := lowerRunes(text)
		literal := false
		for _, tok := range tokens {
			idx := indexRunes(lower, tok)
			if idx < 0 {
				continue
			}
			literal = true
			if add(window(text, idx, len(tok))) {
				return snippets
			}
		}
		if literal {
			continue
		}
		for _, r := range fm.Ranges {
			if r.Start < 0 || r.End > len(text) || r.Start >= r.End {
				continue
			}
			if add(window(text, r.Start, r.End-r.Start)) {
				return snippets
			}
		}
	}
	return snippets
}

func queryTokens(query string) [][]rune {
	var out [][]rune
	for _, f := range strings.Fields(query) {
		r := lowerRunes([]rune(f))
		if len(r) >= minTokenLen {
			out = append(out, r)
		}
	}
	return out
}

// window cuts ~Window runes centered on [idx, idx+n) and marks truncated sides.
func window(text []rune, idx, n int) string {
	half := (Window - n) / 2
	if half < 0 {
		half = 0
	}
	start := max(0, idx-half)
	end := min(len(text), idx+n+half)

	s := strings.Join(strings.Fields(string(text[start:end])), " ")
	if start > 0 {
		s = ellipsis + s
	}
	if end < len(text) {
		s += ellipsis
	}
	return s
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		match := true
		for j := 0; j < n; j++ {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
