package matcher

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips diacritics rune-by-rune.
// The output has exactly one rune per input rune so offsets map back to the original text.
func fold(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, foldRune(r))
	}
	return out
}

func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	if unicode.Is(unicode.Mn, r) {
		return r
	}
	d := norm.NFD.String(string(r))
	base, _ := utf8.DecodeRuneInString(d)
	return unicode.ToLower(base)
}

// tokenize splits folded runes on whitespace, keeping tokens of at least minLen runes.
func tokenize(rs []rune, minLen int) [][]rune {
	var tokens [][]rune
	start := -1
	for i, r := range rs {
		if unicode.IsSpace(r) {
			if start >= 0 && i-start >= minLen {
				tokens = append(tokens, rs[start:i])
			}
			start = -1
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 && len(rs)-start >= minLen {
		tokens = append(tokens, rs[start:])
	}
	return tokens
}

// collapse trims and collapses whitespace runs into single spaces.
func collapse(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	space := false
	for _, r := range rs {
		if unicode.IsSpace(r) {
			space = len(out) > 0
			continue
		}
		if space {
			out = append(out, ' ')
			space = false
		}
		out = append(out, r)
	}
	return out
}
