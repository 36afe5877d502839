package matcher

// alignment is the best approximate occurrence of a pattern inside a text.
type alignment struct {
	errors int
	start  int
	end    int
}

func (a alignment) span() int { return a.end - a.start }

// align finds the substring of text with minimum edit distance to pattern
// (Sellers' algorithm). Ties resolve to the earliest end position, and for
// that end to the earliest start, so the reported span is the longest one.
// Runs in O(len(pattern)*len(text)) time and O(len(text)) memory.
func align(pattern, text []rune) alignment {
	m, n := len(pattern), len(text)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	prevStart := make([]int, n+1)
	curStart := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prevStart[j] = j
	}

	for i := 1; i <= m; i++ {
		cur[0] = i
		curStart[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			best, start := prev[j-1]+cost, prevStart[j-1]
			if d, st := prev[j]+1, prevStart[j]; d < best || (d == best && st < start) {
				best, start = d, st
			}
			if d, st := cur[j-1]+1, curStart[j-1]; d < best || (d == best && st < start) {
				best, start = d, st
			}
			cur[j] = best
			curStart[j] = start
		}
		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}

	best := alignment{errors: m, start: 0, end: 0}
	for j := 1; j <= n; j++ {
		if prev[j] < best.errors {
			best = alignment{errors: prev[j], start: prevStart[j], end: j}
		}
	}
	return best
}

// levenshtein is the plain edit distance between a and b.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
