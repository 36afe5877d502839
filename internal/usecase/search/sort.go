package search

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/sortby"
)

// sortResults orders results in place. Every order is stable.
func sortResults(results []result.Result, order sortby.Order) error {
	switch order {
	case sortby.Relevance:
		slices.SortStableFunc(results, func(a, b result.Result) int {
			return cmp.Compare(b.Score(), a.Score())
		})
	case sortby.Date:
		slices.SortStableFunc(results, compareDate)
	case sortby.Title:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(results, func(a, b result.Result) int {
			return c.CompareString(a.Title(), b.Title())
		})
	default:
		return fmt.Errorf("sort results: unsupported order %q", order)
	}
	return nil
}

// compareDate orders newest first; undated results go last.
func compareDate(a, b result.Result) int {
	da, okA := a.Metadata().Date()
	db, okB := b.Metadata().Date()
	switch {
	case okA && okB:
		return db.Compare(da)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
