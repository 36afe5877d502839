package search

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

const day = 24 * time.Hour

// Aggregate counts types, categories, tags and date ranges over results.
// Undated results are absent from the date table. results is not modified.
func Aggregate(results []result.Result, now time.Time) result.Facets {
	f := result.NewFacets()
	for i := range results {
		r := &results[i]
		f.Types[r.Type().String()]++

		md := r.Metadata()
		if c := md.Category(); c != "" {
			f.Categories[c]++
		}
		for _, tag := range md.Tags() {
			f.Tags[tag]++
		}
		if d, ok := md.Date(); ok {
			f.DateRanges[dateRange(d, now)]++
		}
	}
	return f
}

// dateRange buckets a date by age. Future dates count as this week.
func dateRange(d, now time.Time) string {
	age := now.Sub(d)
	switch {
	case age < 7*day:
		return result.RangeThisWeek
	case age < 30*day:
		return result.RangeThisMonth
	case age < 90*day:
		return result.RangeThisQuarter
	case age < 365*day:
		return result.RangeThisYear
	default:
		return result.RangeOlder
	}
}
