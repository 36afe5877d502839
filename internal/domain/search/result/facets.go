package result

// Date range facet buckets.
const (
	RangeThisWeek    = "this_week"
	RangeThisMonth   = "this_month"
	RangeThisQuarter = "this_quarter"
	RangeThisYear    = "this_year"
	RangeOlder       = "older"
)

// Facets are frequency tables over the complete filtered result set.
type Facets struct {
	Types      map[string]int
	Categories map[string]int
	Tags       map[string]int
	DateRanges map[string]int
}

// NewFacets creates empty facet tables.
func NewFacets() Facets {
	return Facets{
		Types:      map[string]int{},
		Categories: map[string]int{},
		Tags:       map[string]int{},
		DateRanges: map[string]int{},
	}
}

// IsEmpty reports whether every table is empty.
func (f Facets) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Categories) == 0 && len(f.Tags) == 0 && len(f.DateRanges) == 0
}

// TypeTotal sums the type table; equals the result total since every result has one type.
func (f Facets) TypeTotal() int {
	n := 0
	for _, c := range f.Types {
		n += c
	}
	return n
}
