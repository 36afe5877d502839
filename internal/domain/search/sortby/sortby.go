package sortby

import "github.com/kailas-cloud/fedsearch/internal/domain"

// Order is the result ordering.
type Order string

// Sort orders.
const (
	// Relevance orders by descending relevance score.
	Relevance Order = "relevance"
	// Date orders by descending metadata date; undated results go last.
	Date Order = "date"
	// Title orders by ascending title.
	Title Order = "title"
)

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == Relevance || o == Date || o == Title
}

// Parse resolves an order name. Empty means Relevance; anything unknown is an error.
func Parse(s string) (Order, error) {
	if s == "" {
		return Relevance, nil
	}
	o := Order(s)
	if !o.IsValid() {
		return "", domain.NewOptionError("sortBy", s)
	}
	return o, nil
}
