package matcher

import "fmt"

// Matching defaults.
const (
	DefaultThreshold          = 0.3
	DefaultDistance           = 100
	DefaultMinMatchCharLength = 2
)

// Weights are the per-field match weights. Title > Description > Content > Tags.
type Weights struct {
	Title       float64
	Description float64
	Content     float64
	Tags        float64
}

// DefaultWeights returns the standard field weighting.
func DefaultWeights() Weights {
	return Weights{Title: 0.4, Description: 0.3, Content: 0.2, Tags: 0.1}
}

// Validate checks that weights are positive and strictly decreasing in field order.
func (w Weights) Validate() error {
	if w.Tags <= 0 {
		return fmt.Errorf("weights must be positive, got tags=%v", w.Tags)
	}
	if !(w.Title > w.Description && w.Description > w.Content && w.Content > w.Tags) {
		return fmt.Errorf(
			"weights must satisfy title > description > content > tags, got %v/%v/%v/%v",
			w.Title, w.Description, w.Content, w.Tags,
		)
	}
	return nil
}

func (w Weights) of(f Field) float64 {
	switch f {
	case Title:
		return w.Title
	case Description:
		return w.Description
	case Content:
		return w.Content
	case Tags:
		return w.Tags
	default:
		return 0
	}
}

func (w Weights) sum() float64 {
	return w.Title + w.Description + w.Content + w.Tags
}

// Options configure one matching pass.
type Options struct {
	// Threshold is the maximum accepted field distance: 0 = exact substring only, 1 = almost anything.
	Threshold float64
	// Distance caps how far apart (in runes) per-token matches may start and still merge into one match.
	Distance int
	// MinMatchCharLength is the shortest matched fragment that counts.
	MinMatchCharLength int
	Weights            Weights
}

// DefaultOptions returns the standard matching configuration.
func DefaultOptions() Options {
	return Options{
		Threshold:          DefaultThreshold,
		Distance:           DefaultDistance,
		MinMatchCharLength: DefaultMinMatchCharLength,
		Weights:            DefaultWeights(),
	}
}

// WithThreshold returns a copy with the given threshold.
func (o Options) WithThreshold(t float64) Options {
	o.Threshold = t
	return o
}

func (o Options) normalized() Options {
	if o.Threshold < 0 {
		o.Threshold = 0
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	if o.Distance <= 0 {
		o.Distance = DefaultDistance
	}
	if o.MinMatchCharLength < 1 {
		o.MinMatchCharLength = DefaultMinMatchCharLength
	}
	if o.Weights.sum() <= 0 {
		o.Weights = DefaultWeights()
	}
	return o
}
