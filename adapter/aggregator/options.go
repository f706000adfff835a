package aggregator

import "github.com/docquery-go/docquery/domain"

// WithRegistry sets the aggregate-function registry consulted during
// normalization.
func WithRegistry(r domain.Registry) Option {
	return func(a *Aggregator) {
		a.reg = r
	}
}

// WithFieldMarker sets the character that marks a token as a field reference
// rather than a literal. Accepted markers are '$' and '?'.
func WithFieldMarker(marker rune) Option {
	return func(a *Aggregator) {
		a.marker = marker
	}
}

// Option configures aggregator behavior through the functional options
// pattern.
type Option func(*Aggregator)
