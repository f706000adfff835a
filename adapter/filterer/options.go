package filterer

import "github.com/docquery-go/docquery/domain"

// WithRegistry sets the operator registry consulted during normalization.
func WithRegistry(r domain.Registry) Option {
	return func(f *Filterer) {
		f.reg = r
	}
}

// WithMergedConditions allows a condition mapping to hold several operators
// for the same field, merged under an implicit AND. The default policy
// rejects multi-key condition mappings.
func WithMergedConditions(m bool) Option {
	return func(f *Filterer) {
		f.merge = m
	}
}

// Option configures filterer behavior through the functional options pattern.
type Option func(*Filterer)
