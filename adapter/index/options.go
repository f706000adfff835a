package index

import "github.com/docquery-go/docquery/domain"

// Option configures the Index in [NewIndex].
type Option func(*Index)

// WithComparer sets the comparer ordering the tree keys.
func WithComparer(c domain.Comparer) Option {
	return func(i *Index) { i.comparer = c }
}

// WithFieldNavigator sets the navigator resolving the indexed field.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(i *Index) { i.fieldNavigator = fn }
}
