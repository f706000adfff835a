package registry

import "github.com/docquery-go/docquery/domain"

// WithOperator registers an additional filter operator under the given arity
// class.
func WithOperator(token string, arity domain.Arity) Option {
	return func(r *Registry) {
		r.operators[token] = arity
	}
}

// WithAggregateFunction registers an additional aggregate function.
func WithAggregateFunction(token string) Option {
	return func(r *Registry) {
		r.aggregates[token] = struct{}{}
	}
}

// Option configures registry contents through the functional options pattern.
type Option func(*Registry)
