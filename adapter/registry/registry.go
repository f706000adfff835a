// Package registry contains the default [domain.Registry] implementation: the
// lookup tables that map operator tokens to arity classes and hold the
// registered aggregate functions. New operators are registered through
// options rather than by touching the dispatch core.
package registry

import (
	"maps"

	"github.com/docquery-go/docquery/domain"
)

// Registered filter operator tokens.
const (
	OpEq      = "$eq"
	OpNe      = "$ne"
	OpGt      = "$gt"
	OpGe      = "$ge"
	OpLt      = "$lt"
	OpLe      = "$le"
	OpBetween = "$between"
	OpIn      = "$in"
	OpNin     = "$nin"
)

// FuncGroup is the only aggregate function registered by default.
const FuncGroup = "$group"

// Registry implements [domain.Registry]. The zero value is not usable; use
// [NewRegistry].
type Registry struct {
	operators  map[string]domain.Arity
	aggregates map[string]struct{}
}

// NewRegistry returns a new [domain.Registry] seeded with the default
// operator and aggregate-function sets.
func NewRegistry(options ...Option) domain.Registry {
	r := &Registry{
		operators: map[string]domain.Arity{
			OpEq:      domain.ArityBinary,
			OpNe:      domain.ArityBinary,
			OpGt:      domain.ArityBinary,
			OpGe:      domain.ArityBinary,
			OpLt:      domain.ArityBinary,
			OpLe:      domain.ArityBinary,
			OpBetween: domain.ArityTernary,
			OpIn:      domain.ArityList,
			OpNin:     domain.ArityList,
		},
		aggregates: map[string]struct{}{
			FuncGroup: {},
		},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Operator implements [domain.Registry].
func (r *Registry) Operator(token string) (domain.Arity, bool) {
	arity, ok := r.operators[token]
	return arity, ok
}

// AggregateFunction implements [domain.Registry].
func (r *Registry) AggregateFunction(token string) bool {
	_, ok := r.aggregates[token]
	return ok
}

// Operators returns a copy of the operator table.
func (r *Registry) Operators() map[string]domain.Arity {
	return maps.Clone(r.operators)
}
