// Package docquery normalizes MongoDB-style query documents into a canonical
// form and executes them against an in-memory reference store.
//
// A raw query document is a mapping with up to five sections: namespace,
// select, filter, aggregate and option. Each section accepts several
// shorthand forms; [Normalize] expands all of them into one canonical
// representation, so two queries that mean the same thing normalize to
// identical values. The canonical form can then be executed with a [Store]
// or handed to another backend.
//
// The basic usage starts with [NewNormalizer], or the package-level
// [Normalize] which uses a normalizer with default configuration.
package docquery

import (
	"github.com/docquery-go/docquery/adapter/normalizer"
	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/adapter/store"
	"github.com/docquery-go/docquery/domain"
)

var (
	// ErrMissingNamespace is returned when a query document carries no
	// usable namespace.
	ErrMissingNamespace = domain.ErrMissingNamespace
	// ErrMalformedCondition is the category for filter sections that
	// cannot be normalized.
	ErrMalformedCondition = domain.ErrMalformedCondition
	// ErrMalformedAggregate is the category for aggregate sections that
	// cannot be normalized.
	ErrMalformedAggregate = domain.ErrMalformedAggregate
	// ErrInvalidOption is the category for option sections that cannot be
	// normalized.
	ErrInvalidOption = domain.ErrInvalidOption
	// ErrInvalidProjection is the category for select sections that cannot
	// be normalized.
	ErrInvalidProjection = domain.ErrInvalidProjection
	// ErrMixedProjection is returned when a projection both keeps and
	// omits fields other than the identifier field.
	ErrMixedProjection = domain.ErrMixedProjection
	// ErrUnknownNamespace is returned by [Store] when a query names a
	// namespace that was never registered.
	ErrUnknownNamespace = domain.ErrUnknownNamespace
	// ErrCursorClosed is returned when operating on a closed [Cursor].
	ErrCursorClosed = domain.ErrCursorClosed
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = domain.ErrScanBeforeNext
	// ErrTargetNil is returned when a decode target is nil.
	ErrTargetNil = domain.ErrTargetNil
)

// ErrUnknownOperator is returned when a filter uses an operator token outside
// the registered operator set.
type ErrUnknownOperator = domain.ErrUnknownOperator

// ErrUnknownAggregate is returned when an aggregate section calls a function
// outside the registered function set.
type ErrUnknownAggregate = domain.ErrUnknownAggregate

// ErrOperandArity is returned when an operator receives an operand list that
// does not fit its arity class.
type ErrOperandArity = domain.ErrOperandArity

// ErrCannotCompare is returned when two values have no defined ordering.
type ErrCannotCompare = domain.ErrCannotCompare

// Predicate is a node in a canonical filter tree.
type Predicate = domain.Predicate

// Condition is a single canonical field comparison.
type Condition = domain.Condition

// Projection is the canonical form of a select section.
type Projection = domain.Projection

// ProjectionField describes a single projected field.
type ProjectionField = domain.ProjectionField

// Aggregate is the canonical form of an aggregate section.
type Aggregate = domain.Aggregate

// AggregateCall is a single aggregate function call.
type AggregateCall = domain.AggregateCall

// Options is the canonical form of an option section.
type Options = domain.Options

// Sort lists the fields query results are ordered by.
type Sort = domain.Sort

// SortName is one sort field with its direction.
type SortName = domain.SortName

// QueryDocument is a fully normalized query.
type QueryDocument = domain.QueryDocument

// Normalizer turns raw query documents into canonical ones.
type Normalizer = domain.Normalizer

// Store executes canonical query documents against in-memory records.
type Store = domain.Store

// Cursor iterates over query results.
type Cursor = domain.Cursor

// Registry holds the operator and aggregate function sets.
type Registry = domain.Registry

// NewNormalizer creates a normalizer with the provided configuration
// options. See [normalizer.NewNormalizer].
func NewNormalizer(options ...normalizer.Option) Normalizer {
	return normalizer.NewNormalizer(options...)
}

// NewRegistry creates an operator registry seeded with the default operator
// and aggregate function sets. See [registry.NewRegistry].
func NewRegistry(options ...registry.Option) Registry {
	return registry.NewRegistry(options...)
}

// NewStore creates an in-memory store. See [store.NewStore].
func NewStore(options ...store.Option) Store {
	return store.NewStore(options...)
}

// Normalize expands a raw query document into its canonical form using a
// normalizer with default configuration.
func Normalize(raw any) (QueryDocument, error) {
	return normalizer.NewNormalizer().Normalize(raw)
}
