// Package domain contains domain-specific interfaces, entities and errors for
// docquery.
//
// This package defines the canonical query model produced by normalization,
// the interfaces that must be implemented by adapters, and the error taxonomy
// shared by all components.
package domain

import (
	"context"
	"io"
	"iter"
)

// Registry resolves operator and aggregate-function tokens. Implementations
// are immutable once handed to a normalizer, so they can be shared between
// concurrent normalizations without coordination.
type Registry interface {
	// Operator returns the arity class of a registered filter operator.
	Operator(token string) (Arity, bool)
	// AggregateFunction reports whether the token names a registered
	// aggregate function.
	AggregateFunction(token string) bool
}

// Filterer normalizes a raw filter section into a canonical predicate tree.
type Filterer interface {
	// NormalizeFilter expands all shorthand forms and validates operator
	// tokens and operand arity. A nil raw filter yields the empty
	// predicate.
	NormalizeFilter(raw any) (Predicate, error)
}

// Selector normalizes a raw select section into a canonical projection.
type Selector interface {
	// NormalizeSelect resolves sequence and mapping select forms. A nil or
	// empty raw select yields the implicit identifier projection.
	NormalizeSelect(raw any) (Projection, error)
}

// Aggregator normalizes a raw aggregate section into canonical aggregate
// calls.
type Aggregator interface {
	// NormalizeAggregate validates function tokens and strips field
	// markers, preserving field order verbatim.
	NormalizeAggregate(raw any) (Aggregate, error)
}

// Optioner normalizes a raw option section into canonical options.
type Optioner interface {
	// NormalizeOption validates limit, page and order values.
	NormalizeOption(raw any) (Options, error)
}

// Normalizer turns a raw query document into its canonical form.
type Normalizer interface {
	// Normalize validates the namespace and runs the four section
	// normalizers, defaulting absent sections to their neutral values.
	// Normalization is atomic: it either returns a fully canonical
	// document or fails with the first encountered error.
	Normalize(raw any) (QueryDocument, error)
}

// Comparer provides ordering and comparison operations for different data
// types.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be compared.
	Comparable(any, any) bool
}

// Getter represents a value that can be treated as undefined.
type Getter interface {
	// Get returns the value and a flag that reports whether the value
	// counts as defined. An unset document key or an out-of-bounds array
	// index is undefined; an explicit nil is defined.
	Get() (value any, defined bool)
}

// GetSetter represents an addressable value in a [Document], returned by
// [FieldNavigator] so unset values can be identified and fields written in
// place. The default implementation is not concurrency safe.
type GetSetter interface {
	Getter
	// Set writes a new value at the address.
	Set(any)
	// Unset removes the value from its parent object or array.
	Unset()
}

// FieldNavigator provides field access operations with dot notation support.
type FieldNavigator interface {
	// GetField extracts values from nested documents, following path
	// parts. The second return reports whether an array was fanned out
	// while following the path.
	GetField(any, ...string) ([]GetSetter, bool, error)
	// EnsureField creates missing intermediate objects while following
	// path parts.
	EnsureField(any, ...string) ([]GetSetter, error)
	// GetAddress splits a dotted field name into path parts.
	GetAddress(field string) ([]string, error)
}

// Document represents a record held by the store, used internally to carry
// raw data to a user-defined type via a cursor. Document is read by one
// goroutine at a time and doesn't need to be concurrency safe.
type Document interface {
	// ID returns the document identifier, if any.
	ID() any
	// Get returns the value under the given key, or nil if unset.
	Get(string) any
	// Set sets the value under the given key.
	Set(string, any)
	// Unset unsets the value under the given key.
	Unset(string)
	// Iter returns an unordered sequence of key-value pairs.
	Iter() iter.Seq2[string, any]
	// Keys returns an unordered sequence of keys.
	Keys() iter.Seq[string]
	// Has reports whether a value is set under the given key.
	Has(string) bool
	// Len returns the number of set fields.
	Len() int
}

// Evaluator decides whether documents satisfy a canonical predicate.
type Evaluator interface {
	// Match reports whether the document satisfies the predicate. The
	// empty predicate matches everything.
	Match(doc Document, p Predicate) (bool, error)
}

// Projector applies a canonical projection to documents.
type Projector interface {
	// Project returns new documents holding only the projected fields.
	// Rendering modes are backend specific and ignored by the reference
	// implementation.
	Project(docs []Document, p Projection) ([]Document, error)
}

// Grouper applies canonical aggregate calls to documents.
type Grouper interface {
	// Group collapses documents into one document per distinct key tuple,
	// preserving first-seen group order.
	Group(docs []Document, a Aggregate) ([]Document, error)
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts from one data format to another.
	Decode(source any, target any) error
}

// Hasher generates hash values for grouping and deduplication.
type Hasher interface {
	// Hash generates a hash value for the given data.
	Hash(any) (uint64, error)
}

// IDGenerator creates identifiers for inserted documents.
type IDGenerator interface {
	// GenerateID returns a new identifier of the given length.
	GenerateID(length int) (string, error)
}

// Cursor provides iteration over query results.
type Cursor interface {
	// ID returns the cursor identifier.
	ID() string
	// Next advances the cursor to the next document, returning true if
	// available.
	Next() bool
	// Scan decodes the current document into the target.
	Scan(ctx context.Context, target any) error
	// All executes the cursor and decodes every remaining document into
	// the target slice.
	All(ctx context.Context, target any) error
	// Err returns any error that occurred during iteration.
	Err() error
	// Close releases cursor resources.
	Close() error
}

// Index provides fast document lookups based on a field value.
type Index interface {
	// FieldName returns the field this index covers.
	FieldName() string
	// Insert adds documents to the index.
	Insert(ctx context.Context, docs ...Document) error
	// Remove removes documents from the index.
	Remove(ctx context.Context, docs ...Document) error
	// GetMatching returns documents whose indexed field equals any of the
	// given values.
	GetMatching(values ...any) ([]Document, error)
	// GetBetweenBounds returns documents whose indexed field falls inside
	// the inclusive range.
	GetBetweenBounds(ctx context.Context, low, high any) ([]Document, error)
	// NumKeys returns the number of distinct keys in the index.
	NumKeys() int
}

// Store is the reference executor for canonical query documents. It routes a
// query to the namespace it names and runs filter, aggregate, select and
// option sections against in-memory records.
type Store interface {
	// Register creates an empty namespace.
	Register(namespace string) error
	// Namespaces returns the registered namespace names, sorted.
	Namespaces() []string
	// Insert adds records to a namespace, generating identifiers for
	// records that have none.
	Insert(ctx context.Context, namespace string, records ...any) (Cursor, error)
	// Load reads newline-delimited JSON records from r into a namespace
	// and returns how many were inserted.
	Load(ctx context.Context, namespace string, r io.Reader) (int, error)
	// EnsureIndex creates an index on a namespace field. Creating an
	// existing index is a no-op.
	EnsureIndex(ctx context.Context, namespace, field string) error
	// Execute runs a canonical query document and returns a cursor over
	// the result records.
	Execute(ctx context.Context, doc QueryDocument) (Cursor, error)
	// Count returns the number of records in a namespace matching the
	// predicate.
	Count(ctx context.Context, namespace string, p Predicate) (int64, error)
	// Drop removes a namespace and all its records.
	Drop(namespace string) error
}
