package domain

// Combinator tokens accepted in raw filters and used verbatim in canonical
// predicate trees.
const (
	CombinatorAnd = "$and"
	CombinatorOr  = "$or"
)

// Arity classifies registered filter operators by the shape of their operand
// list.
type Arity uint8

const (
	// ArityBinary operators take exactly one operand.
	ArityBinary Arity = iota + 1
	// ArityTernary operators take exactly two operands as an ordered pair.
	ArityTernary
	// ArityList operators take a non-empty ordered sequence of operands.
	ArityList
)

// Predicate is a node in a canonical condition tree. A branch node carries a
// combinator and an ordered list of children; a leaf node carries a single
// condition. The zero value is the empty predicate, which matches every
// document.
type Predicate struct {
	// Combinator is [CombinatorAnd] or [CombinatorOr] on branch nodes and
	// empty on leaves.
	Combinator string
	// Children holds the branch children in input order.
	Children []Predicate
	// Leaf holds the condition of a leaf node.
	Leaf *Condition
}

// Empty reports whether the predicate is the match-all predicate.
func (p Predicate) Empty() bool {
	return p.Combinator == "" && p.Leaf == nil && len(p.Children) == 0
}

// Condition is a single canonical field comparison. Operator is always a
// token from the registered operator set and Operands always satisfies the
// operator's arity class.
type Condition struct {
	Field    string
	Operator string
	Operands []any
}

// Projection is the canonical form of a select section: an ordered list of
// fields to return. An absent select section normalizes to the implicit
// identifier field.
type Projection struct {
	Fields []ProjectionField
}

// ProjectionField describes a single projected field. Mode carries an opaque
// backend-specific rendering mode and is passed through unvalidated; when Mode
// is set, Include is true.
type ProjectionField struct {
	Name    string
	Include bool
	Mode    string
}

// Aggregate is the canonical form of an aggregate section: an ordered list of
// aggregate function calls.
type Aggregate struct {
	Calls []AggregateCall
}

// Empty reports whether no aggregation was requested.
func (a Aggregate) Empty() bool { return len(a.Calls) == 0 }

// AggregateCall is a single aggregate function applied to an ordered list of
// field names. Field order is significant and preserved verbatim from the
// input.
type AggregateCall struct {
	Func   string
	Fields []string
}

// Options is the canonical form of an option section. Zero values mean the
// option was not set.
type Options struct {
	// Limit caps the number of returned records. Always >= 0; 0 means
	// unlimited.
	Limit int64
	// Page selects a 1-based page of Limit records. Always >= 0; 0 means
	// the first page.
	Page int64
	// Order lists sort fields in priority order.
	Order Sort
}

// Sort represents an ordered list of fields which should be used to sort query
// results, applied in sequence.
type Sort = []SortName

// SortName represents a single field and the direction which should be used to
// sort it. Order is 1 for ascending and -1 for descending.
type SortName struct {
	Key   string
	Order int64
}

// QueryDocument is a fully normalized query. All shorthand forms are expanded
// and every section holds its canonical representation; absent sections hold
// their neutral values.
type QueryDocument struct {
	Namespace string
	Select    Projection
	Filter    Predicate
	Aggregate Aggregate
	Option    Options
}

// DocumentFactory represents a function that constructs [Document] instances
// from structured data types. If nil is provided, returns an empty document.
type DocumentFactory = func(any) (Document, error)
