package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingNamespace is returned by [Normalizer.Normalize] when the
	// query document has no namespace or the namespace is empty.
	ErrMissingNamespace = errors.New("query document namespace is missing or empty")
	// ErrMalformedCondition is the category for structurally invalid
	// filter conditions: wrong operand arity, multi-key condition
	// mappings, or combinator values that are not sequences of mappings.
	ErrMalformedCondition = errors.New("malformed condition")
	// ErrMalformedAggregate is the category for structurally invalid
	// aggregate sections, such as a group field without its marker prefix.
	ErrMalformedAggregate = errors.New("malformed aggregate")
	// ErrInvalidOption is the category for option values that fail their
	// type, range or enumeration check, and for unrecognized option keys
	// under the strict policy.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidProjection is the category for select sections that are
	// neither a sequence of field names nor a mapping of field flags.
	ErrInvalidProjection = errors.New("invalid projection")
	// ErrMixedProjection is returned when a projection both keeps and
	// omits fields other than the identifier field.
	ErrMixedProjection = errors.New("cannot both keep and omit fields except for the identifier")
	// ErrUnknownNamespace is returned by the store when a query names a
	// namespace that was never registered.
	ErrUnknownNamespace = errors.New("unknown namespace")
	// ErrCursorClosed is returned when trying to perform operations on a
	// closed [Cursor].
	ErrCursorClosed = errors.New("cursor is closed")
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = errors.New("scan called before next")
	// ErrTargetNil is returned when user provides a nil value as a target
	// to decode data into.
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned when a decode target is not a pointer.
	ErrNonPointer = errors.New("target is not a pointer")
)

// ErrUnknownOperator is returned when a filter uses an operator token that is
// not in the registered operator set.
type ErrUnknownOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnknownOperator) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Operator)
}

// ErrUnknownAggregate is returned when an aggregate section uses a function
// that is not in the registered aggregate-function set.
type ErrUnknownAggregate struct {
	Function string
}

// Error implements [error].
func (e ErrUnknownAggregate) Error() string {
	return fmt.Sprintf("unknown aggregate function %q", e.Function)
}

// ErrOperandArity is returned when an operator is given operands that do not
// match its arity class.
type ErrOperandArity struct {
	Operator string
	Want     string
	Got      int
}

// Error implements [error].
func (e ErrOperandArity) Error() string {
	return fmt.Sprintf("%s takes %s, got %d", e.Operator, e.Want, e.Got)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrOperandArity) Unwrap() error { return ErrMalformedCondition }

// ErrMultiKeyCondition is returned when a condition mapping holds more than
// one key and merged conditions are not enabled.
type ErrMultiKeyCondition struct {
	Field string
	Keys  int
}

// Error implements [error].
func (e ErrMultiKeyCondition) Error() string {
	return fmt.Sprintf("condition for %q has %d keys, want exactly 1", e.Field, e.Keys)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrMultiKeyCondition) Unwrap() error { return ErrMalformedCondition }

// ErrCombinatorValue is returned when the value of a logical combinator is not
// an ordered sequence of condition mappings.
type ErrCombinatorValue struct {
	Combinator string
}

// Error implements [error].
func (e ErrCombinatorValue) Error() string {
	return fmt.Sprintf("%s value must be a sequence of condition mappings", e.Combinator)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrCombinatorValue) Unwrap() error { return ErrMalformedCondition }

// ErrConditionValue is returned when a raw filter, or an operand inside one,
// has a shape that cannot be interpreted as a condition.
type ErrConditionValue struct {
	Field  string
	Reason string
}

// Error implements [error].
func (e ErrConditionValue) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("condition for %q: %s", e.Field, e.Reason)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrConditionValue) Unwrap() error { return ErrMalformedCondition }

// ErrFieldMarker is returned when a field reference in an expression position
// lacks the configured marker prefix.
type ErrFieldMarker struct {
	Function string
	Token    string
	Marker   rune
}

// Error implements [error].
func (e ErrFieldMarker) Error() string {
	return fmt.Sprintf("%s field %q must carry the %q marker prefix", e.Function, e.Token, e.Marker)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrFieldMarker) Unwrap() error { return ErrMalformedAggregate }

// ErrUnknownOption is returned under the strict option policy when the option
// section holds an unrecognized key.
type ErrUnknownOption struct {
	Key string
}

// Error implements [error].
func (e ErrUnknownOption) Error() string {
	return fmt.Sprintf("unrecognized option %q", e.Key)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrUnknownOption) Unwrap() error { return ErrInvalidOption }

// ErrOptionValue is returned when an option value fails its type or range
// check.
type ErrOptionValue struct {
	Key    string
	Want   string
	Actual any
}

// Error implements [error].
func (e ErrOptionValue) Error() string {
	return fmt.Sprintf("option %q must be %s, got %v", e.Key, e.Want, e.Actual)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrOptionValue) Unwrap() error { return ErrInvalidOption }

// ErrOrderDirection is returned when a sort direction is neither 1 nor -1.
type ErrOrderDirection struct {
	Field string
	Value any
}

// Error implements [error].
func (e ErrOrderDirection) Error() string {
	return fmt.Sprintf("order direction for %q must be 1 or -1, got %v", e.Field, e.Value)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrOrderDirection) Unwrap() error { return ErrInvalidOption }

// ErrProjectionValue is returned when a select mapping holds a value that is
// neither an inclusion flag nor a rendering-mode string.
type ErrProjectionValue struct {
	Field  string
	Actual any
}

// Error implements [error].
func (e ErrProjectionValue) Error() string {
	return fmt.Sprintf("projection for %q must be a flag or a mode string, got %T", e.Field, e.Actual)
}

// Unwrap implements the [errors.Is] chain.
func (e ErrProjectionValue) Unwrap() error { return ErrInvalidProjection }

// ErrNamespaceExists is returned when registering a namespace that is already
// registered.
type ErrNamespaceExists struct {
	Namespace string
}

// Error implements [error].
func (e ErrNamespaceExists) Error() string {
	return fmt.Sprintf("namespace %q is already registered", e.Namespace)
}

// ErrDecode is returned when a document cannot be decoded into the caller's
// target type.
type ErrDecode struct {
	Source any
	Target any
}

// Error implements [error].
func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}

// ErrCannotCompare is returned when two values have no defined ordering.
type ErrCannotCompare struct {
	A any
	B any
}

// Error implements [error].
func (e ErrCannotCompare) Error() string {
	return fmt.Sprintf("cannot compare unexpected types %T and %T", e.A, e.B)
}
