package evaluator

import "github.com/docquery-go/docquery/domain"

// Option configures the Evaluator in [NewEvaluator].
type Option func(*Evaluator)

// WithComparer sets the comparer used by relational operators.
func WithComparer(c domain.Comparer) Option {
	return func(e *Evaluator) { e.comparer = c }
}

// WithFieldNavigator sets the navigator used to resolve condition fields.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(e *Evaluator) { e.fieldNavigator = fn }
}
