package fieldnavigator

import "github.com/docquery-go/docquery/domain"

// Option configures the FieldNavigator in [NewFieldNavigator].
type Option func(*FieldNavigator)

// WithDocumentFactory sets the factory used to create intermediate documents
// in EnsureField.
func WithDocumentFactory(docFac domain.DocumentFactory) Option {
	return func(fn *FieldNavigator) { fn.docFac = docFac }
}
