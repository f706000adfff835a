package projector

import "github.com/docquery-go/docquery/domain"

// Option configures the Projector in [NewProjector].
type Option func(*Projector)

// WithDocumentFactory sets the factory used to build projected documents.
func WithDocumentFactory(docFac domain.DocumentFactory) Option {
	return func(p *Projector) { p.docFac = docFac }
}

// WithFieldNavigator sets the navigator used to resolve projected fields.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(p *Projector) { p.fn = fn }
}

// WithIdentifierField sets the field treated as the record identifier.
func WithIdentifierField(field string) Option {
	return func(p *Projector) { p.identifier = field }
}
