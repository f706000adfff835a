package grouper

import "github.com/docquery-go/docquery/domain"

// Option configures the Grouper in [NewGrouper].
type Option func(*Grouper)

// WithDocumentFactory sets the factory used to build group documents.
func WithDocumentFactory(docFac domain.DocumentFactory) Option {
	return func(g *Grouper) { g.docFac = docFac }
}

// WithFieldNavigator sets the navigator used to resolve grouped fields.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(g *Grouper) { g.fn = fn }
}

// WithHasher sets the hasher used to key group tuples.
func WithHasher(h domain.Hasher) Option {
	return func(g *Grouper) { g.hasher = h }
}
