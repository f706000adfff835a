package store

import "github.com/docquery-go/docquery/domain"

// Option configures the Store in [NewStore].
type Option func(*Store)

// WithDocumentFactory sets the factory converting inserted records.
func WithDocumentFactory(docFac domain.DocumentFactory) Option {
	return func(s *Store) { s.docFac = docFac }
}

// WithComparer sets the comparer used for ordering and indexes.
func WithComparer(c domain.Comparer) Option {
	return func(s *Store) { s.comparer = c }
}

// WithFieldNavigator sets the navigator resolving record fields.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(s *Store) { s.fieldNavigator = fn }
}

// WithEvaluator sets the evaluator matching records against predicates.
func WithEvaluator(e domain.Evaluator) Option {
	return func(s *Store) { s.evaluator = e }
}

// WithProjector sets the projector applied to result records.
func WithProjector(p domain.Projector) Option {
	return func(s *Store) { s.projector = p }
}

// WithGrouper sets the grouper applied to aggregate sections.
func WithGrouper(g domain.Grouper) Option {
	return func(s *Store) { s.grouper = g }
}

// WithDecoder sets the decoder cursors scan results with.
func WithDecoder(dec domain.Decoder) Option {
	return func(s *Store) { s.decoder = dec }
}

// WithIDGenerator sets the generator for records inserted without an
// identifier.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(s *Store) { s.idGenerator = g }
}

// WithIdentifierField sets the field treated as the record identifier.
func WithIdentifierField(field string) Option {
	return func(s *Store) { s.identifier = field }
}
