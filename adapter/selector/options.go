package selector

// WithIdentifierField sets the field projected when a query document has no
// select section.
func WithIdentifierField(name string) Option {
	return func(s *Selector) {
		s.identifier = name
	}
}

// Option configures selector behavior through the functional options pattern.
type Option func(*Selector)
