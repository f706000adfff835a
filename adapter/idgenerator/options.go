package idgenerator

import "io"

// Option configures the IDGenerator in [NewIDGenerator].
type Option func(*IDGenerator)

// WithReader sets the entropy source.
func WithReader(r io.Reader) Option {
	return func(g *IDGenerator) { g.reader = r }
}
