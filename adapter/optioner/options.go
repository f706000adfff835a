package optioner

// WithLenientKeys makes the normalizer skip unrecognized option keys instead
// of rejecting them.
func WithLenientKeys(lenient bool) Option {
	return func(o *Optioner) {
		o.lenient = lenient
	}
}

// Option configures optioner behavior through the functional options pattern.
type Option func(*Optioner)
