package normalizer

import "github.com/docquery-go/docquery/domain"

// Option configures the Normalizer in [NewNormalizer].
type Option func(*Normalizer)

// WithRegistry sets the registry shared with default section normalizers.
func WithRegistry(reg domain.Registry) Option {
	return func(n *Normalizer) { n.reg = reg }
}

// WithFilterer sets the filter section normalizer.
func WithFilterer(f domain.Filterer) Option {
	return func(n *Normalizer) { n.fltr = f }
}

// WithSelector sets the select section normalizer.
func WithSelector(s domain.Selector) Option {
	return func(n *Normalizer) { n.slctr = s }
}

// WithAggregator sets the aggregate section normalizer.
func WithAggregator(a domain.Aggregator) Option {
	return func(n *Normalizer) { n.aggr = a }
}

// WithOptioner sets the option section normalizer.
func WithOptioner(o domain.Optioner) Option {
	return func(n *Normalizer) { n.optnr = o }
}

// WithStrictSections makes unknown top level keys an error instead of being
// ignored.
func WithStrictSections(strict bool) Option {
	return func(n *Normalizer) { n.strict = strict }
}
