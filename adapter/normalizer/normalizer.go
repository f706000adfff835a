// Package normalizer contains the default [domain.Normalizer] implementation,
// which composes the four section normalizers into a whole-document
// normalization.
package normalizer

import (
	"fmt"

	"github.com/docquery-go/docquery/adapter/aggregator"
	"github.com/docquery-go/docquery/adapter/filterer"
	"github.com/docquery-go/docquery/adapter/optioner"
	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/adapter/selector"
	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/structure"
)

// Recognized query document sections.
const (
	SectionNamespace = "namespace"
	SectionSelect    = "select"
	SectionFilter    = "filter"
	SectionAggregate = "aggregate"
	SectionOption    = "option"
)

// Normalizer implements [domain.Normalizer].
type Normalizer struct {
	reg    domain.Registry
	fltr   domain.Filterer
	slctr  domain.Selector
	aggr   domain.Aggregator
	optnr  domain.Optioner
	strict bool
}

// NewNormalizer returns a new implementation of [domain.Normalizer]. Section
// normalizers not set through options are constructed with defaults sharing
// the normalizer's registry.
func NewNormalizer(options ...Option) domain.Normalizer {
	n := &Normalizer{}
	for _, option := range options {
		option(n)
	}
	if n.reg == nil {
		n.reg = registry.NewRegistry()
	}
	if n.fltr == nil {
		n.fltr = filterer.NewFilterer(filterer.WithRegistry(n.reg))
	}
	if n.slctr == nil {
		n.slctr = selector.NewSelector()
	}
	if n.aggr == nil {
		n.aggr = aggregator.NewAggregator(aggregator.WithRegistry(n.reg))
	}
	if n.optnr == nil {
		n.optnr = optioner.NewOptioner()
	}
	return n
}

// Normalize implements [domain.Normalizer]. The raw document must be a
// mapping holding at least a non-empty namespace; each present section is
// normalized by its section normalizer and each absent section defaults to
// its neutral value. The first error aborts the whole normalization, so a
// document is never partially canonical.
func (n *Normalizer) Normalize(raw any) (domain.QueryDocument, error) {
	if raw == nil {
		return domain.QueryDocument{}, domain.ErrMissingNamespace
	}
	if doc, ok := raw.(domain.QueryDocument); ok {
		return n.revalidate(doc)
	}

	entries, _, err := structure.Mapping(raw)
	if err != nil {
		return domain.QueryDocument{}, fmt.Errorf(
			"%w: query document must be a mapping, got %T", domain.ErrMissingNamespace, raw,
		)
	}

	sections := make(map[string]any, 5)
	for key, value := range entries {
		switch key {
		case SectionNamespace, SectionSelect, SectionFilter, SectionAggregate, SectionOption:
			sections[key] = value
		default:
			if n.strict {
				return domain.QueryDocument{}, domain.ErrUnknownOption{Key: key}
			}
		}
	}

	namespace, ok := sections[SectionNamespace].(string)
	if !ok || namespace == "" {
		return domain.QueryDocument{}, domain.ErrMissingNamespace
	}

	return n.normalizeSections(domain.QueryDocument{Namespace: namespace}, sections)
}

func (n *Normalizer) normalizeSections(doc domain.QueryDocument, sections map[string]any) (domain.QueryDocument, error) {
	var err error
	if doc.Filter, err = n.fltr.NormalizeFilter(sections[SectionFilter]); err != nil {
		return domain.QueryDocument{}, fmt.Errorf("filter: %w", err)
	}
	if doc.Select, err = n.slctr.NormalizeSelect(sections[SectionSelect]); err != nil {
		return domain.QueryDocument{}, fmt.Errorf("select: %w", err)
	}
	if doc.Aggregate, err = n.aggr.NormalizeAggregate(sections[SectionAggregate]); err != nil {
		return domain.QueryDocument{}, fmt.Errorf("aggregate: %w", err)
	}
	if doc.Option, err = n.optnr.NormalizeOption(sections[SectionOption]); err != nil {
		return domain.QueryDocument{}, fmt.Errorf("option: %w", err)
	}
	return doc, nil
}

// revalidate runs an already-canonical document back through the section
// normalizers, which pass canonical values through unchanged. Normalizing a
// canonical document therefore yields an identical document.
func (n *Normalizer) revalidate(doc domain.QueryDocument) (domain.QueryDocument, error) {
	if doc.Namespace == "" {
		return domain.QueryDocument{}, domain.ErrMissingNamespace
	}
	sections := map[string]any{
		SectionFilter:    doc.Filter,
		SectionSelect:    doc.Select,
		SectionAggregate: doc.Aggregate,
		SectionOption:    doc.Option,
	}
	return n.normalizeSections(domain.QueryDocument{Namespace: doc.Namespace}, sections)
}
