// Package selector contains the default [domain.Selector] implementation: the
// normalizer for the select section of a query document.
package selector

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/structure"
)

// DefaultIdentifierField is projected when a query document has no select
// section.
const DefaultIdentifierField = "_id"

// Selector implements [domain.Selector].
type Selector struct {
	identifier string
}

// NewSelector returns a new implementation of [domain.Selector].
func NewSelector(options ...Option) domain.Selector {
	s := &Selector{
		identifier: DefaultIdentifierField,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// NormalizeSelect implements [domain.Selector]. A raw select is either an
// ordered sequence of field names, all implicitly included, or a mapping from
// field name to an inclusion flag or an opaque rendering-mode string. An
// absent or empty select yields the implicit identifier projection.
func (s *Selector) NormalizeSelect(raw any) (domain.Projection, error) {
	if raw == nil {
		return s.defaultProjection(), nil
	}
	if p, ok := raw.(domain.Projection); ok {
		if len(p.Fields) == 0 {
			return s.defaultProjection(), nil
		}
		return p, nil
	}

	if items, l, err := structure.Sequence(raw); err == nil {
		return s.normalizeSequence(items, l)
	}

	entries, l, err := structure.Mapping(raw)
	if err != nil {
		return domain.Projection{}, fmt.Errorf(
			"%w: select must be a sequence of field names or a mapping, got %T",
			domain.ErrInvalidProjection, raw,
		)
	}
	return s.normalizeMapping(entries, l)
}

func (s *Selector) normalizeSequence(items func(func(any) bool), l int) (domain.Projection, error) {
	if l == 0 {
		return s.defaultProjection(), nil
	}
	fields := make([]domain.ProjectionField, 0, l)
	for item := range items {
		name, ok := item.(string)
		if !ok {
			return domain.Projection{}, fmt.Errorf(
				"%w: select field names must be strings, got %T",
				domain.ErrInvalidProjection, item,
			)
		}
		fields = append(fields, domain.ProjectionField{Name: name, Include: true})
	}
	return domain.Projection{Fields: fields}, nil
}

// normalizeMapping resolves flag and mode values. Entries are sorted by field
// name so the canonical form does not depend on map iteration order.
func (s *Selector) normalizeMapping(entries func(func(string, any) bool), l int) (domain.Projection, error) {
	if l == 0 {
		return s.defaultProjection(), nil
	}

	fields := make([]domain.ProjectionField, 0, l)
	for name, value := range entries {
		field, err := s.normalizeField(name, value)
		if err != nil {
			return domain.Projection{}, err
		}
		fields = append(fields, field)
	}
	slices.SortFunc(fields, func(a, b domain.ProjectionField) int {
		return strings.Compare(a.Name, b.Name)
	})
	return domain.Projection{Fields: fields}, nil
}

func (s *Selector) normalizeField(name string, value any) (domain.ProjectionField, error) {
	switch t := value.(type) {
	case bool:
		return domain.ProjectionField{Name: name, Include: t}, nil
	case string:
		// Rendering modes are backend specific and pass through
		// unvalidated.
		return domain.ProjectionField{Name: name, Include: true, Mode: t}, nil
	}
	if n, ok := structure.AsInteger(value); ok {
		return domain.ProjectionField{Name: name, Include: n != 0}, nil
	}
	return domain.ProjectionField{}, domain.ErrProjectionValue{Field: name, Actual: value}
}

func (s *Selector) defaultProjection() domain.Projection {
	return domain.Projection{Fields: []domain.ProjectionField{
		{Name: s.identifier, Include: true},
	}}
}
