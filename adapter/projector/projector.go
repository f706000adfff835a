// Package projector contains the default [domain.Projector] implementation.
package projector

import (
	"maps"
	"slices"

	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/adapter/fieldnavigator"
	"github.com/docquery-go/docquery/domain"
)

// Projector implements [domain.Projector].
type Projector struct {
	fn         domain.FieldNavigator
	docFac     domain.DocumentFactory
	identifier string
}

// NewProjector returns a new implementation of [domain.Projector].
func NewProjector(options ...Option) domain.Projector {
	p := &Projector{}
	for _, option := range options {
		option(p)
	}
	if p.docFac == nil {
		p.docFac = data.NewDocument
	}
	if p.fn == nil {
		p.fn = fieldnavigator.NewFieldNavigator(
			fieldnavigator.WithDocumentFactory(p.docFac),
		)
	}
	if p.identifier == "" {
		p.identifier = "_id"
	}
	return p
}

// Project implements [domain.Projector]. A projection that both keeps and
// omits fields other than the identifier is rejected. Rendering modes are
// backend concerns and ignored here.
func (q *Projector) Project(docs []domain.Document, p domain.Projection) ([]domain.Document, error) {
	if len(p.Fields) == 0 {
		return docs, nil
	}

	keepID := true
	addresses := make([][]string, 0, len(p.Fields))

	fields, kept := 0, 0
	for _, field := range p.Fields {
		if field.Name == q.identifier {
			keepID = field.Include
			continue
		}
		fields++
		if field.Include {
			kept++
		}
		if kept > 0 && kept != fields {
			return nil, domain.ErrMixedProjection
		}
		addr, err := q.fn.GetAddress(field.Name)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, addr)
	}

	res := make([]domain.Document, len(docs))
	for n, doc := range docs {
		projected, err := q.projectDoc(doc, addresses, kept != 0)
		if err != nil {
			return nil, err
		}
		if keepID {
			if doc.Has(q.identifier) {
				projected.Set(q.identifier, doc.Get(q.identifier))
			}
		} else {
			projected.Unset(q.identifier)
		}
		res[n] = projected
	}
	return res, nil
}

func (q *Projector) projectDoc(doc domain.Document, addresses [][]string, keep bool) (domain.Document, error) {
	if keep || len(addresses) == 0 {
		return q.keepFields(doc, addresses)
	}
	return q.omitFields(doc, addresses)
}

func (q *Projector) keepFields(doc domain.Document, addresses [][]string) (domain.Document, error) {
	res, err := q.docFac(nil)
	if err != nil {
		return nil, err
	}

	for _, addr := range addresses {
		values, expanded, err := q.fn.GetField(doc, addr...)
		if err != nil {
			return nil, err
		}
		fieldValue, ok := q.readFields(values, expanded)
		if !ok {
			continue
		}
		created, err := q.fn.EnsureField(res, addr...)
		if err != nil {
			return nil, err
		}
		for _, c := range created {
			c.Set(fieldValue)
		}
	}
	return res, nil
}

func (q *Projector) readFields(f []domain.GetSetter, expanded bool) (any, bool) {
	if !expanded {
		return f[0].Get()
	}
	res := make([]any, len(f))
	for n, field := range f {
		value, _ := field.Get()
		res[n] = value
	}
	return res, true
}

func (q *Projector) omitFields(doc domain.Document, addresses [][]string) (domain.Document, error) {
	res, err := q.clone(doc)
	if err != nil {
		return nil, err
	}
	for _, addr := range addresses {
		values, _, err := q.fn.GetField(res, addr...)
		if err != nil {
			return nil, err
		}
		for _, value := range values {
			value.Unset()
		}
	}
	return res, nil
}

// clone copies the top level so omissions never mutate stored records.
func (q *Projector) clone(doc domain.Document) (domain.Document, error) {
	if m, ok := doc.(data.M); ok {
		return maps.Clone(m), nil
	}
	res, err := q.docFac(nil)
	if err != nil {
		return nil, err
	}
	for _, key := range slices.Collect(doc.Keys()) {
		res.Set(key, doc.Get(key))
	}
	return res, nil
}
