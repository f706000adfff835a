// Package grouper applies canonical aggregate calls to document sets.
package grouper

import (
	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/adapter/fieldnavigator"
	"github.com/docquery-go/docquery/adapter/hasher"
	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
)

// CountField is the field added to grouped documents holding the group size.
const CountField = "count"

// Grouper implements [domain.Grouper].
type Grouper struct {
	fn     domain.FieldNavigator
	docFac domain.DocumentFactory
	hasher domain.Hasher
}

// NewGrouper returns a new implementation of [domain.Grouper].
func NewGrouper(options ...Option) domain.Grouper {
	g := &Grouper{}
	for _, option := range options {
		option(g)
	}
	if g.docFac == nil {
		g.docFac = data.NewDocument
	}
	if g.fn == nil {
		g.fn = fieldnavigator.NewFieldNavigator(
			fieldnavigator.WithDocumentFactory(g.docFac),
		)
	}
	if g.hasher == nil {
		g.hasher = hasher.NewHasher()
	}
	return g
}

// Group implements [domain.Grouper]. Calls apply in order, each one replacing
// the document set with one document per distinct key tuple plus a group
// count. Groups keep first-seen order.
func (g *Grouper) Group(docs []domain.Document, a domain.Aggregate) ([]domain.Document, error) {
	if a.Empty() {
		return docs, nil
	}
	var err error
	for _, call := range a.Calls {
		if call.Func != registry.FuncGroup {
			return nil, domain.ErrUnknownAggregate{Function: call.Func}
		}
		if docs, err = g.groupBy(docs, call.Fields); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (g *Grouper) groupBy(docs []domain.Document, fields []string) ([]domain.Document, error) {
	addresses := make([][]string, len(fields))
	for n, field := range fields {
		addr, err := g.fn.GetAddress(field)
		if err != nil {
			return nil, err
		}
		addresses[n] = addr
	}

	var res []domain.Document
	groups := make(map[uint64]domain.Document)

	for _, doc := range docs {
		tuple, err := g.keyTuple(doc, addresses)
		if err != nil {
			return nil, err
		}
		key, err := g.hasher.Hash(tuple)
		if err != nil {
			return nil, err
		}

		if group, ok := groups[key]; ok {
			group.Set(CountField, group.Get(CountField).(int64)+1)
			continue
		}

		group, err := g.docFac(nil)
		if err != nil {
			return nil, err
		}
		for n, field := range fields {
			group.Set(field, tuple[n])
		}
		group.Set(CountField, int64(1))
		groups[key] = group
		res = append(res, group)
	}
	return res, nil
}

// keyTuple resolves the grouped field values for one document. Undefined
// fields group under nil.
func (g *Grouper) keyTuple(doc domain.Document, addresses [][]string) ([]any, error) {
	tuple := make([]any, len(addresses))
	for n, addr := range addresses {
		values, _, err := g.fn.GetField(doc, addr...)
		if err != nil {
			return nil, err
		}
		tuple[n], _ = values[0].Get()
	}
	return tuple, nil
}
