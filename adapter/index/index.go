// Package index contains the default [domain.Index] implementation, an AVL
// tree keyed by one document field.
package index

import (
	"context"
	"slices"

	"github.com/vinicius-lino-figueiredo/bst"
	"github.com/vinicius-lino-figueiredo/bst/adapter/avl"

	"github.com/docquery-go/docquery/adapter/comparer"
	"github.com/docquery-go/docquery/adapter/fieldnavigator"
	"github.com/docquery-go/docquery/domain"
)

// Index implements [domain.Index].
type Index struct {
	fieldName      string
	tree           bst.BST[any, domain.Document]
	comparer       domain.Comparer
	fieldNavigator domain.FieldNavigator
}

// NewIndex returns a new implementation of [domain.Index] covering the given
// field. Dotted paths are supported; an array value indexes the document
// under each element.
func NewIndex(fieldName string, options ...Option) domain.Index {
	i := &Index{fieldName: fieldName}
	for _, option := range options {
		option(i)
	}
	if i.comparer == nil {
		i.comparer = comparer.NewComparer()
	}
	if i.fieldNavigator == nil {
		i.fieldNavigator = fieldnavigator.NewFieldNavigator()
	}
	i.tree = avl.NewBST(false, 8, NewBSTComparer(i.comparer))
	return i
}

// FieldName implements [domain.Index].
func (i *Index) FieldName() string {
	return i.fieldName
}

// Insert implements [domain.Index].
func (i *Index) Insert(ctx context.Context, docs ...domain.Document) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	type kv struct {
		key any
		doc domain.Document
	}
	var inserted []kv

	for _, doc := range docs {
		keys, err := i.docKeys(doc)
		if err == nil {
			for _, key := range keys {
				if err = i.tree.Insert(key, doc); err != nil {
					break
				}
				inserted = append(inserted, kv{key: key, doc: doc})
			}
		}
		if err != nil {
			// Roll back so a failed batch leaves the tree untouched.
			for _, v := range inserted {
				_ = i.tree.Delete(v.key, &v.doc)
			}
			return err
		}
	}
	return nil
}

// Remove implements [domain.Index].
func (i *Index) Remove(ctx context.Context, docs ...domain.Document) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, doc := range docs {
		keys, err := i.docKeys(doc)
		if err != nil {
			return err
		}
		for _, key := range keys {
			_ = i.tree.Delete(key, &doc)
		}
	}
	return nil
}

// docKeys resolves the indexed keys of one document. An undefined field
// indexes under nil; an array value yields one key per distinct element.
func (i *Index) docKeys(doc domain.Document) ([]any, error) {
	addr, err := i.fieldNavigator.GetAddress(i.fieldName)
	if err != nil {
		return nil, err
	}
	values, _, err := i.fieldNavigator.GetField(doc, addr...)
	if err != nil {
		return nil, err
	}

	var keys []any
	for _, value := range values {
		v, _ := value.Get()
		if arr, ok := v.([]any); ok {
			keys = append(keys, arr...)
			continue
		}
		keys = append(keys, v)
	}
	if len(keys) == 0 {
		keys = []any{nil}
	}

	slices.SortFunc(keys, i.compareKeys)
	return slices.CompactFunc(keys, func(a, b any) bool { return i.compareKeys(a, b) == 0 }), nil
}

// GetMatching implements [domain.Index].
func (i *Index) GetMatching(values ...any) ([]domain.Document, error) {
	var res []domain.Document
	for _, v := range values {
		found, err := i.tree.Search(v)
		if err != nil {
			return nil, err
		}
		if found == nil {
			continue
		}
		res = append(res, found.Values()...)
	}
	return res, nil
}

// GetBetweenBounds implements [domain.Index]. Both bounds are inclusive; a
// nil bound leaves that side open.
func (i *Index) GetBetweenBounds(ctx context.Context, low, high any) ([]domain.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var qry bst.Query[any]
	if low != nil {
		qry.GreaterThan = &bst.Bound[any]{Value: low, IncludeEqual: true}
	}
	if high != nil {
		qry.LowerThan = &bst.Bound[any]{Value: high, IncludeEqual: true}
	}

	var res []domain.Document
	for doc, err := range i.tree.Query(qry) {
		if err != nil {
			return nil, err
		}
		res = append(res, doc)
	}
	return res, nil
}

// NumKeys implements [domain.Index].
func (i *Index) NumKeys() int {
	return i.tree.GetNumberOfKeys()
}

func (i *Index) compareKeys(a, b any) int {
	c, _ := i.comparer.Compare(a, b)
	return c
}
