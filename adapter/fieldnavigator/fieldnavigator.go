// Package fieldnavigator resolves dotted field paths against documents,
// fanning out over arrays the way document query languages do.
package fieldnavigator

import (
	"strconv"
	"strings"

	"github.com/docquery-go/docquery/domain"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct {
	docFac domain.DocumentFactory
}

// NewFieldNavigator returns a new instance of [domain.FieldNavigator]. The
// factory builds the intermediate documents EnsureField creates.
func NewFieldNavigator(options ...Option) domain.FieldNavigator {
	fn := &FieldNavigator{}
	for _, option := range options {
		option(fn)
	}
	return fn
}

// GetAddress implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetAddress(field string) ([]string, error) {
	return strings.Split(field, "."), nil
}

// GetField implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetField(obj any, fieldParts ...string) ([]domain.GetSetter, bool, error) {
	return fn.walk(obj, fieldParts, false)
}

// EnsureField implements [domain.FieldNavigator].
func (fn *FieldNavigator) EnsureField(obj any, fieldParts ...string) ([]domain.GetSetter, error) {
	res, _, err := fn.walk(obj, fieldParts, true)
	return res, err
}

// step is one traversal position: the value reached so far and the address
// it was reached through.
type step struct {
	value any
	gs    domain.GetSetter
	// fanned marks values produced by expanding an array; a missing key
	// under them yields undefined instead of aborting the whole walk.
	fanned bool
}

func (fn *FieldNavigator) walk(obj any, fieldParts []string, ensure bool) ([]domain.GetSetter, bool, error) {
	undefined := []domain.GetSetter{NewUndefinedGetSetter()}
	if obj == nil || len(fieldParts) == 0 {
		return undefined, false, nil
	}

	curr := []step{{value: obj}}
	expanded := false

	for idx, part := range fieldParts {
		last := idx == len(fieldParts)-1
		queue := curr
		next := make([]step, 0, len(queue))

		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			switch t := item.value.(type) {
			case domain.Document:
				if !t.Has(part) {
					if ensure {
						if err := fn.fill(t, part, last); err != nil {
							return nil, false, err
						}
					} else if !item.fanned {
						return undefined, false, nil
					}
				}
				next = append(next, step{
					value:  t.Get(part),
					gs:     NewDocumentGetSetter(t, part),
					fanned: item.fanned,
				})
			case []any:
				i, err := strconv.Atoi(part)
				if err != nil {
					// Not an index: fan the walk out over
					// every element, then apply the current
					// part to each of them.
					expanded = true
					if len(t) == 0 {
						next = append(next, step{gs: NewUndefinedGetSetter(), fanned: true})
						continue
					}
					fan := make([]step, len(t))
					for n := range t {
						fan[n] = step{value: t[n], fanned: true}
					}
					queue = append(fan, queue...)
					continue
				}
				if i < 0 || i >= len(t) {
					if item.fanned {
						next = append(next, step{gs: NewUndefinedGetSetter(), fanned: true})
						continue
					}
					return undefined, false, nil
				}
				next = append(next, step{
					value:  t[i],
					gs:     NewArrayGetSetter(t, i),
					fanned: item.fanned,
				})
			default:
				if !item.fanned {
					return undefined, false, nil
				}
				next = append(next, step{gs: NewUndefinedGetSetter(), fanned: true})
			}
		}
		curr = next
	}

	if len(curr) == 0 {
		return undefined, expanded, nil
	}

	res := make([]domain.GetSetter, len(curr))
	for n, v := range curr {
		res[n] = v.gs
		if res[n] == nil {
			res[n] = NewUndefinedGetSetter()
		}
	}
	return res, expanded, nil
}

// fill creates the missing key: an intermediate document when more parts
// follow, an explicit nil at the leaf.
func (fn *FieldNavigator) fill(doc domain.Document, part string, last bool) error {
	if last {
		doc.Set(part, nil)
		return nil
	}
	if fn.docFac == nil {
		doc.Set(part, nil)
		return nil
	}
	newDoc, err := fn.docFac(nil)
	if err != nil {
		return err
	}
	doc.Set(part, newDoc)
	return nil
}
