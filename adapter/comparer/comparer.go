// Package comparer provides the total ordering used by range operators,
// order options and indexes. Values of different kinds sort by kind: null,
// numbers, strings, booleans, dates, arrays, then documents.
package comparer

import (
	"cmp"
	"math/big"
	"slices"
	"time"

	"github.com/docquery-go/docquery/domain"
)

// Comparer implements [domain.Comparer].
type Comparer struct{}

// NewComparer returns a new implementation of [domain.Comparer].
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Kind ranks in the total ordering. Undefined sorts before everything.
const (
	kindUndefined = iota
	kindNil
	kindNumber
	kindString
	kindBool
	kindTime
	kindArray
	kindDocument
	kindUnknown
)

// Comparable implements [domain.Comparer]. Only values of the same scalar
// kind count as comparable for range operators.
func (c *Comparer) Comparable(a, b any) bool {
	if !c.defined(a) || !c.defined(b) {
		return false
	}
	ka, kb := c.kind(c.value(a)), c.kind(c.value(b))
	if ka != kb {
		return false
	}
	switch ka {
	case kindNumber, kindString, kindTime:
		return true
	}
	return false
}

// Compare implements [domain.Comparer].
func (c *Comparer) Compare(a any, b any) (int, error) {
	// Undefined addresses sort below every defined value.
	da, db := c.defined(a), c.defined(b)
	if !da || !db {
		return c.compareBool(da, db), nil
	}
	a, b = c.value(a), c.value(b)

	ka, kb := c.kind(a), c.kind(b)
	if ka == kindUnknown || kb == kindUnknown {
		return 0, domain.ErrCannotCompare{A: a, B: b}
	}
	if ka != kb {
		return cmp.Compare(ka, kb), nil
	}

	switch ka {
	case kindNil:
		return 0, nil
	case kindNumber:
		na, _ := c.asNumber(a)
		nb, _ := c.asNumber(b)
		return na.Cmp(nb), nil
	case kindString:
		return cmp.Compare(a.(string), b.(string)), nil
	case kindBool:
		return c.compareBool(a.(bool), b.(bool)), nil
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time)), nil
	case kindArray:
		return c.compareArray(a.([]any), b.([]any))
	default:
		return c.compareDoc(a.(domain.Document), b.(domain.Document))
	}
}

func (c *Comparer) kind(v any) int {
	if v == nil {
		return kindNil
	}
	if _, ok := c.asNumber(v); ok {
		return kindNumber
	}
	switch v.(type) {
	case string:
		return kindString
	case bool:
		return kindBool
	case time.Time:
		return kindTime
	case []any:
		return kindArray
	case domain.Document:
		return kindDocument
	}
	return kindUnknown
}

func (c *Comparer) compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return 1
	}
	return -1
}

func (c *Comparer) compareArray(a, b []any) (int, error) {
	for i := range min(len(a), len(b)) {
		comp, err := c.Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}
	// Common section was identical, longest one wins.
	return cmp.Compare(len(a), len(b)), nil
}

func (c *Comparer) compareDoc(a, b domain.Document) (int, error) {
	aKeys := slices.Sorted(a.Keys())
	bKeys := slices.Sorted(b.Keys())

	for i := range min(len(aKeys), len(bKeys)) {
		if comp := cmp.Compare(aKeys[i], bKeys[i]); comp != 0 {
			return comp, nil
		}
		comp, err := c.Compare(a.Get(aKeys[i]), b.Get(bKeys[i]))
		if err != nil {
			return 0, err
		}
		if comp != 0 {
			return comp, nil
		}
	}
	return cmp.Compare(len(aKeys), len(bKeys)), nil
}

// asNumber converts any numeric type to big.Float so float64 and int64
// compare without precision loss.
func (c *Comparer) asNumber(v any) (*big.Float, bool) {
	r := big.NewFloat(0)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		r.SetFloat64(float64(n))
	case float64:
		r.SetFloat64(n)
	default:
		return nil, false
	}
	return r, true
}

func (c *Comparer) defined(v any) bool {
	if g, ok := v.(domain.Getter); ok {
		_, defined := g.Get()
		return defined
	}
	return true
}

func (c *Comparer) value(v any) any {
	if g, ok := v.(domain.Getter); ok {
		val, _ := g.Get()
		return val
	}
	return v
}
