// Package structure contains structural inspection helpers used to dispatch
// raw query values: deciding whether a value is a mapping, a sequence or a
// scalar, and iterating over it as such. The decision is purely structural and
// never depends on field names.
package structure

import (
	"errors"
	"iter"
	"math"
	"time"

	"github.com/goccy/go-reflect"

	"github.com/docquery-go/docquery/domain"
)

var (
	// ErrNilValue may be returned by [Mapping] or [Sequence] when a nil
	// value is passed as argument.
	ErrNilValue = errors.New("nil value")
)

var docReflectType = reflect.TypeOf((*domain.Document)(nil)).Elem()

// ErrNonMapping is returned by [Mapping] when a value is neither a map, a
// struct nor a [domain.Document].
type ErrNonMapping struct {
	Type reflect.Type
}

// Error implements [error].
func (e ErrNonMapping) Error() string {
	return "value of type " + e.Type.String() + " is not a mapping"
}

// ErrNonSequence is returned by [Sequence] when a value is neither a slice
// nor an array.
type ErrNonSequence struct {
	Type reflect.Type
}

// Error implements [error].
func (e ErrNonSequence) Error() string {
	return "value of type " + e.Type.String() + " is not a sequence"
}

// atoms are values that are always scalar, even when their underlying kind
// would otherwise iterate. Strings and byte slices stay whole.
func isAtom(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, time.Duration, []byte:
		return true
	default:
		return false
	}
}

// IsScalar reports whether the value is neither a mapping nor a sequence.
func IsScalar(v any) bool {
	if v == nil {
		return true
	}
	if isAtom(v) {
		return true
	}
	if _, ok := v.(domain.Document); ok {
		return false
	}
	r := reflect.ValueNoEscapeOf(v)
	for r.Kind() == reflect.Ptr {
		if r.IsNil() {
			return true
		}
		r = r.Elem()
	}
	switch r.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return false
	default:
		return true
	}
}

// Mapping returns an iterator over the entries of a mapping-like value: a
// map with string keys, a struct, or a [domain.Document]. The second return
// is the entry count.
func Mapping(v any) (iter.Seq2[string, any], int, error) {
	if v == nil {
		return nil, 0, ErrNilValue
	}
	if isAtom(v) {
		return nil, 0, ErrNonMapping{Type: reflect.TypeOf(v)}
	}
	switch t := v.(type) {
	case domain.Document:
		return t.Iter(), t.Len(), nil
	case map[string]any:
		return mapEntries(t), len(t), nil
	case map[string]string:
		return mapEntries(t), len(t), nil
	case map[string]bool:
		return mapEntries(t), len(t), nil
	case map[string]int:
		return mapEntries(t), len(t), nil
	case map[string]int64:
		return mapEntries(t), len(t), nil
	case map[string]float64:
		return mapEntries(t), len(t), nil
	}
	return reflectMapping(v)
}

func reflectMapping(v any) (iter.Seq2[string, any], int, error) {
	r := reflect.ValueNoEscapeOf(v)
	for r.Kind() == reflect.Ptr || r.Kind() == reflect.Interface {
		if r.IsNil() {
			return nil, 0, ErrNilValue
		}
		r = r.Elem()
	}
	if r.Type().Implements(docReflectType) {
		doc := r.Interface().(domain.Document)
		return doc.Iter(), doc.Len(), nil
	}
	switch r.Kind() {
	case reflect.Map:
		if r.Type().Key().Kind() != reflect.String {
			return nil, 0, ErrNonMapping{Type: r.Type()}
		}
		return reflectMapEntries(r), r.Len(), nil
	case reflect.Struct:
		return structEntries(r)
	default:
		return nil, 0, ErrNonMapping{Type: r.Type()}
	}
}

func mapEntries[T any](m map[string]T) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

func reflectMapEntries(r reflect.Value) iter.Seq2[string, any] {
	keys := r.MapKeys()
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k.String(), r.MapIndex(k).Interface()) {
				return
			}
		}
	}
}

// structEntries iterates exported struct fields, honoring the docquery tag
// for renames and omission.
func structEntries(r reflect.Value) (iter.Seq2[string, any], int, error) {
	typ := r.Type()
	type entry struct {
		key string
		val any
	}
	entries := make([]entry, 0, typ.NumField())
	for n := range typ.NumField() {
		field := typ.Field(n)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("docquery"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		entries = append(entries, entry{key: name, val: r.Field(n).Interface()})
	}
	return func(yield func(string, any) bool) {
		for _, e := range entries {
			if !yield(e.key, e.val) {
				return
			}
		}
	}, len(entries), nil
}

// Sequence returns an iterator over the elements of a sequence-like value: a
// slice or an array of any element type. Strings and byte slices are atoms,
// not sequences. The second return is the element count.
func Sequence(v any) (iter.Seq[any], int, error) {
	if v == nil {
		return nil, 0, ErrNilValue
	}
	if isAtom(v) {
		return nil, 0, ErrNonSequence{Type: reflect.TypeOf(v)}
	}
	switch t := v.(type) {
	case []any:
		return sliceElems(t), len(t), nil
	case []string:
		return sliceElems(t), len(t), nil
	case []int:
		return sliceElems(t), len(t), nil
	case []int64:
		return sliceElems(t), len(t), nil
	case []float64:
		return sliceElems(t), len(t), nil
	case []bool:
		return sliceElems(t), len(t), nil
	}
	r := reflect.ValueNoEscapeOf(v)
	for r.Kind() == reflect.Ptr || r.Kind() == reflect.Interface {
		if r.IsNil() {
			return nil, 0, ErrNilValue
		}
		r = r.Elem()
	}
	switch r.Kind() {
	case reflect.Slice, reflect.Array:
		return reflectSliceElems(r), r.Len(), nil
	default:
		return nil, 0, ErrNonSequence{Type: r.Type()}
	}
}

func sliceElems[T any](s []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func reflectSliceElems(r reflect.Value) iter.Seq[any] {
	length := r.Len()
	return func(yield func(any) bool) {
		for n := range length {
			if !yield(r.Index(n).Interface()) {
				return
			}
		}
	}
}

// AsInteger converts any built-in number to int64 and reports whether the
// argument is a whole number.
func AsInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float32:
		if trunc := math.Trunc(float64(t)); trunc == float64(t) {
			return int64(trunc), true
		}
		return 0, false
	case float64:
		if trunc := math.Trunc(t); trunc == t {
			return int64(trunc), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Contains checks if the given value is present in the slice, using fn as the
// equality test.
func Contains[T any, S ~[]T](s S, t T, fn func(a, b T) (bool, error)) (bool, error) {
	var ok bool
	var err error
	for _, v := range s {
		if ok, err = fn(v, t); err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
