// Package data holds the default [domain.Document] implementation, a plain
// map with reflection based construction from user values.
package data

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	goreflect "github.com/goccy/go-reflect"

	"github.com/docquery-go/docquery/domain"
)

// TagName is the struct tag consulted when converting struct values into
// documents.
const TagName = "docquery"

var timeTyp = goreflect.TypeOf(*new(time.Time))

// M implements [domain.Document] by using a hashed map. Duplicate keys
// replace old values.
type M map[string]any

// NewDocument returns a new instance of [domain.Document] built from a map or
// struct value. Nested maps and structs become nested documents; nil returns
// an empty document.
func NewDocument(in any) (domain.Document, error) {
	if in == nil {
		return M{}, nil
	}
	if doc, ok := convertCommon(in); ok {
		return doc, nil
	}

	r := goreflect.ValueNoEscapeOf(in)
	k := r.Kind()
	for k == goreflect.Interface || k == reflect.Pointer {
		if r.IsNil() {
			return M{}, nil
		}
		r = r.Elem()
		k = r.Kind()
	}
	if k != goreflect.Struct && k != goreflect.Map {
		return nil, fmt.Errorf("expected map or struct, got %s", r.Type().String())
	}
	value, err := convertReflect(r)
	if err != nil {
		return nil, err
	}
	return value.(domain.Document), nil
}

// convertCommon handles the map types most callers pass, skipping reflection.
func convertCommon(v any) (domain.Document, bool) {
	switch t := v.(type) {
	case M:
		return t, true
	case domain.Document:
		return t, true
	case map[string]any:
		return M(t), true
	case map[string]string:
		return fromMap(t), true
	case map[string]bool:
		return fromMap(t), true
	case map[string]int:
		return fromMap(t), true
	case map[string]int64:
		return fromMap(t), true
	case map[string]float64:
		return fromMap(t), true
	case map[string]time.Time:
		return fromMap(t), true
	default:
		return nil, false
	}
}

func fromMap[T any](v map[string]T) domain.Document {
	res := make(M, len(v))
	for k, v := range v {
		res[k] = v
	}
	return res
}

func convertReflect(r goreflect.Value) (any, error) {
	for r.Kind() == reflect.Pointer || r.Kind() == goreflect.Interface {
		r = r.Elem()
	}
	switch r.Kind() {
	case goreflect.Invalid:
		return nil, nil
	case goreflect.Slice:
		if r.IsNil() {
			return nil, nil
		}
		fallthrough
	case goreflect.Array:
		return convertList(r)
	case goreflect.Struct:
		if r.Type() == timeTyp {
			return r.Interface(), nil
		}
		return convertStruct(r)
	case goreflect.Map:
		if r.IsNil() {
			return nil, nil
		}
		return convertMapReflect(r)
	case goreflect.Chan, goreflect.Func, goreflect.Interface:
		if r.IsNil() {
			return nil, nil
		}
		return r.Interface(), nil
	default:
		return r.Interface(), nil
	}
}

func convertStruct(r goreflect.Value) (domain.Document, error) {
	typ := r.Type()
	numField := r.NumField()

	res := make(M, numField)

	for n := range numField {
		structField := typ.Field(n)
		if structField.PkgPath != "" {
			continue
		}
		name, value, keep, err := convertField(r.Field(n), structField)
		if err != nil {
			return nil, err
		}
		if keep {
			res[name] = value
		}
	}
	return res, nil
}

func convertField(r goreflect.Value, typ goreflect.StructField) (string, any, bool, error) {
	name := typ.Name
	var tagSegments []string
	if tag, ok := typ.Tag.Lookup(TagName); ok {
		if tag == "-" {
			return "", nil, false, nil
		}
		tagSegments = strings.Split(tag, ",")
		if tagSegments[0] != "" {
			name = tagSegments[0]
		}
		tagSegments = tagSegments[1:]
	}
	if slices.Contains(tagSegments, "omitempty") && isNullable(typ.Type) && r.IsNil() {
		return "", nil, false, nil
	}
	if slices.Contains(tagSegments, "omitzero") && r.IsZero() {
		return "", nil, false, nil
	}

	value, err := convertReflect(r)
	if err != nil {
		return "", nil, false, err
	}
	return name, value, true, nil
}

func convertMapReflect(v goreflect.Value) (domain.Document, error) {
	res := make(M, v.Len())
	for _, k := range v.MapKeys() {
		str := k.String()
		var err error
		if res[str], err = convertReflect(v.MapIndex(k)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func convertList(r goreflect.Value) (any, error) {
	length := r.Len()
	res := make([]any, length)
	for i := range length {
		var err error
		if res[i], err = convertReflect(r.Index(i)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func isNullable(t goreflect.Type) bool {
	k := t.Kind()
	return k == reflect.Pointer ||
		k == reflect.Slice ||
		k == reflect.Map ||
		k == reflect.Interface ||
		k == reflect.Func ||
		k == reflect.Chan
}

// ID implements [domain.Document].
func (d M) ID() any {
	return d["_id"]
}

// Get implements [domain.Document].
func (d M) Get(key string) any {
	return d[key]
}

// Set implements [domain.Document].
func (d M) Set(key string, value any) {
	d[key] = value
}

// Unset implements [domain.Document].
func (d M) Unset(key string) {
	delete(d, key)
}

// Iter implements [domain.Document].
func (d M) Iter() iter.Seq2[string, any] {
	return maps.All(d)
}

// Keys implements [domain.Document].
func (d M) Keys() iter.Seq[string] {
	return maps.Keys(d)
}

// Has implements [domain.Document].
func (d M) Has(key string) bool {
	_, has := d[key]
	return has
}

// Len implements [domain.Document].
func (d M) Len() int {
	return len(d)
}

// UnmarshalJSON implements [json.Unmarshaler]. Nested objects decode into
// nested documents.
func (d *M) UnmarshalJSON(input []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(input, &raw); err != nil {
		return err
	}
	res := make(M, len(raw))
	for k, v := range raw {
		res[k] = wrapJSON(v)
	}
	*d = res
	return nil
}

// wrapJSON converts decoded json objects to M so field navigation works on
// loaded records.
func wrapJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		res := make(M, len(t))
		for k, item := range t {
			res[k] = wrapJSON(item)
		}
		return res
	case []any:
		for i, item := range t {
			t[i] = wrapJSON(item)
		}
		return t
	default:
		return v
	}
}
