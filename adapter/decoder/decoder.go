// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/domain"
)

// Decoder implements [domain.Decoder].
type Decoder struct{}

// NewDecoder returns a new implementation of [domain.Decoder].
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements [domain.Decoder]. The target must be a non-nil pointer.
// Struct fields map through the same tag used when building documents.
func (d *Decoder) Decode(src any, tgt any) error {
	if tgt == nil {
		return domain.ErrTargetNil
	}
	if reflect.TypeOf(tgt).Kind() != reflect.Pointer {
		return domain.ErrNonPointer
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: data.TagName,
		Result:  tgt,
	})
	if err != nil {
		return err
	}
	if m, ok := src.(data.M); ok {
		src = map[string]any(m)
	}
	if err := dec.Decode(src); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode{Source: src, Target: tgt}, err)
	}
	return nil
}
