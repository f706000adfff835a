// Package aggregator contains the default [domain.Aggregator] implementation:
// the normalizer for the aggregate section of a query document.
package aggregator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/structure"
)

// DefaultFieldMarker prefixes tokens that reference fields rather than
// literals in expression positions.
const DefaultFieldMarker = '$'

// Aggregator implements [domain.Aggregator].
type Aggregator struct {
	reg    domain.Registry
	marker rune
}

// NewAggregator returns a new implementation of [domain.Aggregator].
func NewAggregator(options ...Option) domain.Aggregator {
	a := &Aggregator{
		reg:    registry.NewRegistry(),
		marker: DefaultFieldMarker,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// NormalizeAggregate implements [domain.Aggregator]. A raw aggregate is a
// mapping from aggregate-function tokens to ordered sequences of
// marker-prefixed field references. The marker is stripped in the canonical
// form and field order is preserved verbatim, since group-by key order is
// significant downstream.
func (a *Aggregator) NormalizeAggregate(raw any) (domain.Aggregate, error) {
	if raw == nil {
		return domain.Aggregate{}, nil
	}
	if agg, ok := raw.(domain.Aggregate); ok {
		return agg, a.validate(agg)
	}

	entries, l, err := structure.Mapping(raw)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf(
			"%w: aggregate must be a mapping, got %T", domain.ErrMalformedAggregate, raw,
		)
	}
	if l == 0 {
		return domain.Aggregate{}, nil
	}

	calls := make([]domain.AggregateCall, 0, l)
	for fn, value := range entries {
		call, err := a.normalizeCall(fn, value)
		if err != nil {
			return domain.Aggregate{}, err
		}
		calls = append(calls, call)
	}
	slices.SortFunc(calls, func(x, y domain.AggregateCall) int {
		return strings.Compare(x.Func, y.Func)
	})
	return domain.Aggregate{Calls: calls}, nil
}

func (a *Aggregator) normalizeCall(fn string, value any) (domain.AggregateCall, error) {
	if !a.reg.AggregateFunction(fn) {
		return domain.AggregateCall{}, domain.ErrUnknownAggregate{Function: fn}
	}

	items, l, err := structure.Sequence(value)
	if err != nil || l == 0 {
		return domain.AggregateCall{}, fmt.Errorf(
			"%w: %s value must be a non-empty sequence of field references",
			domain.ErrMalformedAggregate, fn,
		)
	}

	fields := make([]string, 0, l)
	for item := range items {
		token, ok := item.(string)
		if !ok {
			return domain.AggregateCall{}, fmt.Errorf(
				"%w: %s field references must be strings, got %T",
				domain.ErrMalformedAggregate, fn, item,
			)
		}
		field, ok := a.stripMarker(token)
		if !ok {
			return domain.AggregateCall{}, domain.ErrFieldMarker{
				Function: fn,
				Token:    token,
				Marker:   a.marker,
			}
		}
		fields = append(fields, field)
	}
	return domain.AggregateCall{Func: fn, Fields: fields}, nil
}

func (a *Aggregator) stripMarker(token string) (string, bool) {
	rest, ok := strings.CutPrefix(token, string(a.marker))
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

func (a *Aggregator) validate(agg domain.Aggregate) error {
	for _, call := range agg.Calls {
		if !a.reg.AggregateFunction(call.Func) {
			return domain.ErrUnknownAggregate{Function: call.Func}
		}
		if len(call.Fields) == 0 {
			return fmt.Errorf(
				"%w: %s has no fields", domain.ErrMalformedAggregate, call.Func,
			)
		}
	}
	return nil
}
