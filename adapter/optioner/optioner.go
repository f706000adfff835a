// Package optioner contains the default [domain.Optioner] implementation: the
// normalizer for the option section of a query document.
package optioner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/structure"
)

// Recognized option keys.
const (
	KeyLimit = "limit"
	KeyPage  = "page"
	KeyOrder = "order"
)

// Optioner implements [domain.Optioner].
type Optioner struct {
	lenient bool
}

// NewOptioner returns a new implementation of [domain.Optioner].
func NewOptioner(options ...Option) domain.Optioner {
	o := &Optioner{}
	for _, option := range options {
		option(o)
	}
	return o
}

// NormalizeOption implements [domain.Optioner]. Limit and page must coerce to
// positive integers and order directions must be exactly 1 or -1. Under the
// default strict policy an unrecognized key fails with
// [domain.ErrUnknownOption]; the lenient policy skips it.
func (o *Optioner) NormalizeOption(raw any) (domain.Options, error) {
	if raw == nil {
		return domain.Options{}, nil
	}
	if opts, ok := raw.(domain.Options); ok {
		return opts, o.validate(opts)
	}

	entries, _, err := structure.Mapping(raw)
	if err != nil {
		return domain.Options{}, fmt.Errorf(
			"%w: option must be a mapping, got %T", domain.ErrInvalidOption, raw,
		)
	}

	var res domain.Options
	for key, value := range entries {
		switch key {
		case KeyLimit:
			if res.Limit, err = o.positive(key, value); err != nil {
				return domain.Options{}, err
			}
		case KeyPage:
			if res.Page, err = o.positive(key, value); err != nil {
				return domain.Options{}, err
			}
		case KeyOrder:
			if res.Order, err = o.normalizeOrder(value); err != nil {
				return domain.Options{}, err
			}
		default:
			if !o.lenient {
				return domain.Options{}, domain.ErrUnknownOption{Key: key}
			}
		}
	}
	return res, nil
}

func (o *Optioner) positive(key string, value any) (int64, error) {
	n, ok := structure.AsInteger(value)
	if !ok || n <= 0 {
		return 0, domain.ErrOptionValue{Key: key, Want: "a positive integer", Actual: value}
	}
	return n, nil
}

// normalizeOrder accepts a mapping from field name to direction, or an
// ordered sequence of single-entry mappings when sort priority matters.
// Mapping entries are sorted by field name so the canonical form does not
// depend on map iteration order.
func (o *Optioner) normalizeOrder(value any) (domain.Sort, error) {
	if entries, l, err := structure.Mapping(value); err == nil {
		sort := make(domain.Sort, 0, l)
		for field, dir := range entries {
			name, err := o.sortName(field, dir)
			if err != nil {
				return nil, err
			}
			sort = append(sort, name)
		}
		slices.SortFunc(sort, func(a, b domain.SortName) int {
			return strings.Compare(a.Key, b.Key)
		})
		return sort, nil
	}

	items, l, err := structure.Sequence(value)
	if err != nil {
		return nil, domain.ErrOptionValue{
			Key:    KeyOrder,
			Want:   "a mapping from field name to direction",
			Actual: value,
		}
	}
	sort := make(domain.Sort, 0, l)
	for item := range items {
		entries, n, err := structure.Mapping(item)
		if err != nil || n != 1 {
			return nil, domain.ErrOptionValue{
				Key:    KeyOrder,
				Want:   "a sequence of single-entry mappings",
				Actual: item,
			}
		}
		for field, dir := range entries {
			name, err := o.sortName(field, dir)
			if err != nil {
				return nil, err
			}
			sort = append(sort, name)
		}
	}
	return sort, nil
}

func (o *Optioner) sortName(field string, dir any) (domain.SortName, error) {
	n, ok := structure.AsInteger(dir)
	if !ok || (n != 1 && n != -1) {
		return domain.SortName{}, domain.ErrOrderDirection{Field: field, Value: dir}
	}
	return domain.SortName{Key: field, Order: n}, nil
}

func (o *Optioner) validate(opts domain.Options) error {
	if opts.Limit < 0 {
		return domain.ErrOptionValue{Key: KeyLimit, Want: "a positive integer", Actual: opts.Limit}
	}
	if opts.Page < 0 {
		return domain.ErrOptionValue{Key: KeyPage, Want: "a positive integer", Actual: opts.Page}
	}
	for _, name := range opts.Order {
		if name.Order != 1 && name.Order != -1 {
			return domain.ErrOrderDirection{Field: name.Key, Value: name.Order}
		}
	}
	return nil
}
