// Package evaluator decides whether documents satisfy canonical predicates.
package evaluator

import (
	"github.com/docquery-go/docquery/adapter/comparer"
	"github.com/docquery-go/docquery/adapter/fieldnavigator"
	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
)

// Evaluator implements [domain.Evaluator].
type Evaluator struct {
	comparer       domain.Comparer
	fieldNavigator domain.FieldNavigator
}

// NewEvaluator returns a new implementation of [domain.Evaluator].
func NewEvaluator(options ...Option) domain.Evaluator {
	e := &Evaluator{}
	for _, option := range options {
		option(e)
	}
	if e.comparer == nil {
		e.comparer = comparer.NewComparer()
	}
	if e.fieldNavigator == nil {
		e.fieldNavigator = fieldnavigator.NewFieldNavigator()
	}
	return e
}

// Match implements [domain.Evaluator].
func (e *Evaluator) Match(doc domain.Document, p domain.Predicate) (bool, error) {
	if p.Empty() {
		return true, nil
	}
	if p.Leaf != nil {
		return e.matchCondition(doc, p.Leaf)
	}

	for _, child := range p.Children {
		matches, err := e.Match(doc, child)
		if err != nil {
			return false, err
		}
		switch p.Combinator {
		case domain.CombinatorOr:
			if matches {
				return true, nil
			}
		default:
			if !matches {
				return false, nil
			}
		}
	}
	return p.Combinator != domain.CombinatorOr, nil
}

func (e *Evaluator) matchCondition(doc domain.Document, cond *domain.Condition) (bool, error) {
	addr, err := e.fieldNavigator.GetAddress(cond.Field)
	if err != nil {
		return false, err
	}
	fields, _, err := e.fieldNavigator.GetField(doc, addr...)
	if err != nil {
		return false, err
	}

	switch cond.Operator {
	case registry.OpEq:
		return e.anyField(fields, func(v domain.Getter) (bool, error) {
			return e.equals(v, cond.Operands[0])
		})
	case registry.OpNe:
		matches, err := e.anyField(fields, func(v domain.Getter) (bool, error) {
			return e.equals(v, cond.Operands[0])
		})
		return !matches, err
	case registry.OpGt:
		return e.relational(fields, cond.Operands[0], func(c int) bool { return c > 0 })
	case registry.OpGe:
		return e.relational(fields, cond.Operands[0], func(c int) bool { return c >= 0 })
	case registry.OpLt:
		return e.relational(fields, cond.Operands[0], func(c int) bool { return c < 0 })
	case registry.OpLe:
		return e.relational(fields, cond.Operands[0], func(c int) bool { return c <= 0 })
	case registry.OpBetween:
		low, err := e.relational(fields, cond.Operands[0], func(c int) bool { return c >= 0 })
		if err != nil || !low {
			return false, err
		}
		return e.relational(fields, cond.Operands[1], func(c int) bool { return c <= 0 })
	case registry.OpIn:
		return e.membership(fields, cond.Operands)
	case registry.OpNin:
		matches, err := e.membership(fields, cond.Operands)
		return !matches, err
	default:
		return false, domain.ErrUnknownOperator{Operator: cond.Operator}
	}
}

// anyField reports whether fn holds for any resolved field address, including
// any element of an array value.
func (e *Evaluator) anyField(fields []domain.GetSetter, fn func(domain.Getter) (bool, error)) (bool, error) {
	for _, field := range fields {
		matches, err := e.elements(field, fn)
		if err != nil || matches {
			return matches, err
		}
	}
	return false, nil
}

// elements applies fn to the field value, fanning out over array elements.
func (e *Evaluator) elements(field domain.Getter, fn func(domain.Getter) (bool, error)) (bool, error) {
	value, defined := field.Get()
	arr, ok := value.([]any)
	if !ok || !defined {
		return fn(field)
	}
	// The array itself still participates so whole-array equality works.
	if matches, err := fn(field); err != nil || matches {
		return matches, err
	}
	for _, item := range arr {
		matches, err := fn(literal{item})
		if err != nil || matches {
			return matches, err
		}
	}
	return false, nil
}

func (e *Evaluator) equals(v domain.Getter, operand any) (bool, error) {
	if _, defined := v.Get(); !defined {
		return operand == nil, nil
	}
	c, err := e.comparer.Compare(v, operand)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

func (e *Evaluator) relational(fields []domain.GetSetter, operand any, ok func(int) bool) (bool, error) {
	return e.anyField(fields, func(v domain.Getter) (bool, error) {
		if !e.comparer.Comparable(v, operand) {
			return false, nil
		}
		c, err := e.comparer.Compare(v, operand)
		if err != nil {
			return false, err
		}
		return ok(c), nil
	})
}

func (e *Evaluator) membership(fields []domain.GetSetter, operands []any) (bool, error) {
	return e.anyField(fields, func(v domain.Getter) (bool, error) {
		if _, defined := v.Get(); !defined {
			return false, nil
		}
		for _, operand := range operands {
			c, err := e.comparer.Compare(v, operand)
			if err != nil {
				return false, err
			}
			if c == 0 {
				return true, nil
			}
		}
		return false, nil
	})
}

// literal adapts a plain value to [domain.Getter] so array elements flow
// through the same comparison path as addressed fields.
type literal struct{ v any }

func (l literal) Get() (any, bool) { return l.v, true }
