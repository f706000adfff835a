// Package filterer contains the default [domain.Filterer] implementation: the
// normalizer that expands a raw mongo-like filter into a canonical predicate
// tree.
package filterer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/structure"
)

// Filterer implements [domain.Filterer].
type Filterer struct {
	reg   domain.Registry
	merge bool
}

// NewFilterer returns a new implementation of [domain.Filterer].
func NewFilterer(options ...Option) domain.Filterer {
	f := &Filterer{
		reg: registry.NewRegistry(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// NormalizeFilter implements [domain.Filterer]. A raw filter is either a
// mapping from field names and combinator tokens to conditions, or an ordered
// sequence of such mappings joined by an implicit AND. An already-canonical
// [domain.Predicate] is validated and returned unchanged, which makes
// normalization idempotent.
func (f *Filterer) NormalizeFilter(raw any) (domain.Predicate, error) {
	if raw == nil {
		return domain.Predicate{}, nil
	}
	if p, ok := raw.(domain.Predicate); ok {
		return p, f.validate(p)
	}

	if entries, l, err := structure.Mapping(raw); err == nil {
		return f.normalizeMapping(entries, l)
	}

	items, l, err := structure.Sequence(raw)
	if err != nil {
		return domain.Predicate{}, domain.ErrConditionValue{
			Reason: fmt.Sprintf("filter must be a mapping or a sequence of mappings, got %T", raw),
		}
	}

	children := make([]domain.Predicate, 0, l)
	for item := range items {
		entries, n, err := structure.Mapping(item)
		if err != nil {
			return domain.Predicate{}, domain.ErrConditionValue{
				Reason: fmt.Sprintf("filter sequence items must be condition mappings, got %T", item),
			}
		}
		child, err := f.normalizeMapping(entries, n)
		if err != nil {
			return domain.Predicate{}, err
		}
		children = append(children, child)
	}
	return combine(domain.CombinatorAnd, children), nil
}

type entry struct {
	key string
	val any
}

// normalizeMapping turns one condition mapping into a predicate. Multiple
// entries join under an implicit AND; entries are sorted by key so the
// canonical form does not depend on map iteration order.
func (f *Filterer) normalizeMapping(entries func(func(string, any) bool), l int) (domain.Predicate, error) {
	if l == 0 {
		return domain.Predicate{}, nil
	}

	sorted := make([]entry, 0, l)
	for k, v := range entries {
		sorted = append(sorted, entry{key: k, val: v})
	}
	slices.SortFunc(sorted, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	children := make([]domain.Predicate, 0, l)
	for _, e := range sorted {
		child, err := f.normalizeEntry(e.key, e.val)
		if err != nil {
			return domain.Predicate{}, err
		}
		children = append(children, child)
	}
	return combine(domain.CombinatorAnd, children), nil
}

func (f *Filterer) normalizeEntry(key string, value any) (domain.Predicate, error) {
	switch {
	case key == domain.CombinatorAnd || key == domain.CombinatorOr:
		return f.normalizeCombinator(key, value)
	default:
		if arity, ok := f.reg.Operator(key); ok {
			return f.normalizeOperatorFirst(key, arity, value)
		}
		if strings.HasPrefix(key, "$") {
			return domain.Predicate{}, domain.ErrUnknownOperator{Operator: key}
		}
		return f.normalizeCondition(key, value)
	}
}

func (f *Filterer) normalizeCombinator(comb string, value any) (domain.Predicate, error) {
	items, l, err := structure.Sequence(value)
	if err != nil {
		return domain.Predicate{}, domain.ErrCombinatorValue{Combinator: comb}
	}

	children := make([]domain.Predicate, 0, l)
	for item := range items {
		entries, n, err := structure.Mapping(item)
		if err != nil {
			return domain.Predicate{}, domain.ErrCombinatorValue{Combinator: comb}
		}
		child, err := f.normalizeMapping(entries, n)
		if err != nil {
			return domain.Predicate{}, err
		}
		children = append(children, child)
	}
	return combine(comb, children), nil
}

// normalizeOperatorFirst handles the operator-first condition form: the key
// is an operator token and the value is a sequence naming the field first,
// followed by the operands required by the operator's arity.
func (f *Filterer) normalizeOperatorFirst(op string, arity domain.Arity, value any) (domain.Predicate, error) {
	items, l, err := structure.Sequence(value)
	if err != nil || l == 0 {
		return domain.Predicate{}, domain.ErrConditionValue{
			Reason: fmt.Sprintf("%s condition must be a sequence naming the field first", op),
		}
	}

	parts := make([]any, 0, l)
	for item := range items {
		parts = append(parts, item)
	}

	field, ok := parts[0].(string)
	if !ok {
		return domain.Predicate{}, domain.ErrConditionValue{
			Reason: fmt.Sprintf("%s condition must name a field first, got %T", op, parts[0]),
		}
	}

	operands, err := f.checkArity(field, op, arity, parts[1:])
	if err != nil {
		return domain.Predicate{}, err
	}
	return leaf(field, op, operands), nil
}

// normalizeCondition handles the field-first condition form, dispatching on
// the structural shape of the value: scalars become implicit equality,
// sequences become implicit membership and single-operator mappings are
// validated explicitly.
func (f *Filterer) normalizeCondition(field string, value any) (domain.Predicate, error) {
	if structure.IsScalar(value) {
		return leaf(field, registry.OpEq, []any{value}), nil
	}

	if entries, l, err := structure.Mapping(value); err == nil {
		return f.normalizeOperatorMapping(field, entries, l)
	}

	items, l, err := structure.Sequence(value)
	if err != nil {
		return domain.Predicate{}, domain.ErrConditionValue{
			Field:  field,
			Reason: fmt.Sprintf("unsupported condition value of type %T", value),
		}
	}
	if l == 0 {
		return domain.Predicate{}, domain.ErrOperandArity{
			Operator: registry.OpIn,
			Want:     "a non-empty operand sequence",
			Got:      0,
		}
	}

	operands := make([]any, 0, l)
	for item := range items {
		if !structure.IsScalar(item) {
			return domain.Predicate{}, domain.ErrConditionValue{
				Field:  field,
				Reason: fmt.Sprintf("membership values must be scalars, got %T", item),
			}
		}
		operands = append(operands, item)
	}
	return leaf(field, registry.OpIn, operands), nil
}

func (f *Filterer) normalizeOperatorMapping(field string, entries func(func(string, any) bool), l int) (domain.Predicate, error) {
	if l == 0 {
		return domain.Predicate{}, domain.ErrConditionValue{Field: field, Reason: "empty condition mapping"}
	}
	if l > 1 && !f.merge {
		return domain.Predicate{}, domain.ErrMultiKeyCondition{Field: field, Keys: l}
	}

	sorted := make([]entry, 0, l)
	for k, v := range entries {
		sorted = append(sorted, entry{key: k, val: v})
	}
	slices.SortFunc(sorted, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	children := make([]domain.Predicate, 0, l)
	for _, e := range sorted {
		arity, ok := f.reg.Operator(e.key)
		if !ok {
			return domain.Predicate{}, domain.ErrUnknownOperator{Operator: e.key}
		}
		operands, err := f.operands(field, e.key, arity, e.val)
		if err != nil {
			return domain.Predicate{}, err
		}
		children = append(children, leaf(field, e.key, operands))
	}
	return combine(domain.CombinatorAnd, children), nil
}

// operands validates the operand value of a field-first explicit condition
// against the operator's arity class.
func (f *Filterer) operands(field, op string, arity domain.Arity, value any) ([]any, error) {
	if arity == domain.ArityBinary {
		if structure.IsScalar(value) {
			return []any{value}, nil
		}
		if _, l, err := structure.Sequence(value); err == nil {
			return nil, domain.ErrOperandArity{Operator: op, Want: "exactly 1 operand", Got: l}
		}
		return nil, domain.ErrConditionValue{
			Field:  field,
			Reason: fmt.Sprintf("%s operand must be a scalar, got %T", op, value),
		}
	}

	items, l, err := structure.Sequence(value)
	if err != nil {
		return nil, domain.ErrConditionValue{
			Field:  field,
			Reason: fmt.Sprintf("%s takes an operand sequence, got %T", op, value),
		}
	}
	operands := make([]any, 0, l)
	for item := range items {
		operands = append(operands, item)
	}
	return f.checkArity(field, op, arity, operands)
}

func (f *Filterer) checkArity(field, op string, arity domain.Arity, operands []any) ([]any, error) {
	for _, operand := range operands {
		if !structure.IsScalar(operand) {
			return nil, domain.ErrConditionValue{
				Field:  field,
				Reason: fmt.Sprintf("%s operands must be scalars, got %T", op, operand),
			}
		}
	}
	switch arity {
	case domain.ArityBinary:
		if len(operands) != 1 {
			return nil, domain.ErrOperandArity{Operator: op, Want: "exactly 1 operand", Got: len(operands)}
		}
	case domain.ArityTernary:
		if len(operands) != 2 {
			return nil, domain.ErrOperandArity{Operator: op, Want: "exactly 2 operands", Got: len(operands)}
		}
	case domain.ArityList:
		if len(operands) == 0 {
			return nil, domain.ErrOperandArity{Operator: op, Want: "a non-empty operand sequence", Got: 0}
		}
	}
	return operands, nil
}

// validate walks an already-canonical predicate, checking operator tokens and
// arity so a hand-built tree gets the same guarantees as a normalized one.
func (f *Filterer) validate(p domain.Predicate) error {
	if p.Leaf != nil {
		arity, ok := f.reg.Operator(p.Leaf.Operator)
		if !ok {
			return domain.ErrUnknownOperator{Operator: p.Leaf.Operator}
		}
		_, err := f.checkArity(p.Leaf.Field, p.Leaf.Operator, arity, p.Leaf.Operands)
		return err
	}
	if p.Combinator != "" && p.Combinator != domain.CombinatorAnd && p.Combinator != domain.CombinatorOr {
		return domain.ErrUnknownOperator{Operator: p.Combinator}
	}
	for _, child := range p.Children {
		if err := f.validate(child); err != nil {
			return err
		}
	}
	return nil
}

func leaf(field, op string, operands []any) domain.Predicate {
	return domain.Predicate{Leaf: &domain.Condition{
		Field:    field,
		Operator: op,
		Operands: operands,
	}}
}

// combine wraps children under a combinator, collapsing the trivial cases so
// the canonical tree carries no single-child branches.
func combine(comb string, children []domain.Predicate) domain.Predicate {
	switch len(children) {
	case 0:
		return domain.Predicate{}
	case 1:
		return children[0]
	default:
		return domain.Predicate{Combinator: comb, Children: children}
	}
}
