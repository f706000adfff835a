package filterer

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/adapter/registry"
	"github.com/docquery-go/docquery/domain"
)

type M = map[string]any

type A = []any

type FiltererTestSuite struct {
	suite.Suite
	f domain.Filterer
}

func (s *FiltererTestSuite) SetupTest() {
	s.f = NewFilterer()
}

func (s *FiltererTestSuite) leaf(field, op string, operands ...any) domain.Predicate {
	return domain.Predicate{Leaf: &domain.Condition{
		Field:    field,
		Operator: op,
		Operands: operands,
	}}
}

func (s *FiltererTestSuite) TestNilFilterIsEmptyPredicate() {
	p, err := s.f.NormalizeFilter(nil)
	s.NoError(err)
	s.True(p.Empty())
}

// A bare scalar condition value is shorthand for equality.
func (s *FiltererTestSuite) TestScalarExpandsToEquality() {
	p, err := s.f.NormalizeFilter(M{"age": 30})
	s.NoError(err)
	s.Equal(s.leaf("age", "$eq", 30), p)

	explicit, err := s.f.NormalizeFilter(M{"age": M{"$eq": 30}})
	s.NoError(err)
	s.Equal(p, explicit)
}

// A bare sequence condition value is shorthand for membership.
func (s *FiltererTestSuite) TestSequenceExpandsToMembership() {
	p, err := s.f.NormalizeFilter(M{"city": A{"lisbon", "porto"}})
	s.NoError(err)
	s.Equal(s.leaf("city", "$in", "lisbon", "porto"), p)

	explicit, err := s.f.NormalizeFilter(M{"city": M{"$in": A{"lisbon", "porto"}}})
	s.NoError(err)
	s.Equal(p, explicit)
}

func (s *FiltererTestSuite) TestEmptyMembershipSequence() {
	_, err := s.f.NormalizeFilter(M{"city": A{}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
	e := new(domain.ErrOperandArity)
	s.ErrorAs(err, e)
	s.Equal("$in", e.Operator)
}

// Multiple fields in one mapping join under an implicit AND, sorted by field
// name so the result does not depend on map iteration order.
func (s *FiltererTestSuite) TestMultiFieldMappingJoinsWithAnd() {
	p, err := s.f.NormalizeFilter(M{"b": 2, "a": 1})
	s.NoError(err)
	s.Equal(domain.Predicate{
		Combinator: domain.CombinatorAnd,
		Children: []domain.Predicate{
			s.leaf("a", "$eq", 1),
			s.leaf("b", "$eq", 2),
		},
	}, p)
}

// A sequence of condition mappings is an ordered AND.
func (s *FiltererTestSuite) TestFilterSequenceJoinsWithAnd() {
	p, err := s.f.NormalizeFilter(A{
		M{"b": 2},
		M{"a": 1},
	})
	s.NoError(err)
	s.Equal(domain.Predicate{
		Combinator: domain.CombinatorAnd,
		Children: []domain.Predicate{
			s.leaf("b", "$eq", 2),
			s.leaf("a", "$eq", 1),
		},
	}, p)
}

func (s *FiltererTestSuite) TestOperatorFirstForm() {
	p, err := s.f.NormalizeFilter(M{"$gt": A{"age", 18}})
	s.NoError(err)
	s.Equal(s.leaf("age", "$gt", 18), p)

	fieldFirst, err := s.f.NormalizeFilter(M{"age": M{"$gt": 18}})
	s.NoError(err)
	s.Equal(p, fieldFirst)
}

func (s *FiltererTestSuite) TestOperatorFirstFieldMustBeString() {
	_, err := s.f.NormalizeFilter(M{"$gt": A{42, 18}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
}

func (s *FiltererTestSuite) TestBetweenTakesExactlyTwoOperands() {
	p, err := s.f.NormalizeFilter(M{"age": M{"$between": A{18, 65}}})
	s.NoError(err)
	s.Equal(s.leaf("age", "$between", 18, 65), p)

	for _, operands := range []A{{}, {18}, {18, 30, 65}} {
		_, err := s.f.NormalizeFilter(M{"age": M{"$between": operands}})
		s.ErrorIs(err, domain.ErrMalformedCondition)
		e := new(domain.ErrOperandArity)
		s.ErrorAs(err, e)
		s.Equal("$between", e.Operator)
		s.Equal(len(operands), e.Got)
	}
}

func (s *FiltererTestSuite) TestBinaryOperatorRejectsOperandList() {
	_, err := s.f.NormalizeFilter(M{"age": M{"$lt": A{1, 2}}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
	e := new(domain.ErrOperandArity)
	s.ErrorAs(err, e)
	s.Equal("$lt", e.Operator)
	s.Equal(2, e.Got)
}

func (s *FiltererTestSuite) TestUnknownOperator() {
	_, err := s.f.NormalizeFilter(M{"age": M{"$regex": "^a"}})
	e := new(domain.ErrUnknownOperator)
	s.ErrorAs(err, e)
	s.Equal("$regex", e.Operator)

	// Dollar-prefixed keys never fall through to field names.
	_, err = s.f.NormalizeFilter(M{"$foo": A{"age", 1}})
	s.ErrorAs(err, e)
	s.Equal("$foo", e.Operator)
}

func (s *FiltererTestSuite) TestCombinatorsPreserveChildOrder() {
	p, err := s.f.NormalizeFilter(M{"$or": A{
		M{"b": 2},
		M{"a": 1},
	}})
	s.NoError(err)
	s.Equal(domain.Predicate{
		Combinator: domain.CombinatorOr,
		Children: []domain.Predicate{
			s.leaf("b", "$eq", 2),
			s.leaf("a", "$eq", 1),
		},
	}, p)
}

func (s *FiltererTestSuite) TestNestedCombinators() {
	p, err := s.f.NormalizeFilter(M{"$or": A{
		M{"$and": A{M{"a": 1}, M{"b": 2}}},
		M{"c": 3},
	}})
	s.NoError(err)
	s.Equal(domain.Predicate{
		Combinator: domain.CombinatorOr,
		Children: []domain.Predicate{
			{
				Combinator: domain.CombinatorAnd,
				Children: []domain.Predicate{
					s.leaf("a", "$eq", 1),
					s.leaf("b", "$eq", 2),
				},
			},
			s.leaf("c", "$eq", 3),
		},
	}, p)
}

func (s *FiltererTestSuite) TestCombinatorValueMustBeSequence() {
	_, err := s.f.NormalizeFilter(M{"$or": M{"a": 1}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
	e := new(domain.ErrCombinatorValue)
	s.ErrorAs(err, e)
	s.Equal("$or", e.Combinator)
}

// A single-child combinator collapses to its child.
func (s *FiltererTestSuite) TestSingleChildCombinatorCollapses() {
	p, err := s.f.NormalizeFilter(M{"$or": A{M{"a": 1}}})
	s.NoError(err)
	s.Equal(s.leaf("a", "$eq", 1), p)
}

func (s *FiltererTestSuite) TestMultiKeyConditionRejectedByDefault() {
	_, err := s.f.NormalizeFilter(M{"age": M{"$gt": 18, "$lt": 65}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
	e := new(domain.ErrMultiKeyCondition)
	s.ErrorAs(err, e)
	s.Equal("age", e.Field)
	s.Equal(2, e.Keys)
}

func (s *FiltererTestSuite) TestMultiKeyConditionMergesWhenEnabled() {
	f := NewFilterer(WithMergedConditions(true))
	p, err := f.NormalizeFilter(M{"age": M{"$lt": 65, "$gt": 18}})
	s.NoError(err)
	s.Equal(domain.Predicate{
		Combinator: domain.CombinatorAnd,
		Children: []domain.Predicate{
			s.leaf("age", "$gt", 18),
			s.leaf("age", "$lt", 65),
		},
	}, p)
}

func (s *FiltererTestSuite) TestEmptyConditionMapping() {
	_, err := s.f.NormalizeFilter(M{"age": M{}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
}

func (s *FiltererTestSuite) TestOperandsMustBeScalars() {
	_, err := s.f.NormalizeFilter(M{"age": M{"$eq": M{"nested": 1}}})
	s.ErrorIs(err, domain.ErrMalformedCondition)

	_, err = s.f.NormalizeFilter(M{"tags": A{A{"nested"}}})
	s.ErrorIs(err, domain.ErrMalformedCondition)
}

// Normalizing a canonical predicate returns it unchanged.
func (s *FiltererTestSuite) TestNormalizationIsIdempotent() {
	first, err := s.f.NormalizeFilter(M{"$or": A{
		M{"age": M{"$between": A{18, 65}}},
		M{"city": A{"lisbon", "porto"}},
	}})
	s.NoError(err)

	second, err := s.f.NormalizeFilter(first)
	s.NoError(err)
	s.Equal(first, second)
}

func (s *FiltererTestSuite) TestValidateRejectsBadCanonicalTrees() {
	_, err := s.f.NormalizeFilter(s.leaf("age", "$regex", "^a"))
	e := new(domain.ErrUnknownOperator)
	s.ErrorAs(err, e)

	_, err = s.f.NormalizeFilter(s.leaf("age", "$between", 18))
	s.ErrorIs(err, domain.ErrMalformedCondition)

	_, err = s.f.NormalizeFilter(domain.Predicate{
		Combinator: "$nor",
		Children:   []domain.Predicate{s.leaf("a", "$eq", 1)},
	})
	s.ErrorAs(err, e)
	s.Equal("$nor", e.Operator)
}

func (s *FiltererTestSuite) TestCustomOperatorRegistry() {
	reg := registry.NewRegistry(registry.WithOperator("$like", domain.ArityBinary))
	f := NewFilterer(WithRegistry(reg))

	p, err := f.NormalizeFilter(M{"name": M{"$like": "jo%"}})
	s.NoError(err)
	s.Equal(s.leaf("name", "$like", "jo%"), p)
}

func (s *FiltererTestSuite) TestUnsupportedFilterShape() {
	_, err := s.f.NormalizeFilter(42)
	s.ErrorIs(err, domain.ErrMalformedCondition)
}

func TestFiltererTestSuite(t *testing.T) {
	suite.Run(t, new(FiltererTestSuite))
}
