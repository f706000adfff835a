package selector

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/domain"
)

type M = map[string]any

type A = []any

type SelectorTestSuite struct {
	suite.Suite
	s domain.Selector
}

func (s *SelectorTestSuite) SetupTest() {
	s.s = NewSelector()
}

func (s *SelectorTestSuite) TestAbsentSelectProjectsIdentifier() {
	for _, raw := range []any{nil, A{}, M{}} {
		p, err := s.s.NormalizeSelect(raw)
		s.NoError(err)
		s.Equal(domain.Projection{Fields: []domain.ProjectionField{
			{Name: "_id", Include: true},
		}}, p)
	}
}

func (s *SelectorTestSuite) TestCustomIdentifierField() {
	sel := NewSelector(WithIdentifierField("uid"))
	p, err := sel.NormalizeSelect(nil)
	s.NoError(err)
	s.Equal("uid", p.Fields[0].Name)
}

func (s *SelectorTestSuite) TestSequenceIncludesAllNamedFields() {
	p, err := s.s.NormalizeSelect(A{"name", "age"})
	s.NoError(err)
	s.Equal(domain.Projection{Fields: []domain.ProjectionField{
		{Name: "name", Include: true},
		{Name: "age", Include: true},
	}}, p)
}

func (s *SelectorTestSuite) TestSequenceRejectsNonStringNames() {
	_, err := s.s.NormalizeSelect(A{"name", 42})
	s.ErrorIs(err, domain.ErrInvalidProjection)
}

// Mapping entries resolve flags and modes, sorted by field name.
func (s *SelectorTestSuite) TestMappingFlagsAndModes() {
	p, err := s.s.NormalizeSelect(M{
		"c": "currency",
		"a": true,
		"b": false,
		"d": 1,
		"e": 0,
	})
	s.NoError(err)
	s.Equal(domain.Projection{Fields: []domain.ProjectionField{
		{Name: "a", Include: true},
		{Name: "b", Include: false},
		{Name: "c", Include: true, Mode: "currency"},
		{Name: "d", Include: true},
		{Name: "e", Include: false},
	}}, p)
}

func (s *SelectorTestSuite) TestMappingRejectsUnsupportedValues() {
	_, err := s.s.NormalizeSelect(M{"a": 1.5})
	s.ErrorIs(err, domain.ErrInvalidProjection)
	e := new(domain.ErrProjectionValue)
	s.ErrorAs(err, e)
	s.Equal("a", e.Field)

	_, err = s.s.NormalizeSelect(M{"a": A{"nested"}})
	s.ErrorIs(err, domain.ErrInvalidProjection)
}

func (s *SelectorTestSuite) TestUnsupportedSelectShape() {
	_, err := s.s.NormalizeSelect("name")
	s.ErrorIs(err, domain.ErrInvalidProjection)
}

func (s *SelectorTestSuite) TestNormalizationIsIdempotent() {
	first, err := s.s.NormalizeSelect(M{"name": true, "age": false})
	s.NoError(err)
	second, err := s.s.NormalizeSelect(first)
	s.NoError(err)
	s.Equal(first, second)
}

func TestSelectorTestSuite(t *testing.T) {
	suite.Run(t, new(SelectorTestSuite))
}
