package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/domain"
)

type M = map[string]any

type A = []any

type filtererMock struct{ mock.Mock }

func (m *filtererMock) NormalizeFilter(raw any) (domain.Predicate, error) {
	call := m.Called(raw)
	return call.Get(0).(domain.Predicate), call.Error(1)
}

type optionerMock struct{ mock.Mock }

func (m *optionerMock) NormalizeOption(raw any) (domain.Options, error) {
	call := m.Called(raw)
	return call.Get(0).(domain.Options), call.Error(1)
}

type NormalizerTestSuite struct {
	suite.Suite
	n domain.Normalizer
}

func (s *NormalizerTestSuite) SetupTest() {
	s.n = NewNormalizer()
}

func (s *NormalizerTestSuite) TestNamespaceIsRequired() {
	for _, raw := range []any{
		nil,
		M{},
		M{"namespace": ""},
		M{"namespace": 42},
		M{"filter": M{"a": 1}},
	} {
		_, err := s.n.Normalize(raw)
		s.ErrorIs(err, domain.ErrMissingNamespace)
	}
}

func (s *NormalizerTestSuite) TestAbsentSectionsDefault() {
	doc, err := s.n.Normalize(M{"namespace": "users"})
	s.NoError(err)
	s.Equal("users", doc.Namespace)
	s.True(doc.Filter.Empty())
	s.True(doc.Aggregate.Empty())
	s.Equal(domain.Options{}, doc.Option)
	s.Equal(domain.Projection{Fields: []domain.ProjectionField{
		{Name: "_id", Include: true},
	}}, doc.Select)
}

func (s *NormalizerTestSuite) TestFullDocument() {
	doc, err := s.n.Normalize(M{
		"namespace": "users",
		"select":    A{"name", "age"},
		"filter":    M{"age": M{"$between": A{18, 65}}},
		"aggregate": M{"$group": A{"$city"}},
		"option":    M{"limit": 10, "page": 2, "order": M{"age": -1}},
	})
	s.NoError(err)
	s.Equal("users", doc.Namespace)
	s.Equal([]domain.ProjectionField{
		{Name: "name", Include: true},
		{Name: "age", Include: true},
	}, doc.Select.Fields)
	s.Equal(&domain.Condition{
		Field:    "age",
		Operator: "$between",
		Operands: A{18, 65},
	}, doc.Filter.Leaf)
	s.Equal([]domain.AggregateCall{
		{Func: "$group", Fields: []string{"city"}},
	}, doc.Aggregate.Calls)
	s.Equal(domain.Options{
		Limit: 10,
		Page:  2,
		Order: domain.Sort{{Key: "age", Order: -1}},
	}, doc.Option)
}

// A failing section aborts the whole normalization and returns the zero
// document, never a partially canonical one.
func (s *NormalizerTestSuite) TestNormalizationIsAtomic() {
	doc, err := s.n.Normalize(M{
		"namespace": "users",
		"filter":    M{"age": M{"$gt": 18}},
		"option":    M{"limit": -1},
	})
	s.ErrorIs(err, domain.ErrInvalidOption)
	s.Equal(domain.QueryDocument{}, doc)
}

func (s *NormalizerTestSuite) TestUnknownSectionPolicies() {
	doc, err := s.n.Normalize(M{"namespace": "users", "hint": "x"})
	s.NoError(err)
	s.Equal("users", doc.Namespace)

	strict := NewNormalizer(WithStrictSections(true))
	_, err = strict.Normalize(M{"namespace": "users", "hint": "x"})
	e := new(domain.ErrUnknownOption)
	s.ErrorAs(err, e)
	s.Equal("hint", e.Key)
}

func (s *NormalizerTestSuite) TestNormalizationIsIdempotent() {
	first, err := s.n.Normalize(M{
		"namespace": "users",
		"filter":    M{"city": A{"lisbon", "porto"}},
		"option":    M{"limit": 5},
	})
	s.NoError(err)

	second, err := s.n.Normalize(first)
	s.NoError(err)
	s.Equal(first, second)
}

func (s *NormalizerTestSuite) TestCanonicalDocumentWithoutNamespace() {
	_, err := s.n.Normalize(domain.QueryDocument{})
	s.ErrorIs(err, domain.ErrMissingNamespace)
}

// Section normalizers set through options receive the raw section values.
func (s *NormalizerTestSuite) TestDelegatesToSectionNormalizers() {
	fm := new(filtererMock)
	om := new(optionerMock)
	rawFilter := M{"a": 1}
	fm.On("NormalizeFilter", rawFilter).Return(domain.Predicate{}, nil)
	om.On("NormalizeOption", nil).Return(domain.Options{}, nil)

	n := NewNormalizer(WithFilterer(fm), WithOptioner(om))
	_, err := n.Normalize(M{"namespace": "users", "filter": rawFilter})
	s.NoError(err)
	fm.AssertExpectations(s.T())
	om.AssertExpectations(s.T())
}

func (s *NormalizerTestSuite) TestSectionErrorsKeepTheirCategory() {
	fm := new(filtererMock)
	wantErr := errors.New("boom")
	fm.On("NormalizeFilter", mock.Anything).Return(domain.Predicate{}, wantErr)

	n := NewNormalizer(WithFilterer(fm))
	_, err := n.Normalize(M{"namespace": "users", "filter": M{"a": 1}})
	s.ErrorIs(err, wantErr)
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}
