package hasher

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/domain"
)

type HasherTestSuite struct {
	suite.Suite
	h domain.Hasher
}

func (s *HasherTestSuite) SetupTest() {
	s.h = NewHasher()
}

func (s *HasherTestSuite) TestEqualValuesHashEqual() {
	a, err := s.h.Hash([]any{"porto", 30})
	s.NoError(err)
	b, err := s.h.Hash([]any{"porto", 30})
	s.NoError(err)
	s.Equal(a, b)
}

func (s *HasherTestSuite) TestDifferentValuesHashDifferent() {
	a, err := s.h.Hash([]any{"porto", 30})
	s.NoError(err)
	b, err := s.h.Hash([]any{"porto", 31})
	s.NoError(err)
	s.NotEqual(a, b)

	// Order matters for group tuples.
	c, err := s.h.Hash([]any{30, "porto"})
	s.NoError(err)
	s.NotEqual(a, c)
}

func (s *HasherTestSuite) TestNilValues() {
	a, err := s.h.Hash([]any{nil})
	s.NoError(err)
	b, err := s.h.Hash([]any{nil, nil})
	s.NoError(err)
	s.NotEqual(a, b)
}

func (s *HasherTestSuite) TestUnserializableValue() {
	_, err := s.h.Hash(make(chan int))
	s.Error(err)
}

func TestHasherTestSuite(t *testing.T) {
	suite.Run(t, new(HasherTestSuite))
}
