package decoder

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/domain"
)

type user struct {
	Name string `docquery:"name"`
	Age  int    `docquery:"age"`
}

type DecoderTestSuite struct {
	suite.Suite
	dec domain.Decoder
}

func (s *DecoderTestSuite) SetupTest() {
	s.dec = NewDecoder()
}

func (s *DecoderTestSuite) TestDecodeIntoStruct() {
	var u user
	err := s.dec.Decode(data.M{"name": "ana", "age": 30}, &u)
	s.NoError(err)
	s.Equal(user{Name: "ana", Age: 30}, u)
}

func (s *DecoderTestSuite) TestDecodeIntoMap() {
	var m map[string]any
	err := s.dec.Decode(data.M{"name": "ana"}, &m)
	s.NoError(err)
	s.Equal("ana", m["name"])
}

func (s *DecoderTestSuite) TestDecodeSliceOfDocuments() {
	var users []user
	err := s.dec.Decode([]any{
		data.M{"name": "ana", "age": 30},
		data.M{"name": "rui", "age": 25},
	}, &users)
	s.NoError(err)
	s.Equal([]user{{Name: "ana", Age: 30}, {Name: "rui", Age: 25}}, users)
}

func (s *DecoderTestSuite) TestNilTarget() {
	err := s.dec.Decode(data.M{}, nil)
	s.ErrorIs(err, domain.ErrTargetNil)
}

func (s *DecoderTestSuite) TestNonPointerTarget() {
	var u user
	err := s.dec.Decode(data.M{"name": "ana"}, u)
	s.ErrorIs(err, domain.ErrNonPointer)
}

func (s *DecoderTestSuite) TestIncompatibleValue() {
	var u user
	err := s.dec.Decode(data.M{"age": "not a number"}, &u)
	s.Error(err)
	s.ErrorAs(err, &domain.ErrDecode{})
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}
