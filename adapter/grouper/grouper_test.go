package grouper

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/adapter/data"
	"github.com/docquery-go/docquery/domain"
)

type GrouperTestSuite struct {
	suite.Suite
	g domain.Grouper
}

func (s *GrouperTestSuite) SetupTest() {
	s.g = NewGrouper()
}

func (s *GrouperTestSuite) group(fields ...string) domain.Aggregate {
	return domain.Aggregate{Calls: []domain.AggregateCall{
		{Func: "$group", Fields: fields},
	}}
}

func (s *GrouperTestSuite) TestEmptyAggregateKeepsDocuments() {
	docs := []domain.Document{data.M{"a": 1}}
	res, err := s.g.Group(docs, domain.Aggregate{})
	s.NoError(err)
	s.Equal(docs, res)
}

// Groups keep first-seen order and count their members.
func (s *GrouperTestSuite) TestSingleFieldGrouping() {
	docs := []domain.Document{
		data.M{"city": "porto", "name": "ana"},
		data.M{"city": "lisbon", "name": "rui"},
		data.M{"city": "porto", "name": "eva"},
	}
	res, err := s.g.Group(docs, s.group("city"))
	s.NoError(err)
	s.Equal([]domain.Document{
		data.M{"city": "porto", "count": int64(2)},
		data.M{"city": "lisbon", "count": int64(1)},
	}, res)
}

func (s *GrouperTestSuite) TestMultiFieldGrouping() {
	docs := []domain.Document{
		data.M{"city": "porto", "year": 2024},
		data.M{"city": "porto", "year": 2025},
		data.M{"city": "porto", "year": 2024},
	}
	res, err := s.g.Group(docs, s.group("city", "year"))
	s.NoError(err)
	s.Equal([]domain.Document{
		data.M{"city": "porto", "year": 2024, "count": int64(2)},
		data.M{"city": "porto", "year": 2025, "count": int64(1)},
	}, res)
}

// Documents without the grouped field fall into the nil group.
func (s *GrouperTestSuite) TestMissingFieldGroupsUnderNil() {
	docs := []domain.Document{
		data.M{"city": "porto"},
		data.M{"name": "rui"},
		data.M{"name": "eva"},
	}
	res, err := s.g.Group(docs, s.group("city"))
	s.NoError(err)
	s.Equal([]domain.Document{
		data.M{"city": "porto", "count": int64(1)},
		data.M{"city": nil, "count": int64(2)},
	}, res)
}

func (s *GrouperTestSuite) TestDottedGroupField() {
	docs := []domain.Document{
		data.M{"address": data.M{"city": "porto"}},
		data.M{"address": data.M{"city": "porto"}},
	}
	res, err := s.g.Group(docs, s.group("address.city"))
	s.NoError(err)
	s.Len(res, 1)
	s.Equal("porto", res[0].Get("address.city"))
	s.Equal(int64(2), res[0].Get("count"))
}

func (s *GrouperTestSuite) TestUnknownFunction() {
	docs := []domain.Document{data.M{"a": 1}}
	_, err := s.g.Group(docs, domain.Aggregate{Calls: []domain.AggregateCall{
		{Func: "$sum", Fields: []string{"a"}},
	}})
	e := new(domain.ErrUnknownAggregate)
	s.ErrorAs(err, e)
	s.Equal("$sum", e.Function)
}

func TestGrouperTestSuite(t *testing.T) {
	suite.Run(t, new(GrouperTestSuite))
}
