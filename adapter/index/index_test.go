package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/docquery-go/docquery/adapter/data"
)

type IndexTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IndexTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *IndexTestSuite) TestInsertAndGetMatching() {
	idx := NewIndex("age")
	ana := data.M{"_id": "a", "name": "ana", "age": 30}
	rui := data.M{"_id": "b", "name": "rui", "age": 25}
	eva := data.M{"_id": "c", "name": "eva", "age": 30}
	s.NoError(idx.Insert(s.ctx, ana, rui, eva))

	docs, err := idx.GetMatching(30)
	s.NoError(err)
	s.Len(docs, 2)

	docs, err = idx.GetMatching(25)
	s.NoError(err)
	s.Len(docs, 1)
	s.Equal("rui", docs[0].Get("name"))

	docs, err = idx.GetMatching(99)
	s.NoError(err)
	s.Empty(docs)
}

func (s *IndexTestSuite) TestNumKeys() {
	idx := NewIndex("age")
	s.Equal(0, idx.NumKeys())
	s.NoError(idx.Insert(s.ctx,
		data.M{"_id": "a", "age": 30},
		data.M{"_id": "b", "age": 25},
		data.M{"_id": "c", "age": 30},
	))
	s.Equal(2, idx.NumKeys())
}

func (s *IndexTestSuite) TestGetBetweenBounds() {
	idx := NewIndex("age")
	s.NoError(idx.Insert(s.ctx,
		data.M{"_id": "a", "age": 20},
		data.M{"_id": "b", "age": 30},
		data.M{"_id": "c", "age": 40},
		data.M{"_id": "d", "age": 50},
	))

	docs, err := idx.GetBetweenBounds(s.ctx, 30, 40)
	s.NoError(err)
	s.Len(docs, 2)

	// Bounds are inclusive.
	docs, err = idx.GetBetweenBounds(s.ctx, 20, 20)
	s.NoError(err)
	s.Len(docs, 1)
	s.Equal("a", docs[0].ID())

	// A nil bound leaves that side open.
	docs, err = idx.GetBetweenBounds(s.ctx, 40, nil)
	s.NoError(err)
	s.Len(docs, 2)
	docs, err = idx.GetBetweenBounds(s.ctx, nil, 30)
	s.NoError(err)
	s.Len(docs, 2)
}

func (s *IndexTestSuite) TestArrayValuesIndexEachElement() {
	idx := NewIndex("tags")
	doc := data.M{"_id": "a", "tags": []any{"go", "db", "go"}}
	s.NoError(idx.Insert(s.ctx, doc))

	// Duplicate elements are deduplicated before insertion.
	s.Equal(2, idx.NumKeys())

	docs, err := idx.GetMatching("go")
	s.NoError(err)
	s.Len(docs, 1)
	docs, err = idx.GetMatching("db")
	s.NoError(err)
	s.Len(docs, 1)
}

func (s *IndexTestSuite) TestMissingFieldIndexesUnderNil() {
	idx := NewIndex("age")
	s.NoError(idx.Insert(s.ctx, data.M{"_id": "a", "name": "ana"}))

	docs, err := idx.GetMatching(nil)
	s.NoError(err)
	s.Len(docs, 1)
	s.Equal("a", docs[0].ID())
}

func (s *IndexTestSuite) TestDottedField() {
	idx := NewIndex("address.city")
	s.NoError(idx.Insert(s.ctx,
		data.M{"_id": "a", "address": data.M{"city": "porto"}},
		data.M{"_id": "b", "address": data.M{"city": "lisboa"}},
	))

	docs, err := idx.GetMatching("porto")
	s.NoError(err)
	s.Len(docs, 1)
	s.Equal("a", docs[0].ID())
}

func (s *IndexTestSuite) TestRemove() {
	idx := NewIndex("age")
	ana := data.M{"_id": "a", "age": 30}
	rui := data.M{"_id": "b", "age": 25}
	s.NoError(idx.Insert(s.ctx, ana, rui))
	s.NoError(idx.Remove(s.ctx, ana))

	docs, err := idx.GetMatching(30)
	s.NoError(err)
	s.Empty(docs)
	docs, err = idx.GetMatching(25)
	s.NoError(err)
	s.Len(docs, 1)
}

func (s *IndexTestSuite) TestCanceledContext() {
	idx := NewIndex("age")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.ErrorIs(idx.Insert(ctx, data.M{"_id": "a", "age": 30}), context.Canceled)
	s.ErrorIs(idx.Remove(ctx, data.M{"_id": "a", "age": 30}), context.Canceled)
	_, err := idx.GetBetweenBounds(ctx, nil, nil)
	s.ErrorIs(err, context.Canceled)
}

func TestIndexTestSuite(t *testing.T) {
	suite.Run(t, new(IndexTestSuite))
}
