package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendPreservesArrivalOrder(t *testing.T) {
	s := NewStore()
	s.Append(Point{Timestamp: "t1", Sentiment: 0.5})
	s.Append(Point{Timestamp: "t2", Sentiment: -0.3})

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []Point{
		{Timestamp: "t1", Sentiment: 0.5},
		{Timestamp: "t2", Sentiment: -0.3},
	}, s.Points())
}

func TestStoreAppendGrowsByOne(t *testing.T) {
	s := NewStore()
	for i, p := range []Point{{"a", 1}, {"b", 2}, {"c", 3}} {
		before := s.Len()
		s.Append(p)
		require.Equal(t, before+1, s.Len(), "append %d", i)

		last, ok := s.Last()
		require.True(t, ok)
		assert.Equal(t, p, last)
	}
}

func TestStorePointsIsASnapshot(t *testing.T) {
	s := NewStore()
	s.Append(Point{Timestamp: "t1", Sentiment: 0.1})

	snapshot := s.Points()
	s.Append(Point{Timestamp: "t2", Sentiment: 0.2})

	assert.Len(t, snapshot, 1, "snapshot must not see later appends")
	assert.Len(t, s.Points(), 2)
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Points())

	_, ok := s.Last()
	assert.False(t, ok)
}
