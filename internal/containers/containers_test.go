package containers

import (
	"testing"

	"github.com/gamesmanone/core/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64ArrayAppendPopBack(t *testing.T) {
	a := NewInt64Array(0)
	a.Append(1)
	a.Append(2)
	a.Append(3)
	require.Equal(t, 3, a.Len())

	back, ok := a.Back()
	require.True(t, ok)
	assert.Equal(t, int64(3), back)

	sizeBefore := a.Len()
	v, ok := a.PopBack()
	require.True(t, ok)
	assert.Equal(t, int64(3), v)
	assert.Equal(t, sizeBefore-1, a.Len())
}

func TestInt64ArraySortAscendingIdempotent(t *testing.T) {
	a := NewInt64Array(0)
	for _, v := range []int64{5, 3, 9, 1, 1, 7} {
		a.Append(v)
	}
	a.SortAscending()
	first := append([]int64{}, a.Slice()...)
	a.SortAscending()
	second := a.Slice()
	assert.Equal(t, first, second)
	for i := 1; i < len(second); i++ {
		assert.LessOrEqual(t, second[i-1], second[i])
	}
}

func TestInt64ArrayResize(t *testing.T) {
	a := NewInt64Array(0)
	a.Resize(3)
	assert.Equal(t, []int64{0, 0, 0}, a.Slice())
	a.Set(1, 42)
	a.Resize(1)
	assert.Equal(t, []int64{0}, a.Slice())
}

func TestInt64ArrayRemove(t *testing.T) {
	a := NewInt64Array(0)
	for _, v := range []int64{10, 20, 30, 20} {
		a.Append(v)
	}
	a.RemoveAt(0)
	assert.Equal(t, []int64{20, 30, 20}, a.Slice())
	removed := a.RemoveFirstMatch(20)
	assert.True(t, removed)
	assert.Equal(t, []int64{30, 20}, a.Slice())
}

func TestInt64ArrayClone(t *testing.T) {
	a := NewInt64Array(0)
	a.Append(1)
	b := a.Clone()
	b.Append(2)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestInt64MapSetGetContains(t *testing.T) {
	m := NewInt64Map(0.5)
	m.Set(10, 100)
	v, ok := m.Get(10)
	require.True(t, ok)
	assert.Equal(t, int64(100), v)
	assert.True(t, m.Contains(10))
	assert.False(t, m.Contains(11))

	m.Set(10, 200)
	v, ok = m.Get(10)
	require.True(t, ok)
	assert.Equal(t, int64(200), v)
	assert.Equal(t, 1, m.Len())
}

func TestInt64MapRehash(t *testing.T) {
	m := NewInt64Map(0.5)
	const n = 500
	for i := int64(0); i < n; i++ {
		m.Set(i, i*i)
	}
	assert.Equal(t, n, m.Len())
	for i := int64(0); i < n; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*i, v)
	}
}

func TestInt64MapDelete(t *testing.T) {
	m := NewInt64Map(0.5)
	m.Set(1, 1)
	m.Set(2, 2)
	m.Delete(1)
	assert.False(t, m.Contains(1))
	assert.True(t, m.Contains(2))
	assert.Equal(t, 1, m.Len())
	// Re-insertion after delete should reuse the tombstone.
	m.Set(1, 99)
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(99), v)
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(2)
	q.Push(1)
	q.Push(2)
	q.Push(3) // forces growth
	q.Push(4)

	for _, want := range []int64{1, 2, 3, 4} {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestTierPositionSetAddContains(t *testing.T) {
	s := NewTierPositionSet()
	tp1 := types.TierPosition{Tier: 3, Position: 7}
	tp2 := types.TierPosition{Tier: 3, Position: 8}

	assert.True(t, s.Add(tp1))
	assert.False(t, s.Add(tp1)) // duplicate
	assert.True(t, s.Contains(tp1))
	assert.False(t, s.Contains(tp2))
	assert.Equal(t, 1, s.Len())
}

func TestTierPositionSetManyEntries(t *testing.T) {
	s := NewTierPositionSet()
	for tier := types.Tier(0); tier < 10; tier++ {
		for pos := types.Position(0); pos < 50; pos++ {
			s.Add(types.TierPosition{Tier: tier, Position: pos})
		}
	}
	assert.Equal(t, 500, s.Len())
	assert.True(t, s.Contains(types.TierPosition{Tier: 5, Position: 25}))
	assert.False(t, s.Contains(types.TierPosition{Tier: 5, Position: 999}))
}

func TestPositionArrayDomainWrapping(t *testing.T) {
	p := NewPositionArray(0)
	p.Append(types.Position(5))
	p.Append(types.Position(9))
	assert.Equal(t, types.Position(9), p.At(1))
	assert.True(t, p.Contains(types.Position(5)))
}

func TestTierPositionArray(t *testing.T) {
	a := NewTierPositionArray(0)
	a.Append(types.TierPosition{Tier: 1, Position: 2})
	a.Append(types.TierPosition{Tier: 3, Position: 4})
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, types.TierPosition{Tier: 3, Position: 4}, a.At(1))
}
