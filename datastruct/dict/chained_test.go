package dict

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainedHashMap_PutGet(t *testing.T) {
	m := NewChainedHashMap()
	require.True(t, m.IsEmpty())
	require.Nil(t, m.Put("a", 1))
	require.Nil(t, m.Put([]byte("b"), "bee"))
	require.Equal(t, 1, m.Get("a"))
	require.Equal(t, "bee", m.Get([]byte("b")))
	require.Nil(t, m.Get("missing"))
	require.Equal(t, 2, m.Size())
	require.False(t, m.IsEmpty())
}

func TestChainedHashMap_Update(t *testing.T) {
	m := NewChainedHashMap()
	m.Put("k", "v1")
	old := m.Put("k", "v2")
	require.Equal(t, "v1", old)
	require.Equal(t, "v2", m.Get("k"))
	require.Equal(t, 1, m.Size())
}

func TestChainedHashMap_NilKeyAndValue(t *testing.T) {
	m := NewChainedHashMap()
	require.False(t, m.ContainsKey(nil))
	m.Put(nil, "nil-key")
	m.Put("nil-value", nil)
	require.True(t, m.ContainsKey(nil))
	require.True(t, m.ContainsKey("nil-value"))
	require.True(t, m.ContainsValue(nil))
	require.True(t, m.ContainsValue("nil-key"))
	require.Equal(t, "nil-key", m.Get(nil))
	// 存储的 nil 与不存在无法通过 Get 区分
	require.Nil(t, m.Get("nil-value"))
	require.Nil(t, m.Get("absent"))
	require.Equal(t, "nil-key", m.Put(nil, "again"))
	require.Equal(t, 2, m.Size())
	require.Equal(t, "again", m.Remove(nil))
	require.False(t, m.ContainsKey(nil))
}

func TestChainedHashMap_ContainsKeyEmpty(t *testing.T) {
	m := NewChainedHashMap()
	require.False(t, m.ContainsKey(0))
	require.False(t, m.ContainsValue(nil))
}

func TestChainedHashMap_RemoveAbsent(t *testing.T) {
	m := NewChainedHashMap()
	m.Put(1, "one")
	require.Nil(t, m.Remove(2))
	require.Equal(t, 1, m.Size())
	require.Equal(t, "one", m.Remove(1))
	require.Nil(t, m.Remove(1))
	require.Equal(t, 0, m.Size())
}

func TestChainedHashMap_GrowScenario(t *testing.T) {
	m := NewChainedHashMap()
	require.Equal(t, 16, m.Capacity())
	for i := 1; i <= 20; i++ {
		m.Put(i, fmt.Sprintf("value-%d", i))
		switch {
		case i < 13:
			require.Equal(t, 16, m.Capacity(), "after %d puts", i)
		case i < 20:
			require.Equal(t, 24, m.Capacity(), "after %d puts", i)
		default:
			require.Equal(t, 36, m.Capacity(), "after %d puts", i)
		}
	}
	require.Equal(t, 20, m.Size())
	require.True(t, m.ContainsValue("value-19"))
	for i := 1; i <= 20; i++ {
		require.Equal(t, fmt.Sprintf("value-%d", i), m.Get(i))
	}
}

func TestChainedHashMap_ShrinkScenario(t *testing.T) {
	m := NewChainedHashMap()
	for i := 1; i <= 20; i++ {
		m.Put(i, i)
	}
	require.Equal(t, 36, m.Capacity())

	// (36/1.5)*0.8-1 = 18.2
	m.Remove(20)
	require.Equal(t, 36, m.Capacity())
	m.Remove(19)
	require.Equal(t, 18, m.Size())
	require.Equal(t, 24, m.Capacity())

	// (24/1.5)*0.8-1 = 11.8
	for i := 18; i >= 12; i-- {
		m.Remove(i)
		require.Equal(t, 24, m.Capacity(), "size %d", m.Size())
	}
	m.Remove(11)
	require.Equal(t, 10, m.Size())
	require.Equal(t, 16, m.Capacity())

	for i := 10; i >= 1; i-- {
		m.Remove(i)
	}
	require.Equal(t, 0, m.Size())
	require.Equal(t, 16, m.Capacity())
}

func TestChainedHashMap_Collision(t *testing.T) {
	m := NewChainedHashMap()
	// 容量为 16 时 1 和 17 落在同一个桶
	m.Put(1, "one")
	m.Put(17, "seventeen")
	st := m.Stats()
	require.Equal(t, 1, st.UsedBuckets)
	require.Equal(t, 2, st.LongestChain)
	require.Equal(t, "one", m.Get(1))
	require.Equal(t, "seventeen", m.Get(17))

	m.Put(1, "uno")
	require.Equal(t, "seventeen", m.Get(17))

	require.Equal(t, "uno", m.Remove(1))
	require.Nil(t, m.Get(1))
	require.Equal(t, "seventeen", m.Get(17))
	require.Equal(t, 1, m.Size())
}

func TestChainedHashMap_RemoveMiddleOfChain(t *testing.T) {
	m := NewChainedHashMap()
	m.Put(2, "a")
	m.Put(18, "b")
	m.Put(34, "c")
	require.Equal(t, 3, m.Stats().LongestChain)
	require.Equal(t, "b", m.Remove(18))
	require.Equal(t, "a", m.Get(2))
	require.Equal(t, "c", m.Get(34))
	require.Equal(t, []any{2, 34}, m.KeySet())
}

func TestChainedHashMap_TailAppend(t *testing.T) {
	m := NewChainedHashMap()
	m.Put(33, nil)
	m.Put(1, nil)
	m.Put(17, nil)
	require.Equal(t, []any{33, 1, 17}, m.KeySet())
}

func TestChainedHashMap_MaskAfterGrowth(t *testing.T) {
	m := NewChainedHashMap()
	for i := 0; i < 13; i++ {
		m.Put(i, i)
	}
	require.Equal(t, 24, m.Capacity())
	// 24-1 = 0b10111，下标 8..15 永远不会被用到，8..12 被折回 0..4
	st := m.Stats()
	require.Equal(t, 8, st.UsedBuckets)
	require.Equal(t, 2, st.LongestChain)
	for i := 0; i < 13; i++ {
		require.Equal(t, i, m.Get(i))
	}
}

func TestChainedHashMap_Views(t *testing.T) {
	m := NewChainedHashMap()
	m.Put("x", "same")
	m.Put("y", "same")
	m.Put("z", "other")

	assert.ElementsMatch(t, []any{"x", "y", "z"}, m.KeySet())
	assert.ElementsMatch(t, []any{"same", "same", "other"}, m.Values())

	entries := m.EntrySet()
	assert.ElementsMatch(t, []Entry{
		{Key: "x", Value: "same"},
		{Key: "y", Value: "same"},
		{Key: "z", Value: "other"},
	}, entries)

	m.Put("x", "changed")
	m.Remove("z")
	assert.ElementsMatch(t, []Entry{
		{Key: "x", Value: "same"},
		{Key: "y", Value: "same"},
		{Key: "z", Value: "other"},
	}, entries)
}

func TestChainedHashMap_ClearKeepsCapacity(t *testing.T) {
	m := NewChainedHashMap()
	for i := 0; i < 30; i++ {
		m.Put(i, i)
	}
	capacity := m.Capacity()
	require.Greater(t, capacity, 16)
	m.Clear()
	require.Equal(t, 0, m.Size())
	require.Equal(t, capacity, m.Capacity())
	require.Empty(t, m.KeySet())
	require.False(t, m.ContainsKey(1))
}

func TestChainedHashMap_PutAll(t *testing.T) {
	src := NewSimpleHashMap()
	for i := 0; i < 40; i++ {
		src.Put(fmt.Sprintf("key-%d", i), i)
	}
	m := NewChainedHashMap()
	m.Put("key-0", "stale")
	m.PutAll(src)
	require.Equal(t, 40, m.Size())
	for i := 0; i < 40; i++ {
		require.Equal(t, i, m.Get(fmt.Sprintf("key-%d", i)))
	}
	m.PutAll(m)
	require.Equal(t, 40, m.Size())
}

func TestChainedHashMap_ForEachStops(t *testing.T) {
	m := NewChainedHashMap()
	for i := 0; i < 10; i++ {
		m.Put(i, i)
	}
	visited := 0
	m.ForEach(func(key any, value any) bool {
		visited++
		return visited < 3
	})
	require.Equal(t, 3, visited)
}

type caseInsensitive string

func (k caseInsensitive) HashCode() uint32 {
	var h uint32
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h = h*31 + uint32(c)
	}
	return h
}

func (k caseInsensitive) Equals(other any) bool {
	o, ok := other.(caseInsensitive)
	return ok && k.HashCode() == o.HashCode() && len(k) == len(o)
}

func TestChainedHashMap_CustomKey(t *testing.T) {
	m := NewChainedHashMap()
	m.Put(caseInsensitive("Hello"), 1)
	require.Equal(t, 1, m.Get(caseInsensitive("HELLO")))
	require.Equal(t, 1, m.Put(caseInsensitive("hello"), 2))
	require.Equal(t, 1, m.Size())
}

func TestChainedHashMap_FloatZero(t *testing.T) {
	m := NewChainedHashMap()
	negZero := math.Copysign(0, -1)
	m.Put(0.0, "zero")
	require.Equal(t, "zero", m.Get(negZero))
}

type point struct {
	x, y int
}

func TestChainedHashMap_StructAndPointerKeys(t *testing.T) {
	m := NewChainedHashMap()
	m.Put(point{1, 2}, "a")
	require.Equal(t, "a", m.Get(point{1, 2}))
	require.Nil(t, m.Get(point{2, 1}))

	p1, p2 := &point{}, &point{}
	m.Put(p1, "p1")
	require.Equal(t, "p1", m.Get(p1))
	require.Nil(t, m.Get(p2))
}

type vec struct {
	x, y float64
	tag  any
}

func TestChainedHashMap_CompositeKeyWithNegativeZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	m := NewChainedHashMap()

	m.Put(vec{x: 0, y: 1}, "a")
	require.Equal(t, "a", m.Put(vec{x: negZero, y: 1}, "b"))
	require.Equal(t, 1, m.Size())
	require.Equal(t, "b", m.Get(vec{x: 0, y: 1}))

	m.Put([2]float64{negZero, 3}, "arr")
	require.Equal(t, "arr", m.Get([2]float64{0, 3}))

	m.Put(vec{tag: negZero}, "iface")
	require.Equal(t, "iface", m.Get(vec{tag: 0.0}))
	require.Equal(t, 3, m.Size())
}

func TestChainedHashMap_UnhashableKey(t *testing.T) {
	m := NewChainedHashMap()
	require.Panics(t, func() {
		m.Put([]int{1}, "slice")
	})
	require.Panics(t, func() {
		m.Get(map[string]int{})
	})
}

func TestChainedHashMap_NilReceiver(t *testing.T) {
	var m *ChainedHashMap
	require.PanicsWithValue(t, "Nil ChainedHashMap", func() {
		m.Put("k", "v")
	})
}

func TestChainedHashMap_MatchesSimple(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	m := NewChainedHashMap()
	oracle := NewSimpleHashMap()
	for i := 0; i < 20000; i++ {
		key := r.Intn(500)
		switch r.Intn(3) {
		case 0, 1:
			require.Equal(t, oracle.Put(key, i), m.Put(key, i))
		default:
			require.Equal(t, oracle.Remove(key), m.Remove(key))
		}
		require.Equal(t, oracle.Size(), m.Size())
	}
	require.Len(t, m.KeySet(), m.Size())
	require.ElementsMatch(t, oracle.KeySet(), m.KeySet())
	for _, key := range oracle.KeySet() {
		require.Equal(t, oracle.Get(key), m.Get(key))
	}
	st := m.Stats()
	require.GreaterOrEqual(t, st.Capacity, 16)
	require.Less(t, float64(st.Size), float64(st.Capacity)*loadFactor)
}
