package nameindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_PutGet(t *testing.T) {
	c := New[string](8)
	container := new(int)

	_, ok := c.Get(container, 0, "a")
	require.False(t, ok)

	c.Put(container, 0, "a", "value-a")
	v, ok := c.Get(container, 0, "a")
	require.True(t, ok)
	require.Equal(t, "value-a", v)
}

func TestCache_GenerationInvalidatesEntry(t *testing.T) {
	c := New[string](8)
	container := new(int)

	c.Put(container, 0, "a", "gen0")
	_, ok := c.Get(container, 1, "a")
	require.False(t, ok, "a different generation must not see the old entry")

	c.Put(container, 1, "a", "gen1")
	v, ok := c.Get(container, 1, "a")
	require.True(t, ok)
	require.Equal(t, "gen1", v)
}

func TestCache_DistinctContainersDoNotCollide(t *testing.T) {
	c := New[string](8)
	containerA := new(int)
	containerB := new(int)

	c.Put(containerA, 0, "name", "from-a")
	_, ok := c.Get(containerB, 0, "name")
	require.False(t, ok)
}

func TestCache_EvictsUnderPressure(t *testing.T) {
	c := New[int](2)
	container := new(int)

	c.Put(container, 0, "a", 1)
	c.Put(container, 0, "b", 2)
	c.Put(container, 0, "c", 3)

	// with capacity 2, the least-recently-used entry ("a") should be gone.
	_, aOk := c.Get(container, 0, "a")
	_, cOk := c.Get(container, 0, "c")
	require.False(t, aOk)
	require.True(t, cOk)
}
