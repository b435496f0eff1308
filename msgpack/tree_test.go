package msgpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSampleMap(t *testing.T) *Node {
	t.Helper()
	m := NewMap()
	require.NoError(t, MapPut(m, "a", NewInt(1)))
	require.NoError(t, MapPut(m, "b", NewBool(false)))
	require.NoError(t, MapPut(m, "C", NewStr("hi")))
	return m
}

func TestSize(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))
	n, err := Size(arr)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = Size(NewInt(5))
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestIndex(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(10)))
	require.NoError(t, ArrayAppend(arr, NewInt(20)))
	require.NoError(t, ArrayAppend(arr, NewInt(30)))

	tests := []struct {
		name    string
		i       int
		want    int64
		wantErr error
	}{
		{name: "first", i: 0, want: 10},
		{name: "middle", i: 1, want: 20},
		{name: "last", i: 2, want: 30},
		{name: "negative", i: -1, wantErr: ErrOutOfRange},
		{name: "beyond end", i: 3, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Index(arr, tt.i)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Int64())
		})
	}
}

func TestIndex_KindMismatch(t *testing.T) {
	_, err := Index(NewInt(1), 0)
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestMapLookup_CaseSensitive(t *testing.T) {
	m := buildSampleMap(t)

	v, err := MapLookup(m, "a")
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Int64())

	_, err = MapLookup(m, "A")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = MapLookup(m, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMapLookup_Fold(t *testing.T) {
	m := buildSampleMap(t)

	v, err := MapLookupFold(m, "c")
	require.NoError(t, err)
	require.Equal(t, "hi", string(v.Bytes()))

	v2, err := MapLookupFold(m, "A")
	require.NoError(t, err)
	require.Equal(t, int64(1), v2.Int64())
}

func TestMapLookup_RepeatedCallsUseCacheConsistently(t *testing.T) {
	m := buildSampleMap(t)
	for i := 0; i < 5; i++ {
		v, err := MapLookup(m, "b")
		require.NoError(t, err)
		require.Equal(t, false, v.Bool())
	}
}

func TestMapLookup_KindMismatch(t *testing.T) {
	_, err := MapLookup(NewArray(), "x")
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestDetach_ByIndex(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))
	require.NoError(t, ArrayAppend(arr, NewInt(3)))

	mid, err := Detach(arr, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), mid.Int64())
	require.Nil(t, mid.next)
	require.Nil(t, mid.prev)

	n, _ := Size(arr)
	require.Equal(t, 2, n)

	first, _ := Index(arr, 0)
	second, _ := Index(arr, 1)
	require.Equal(t, int64(1), first.Int64())
	require.Equal(t, int64(3), second.Int64())
	require.True(t, first.next == second)
	require.True(t, second.prev == first)
}

func TestDetach_HeadAndTail(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))

	head, err := Detach(arr, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), head.Int64())
	only, _ := Index(arr, 0)
	require.Equal(t, int64(2), only.Int64())
	require.Nil(t, only.prev)

	tail, err := Detach(arr, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), tail.Int64())
	_, err = Size(arr)
	require.NoError(t, err)
	sz, _ := Size(arr)
	require.Equal(t, 0, sz)
}

func TestDetach_ThenReattachIsNoopOnShape(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))
	require.NoError(t, ArrayAppend(arr, NewInt(3)))

	mid, err := Detach(arr, 1)
	require.NoError(t, err)
	require.NoError(t, ArrayAppend(arr, mid)) // appended at tail, not original position

	n, _ := Size(arr)
	require.Equal(t, 3, n)
	last, _ := Index(arr, 2)
	require.Equal(t, int64(2), last.Int64())
}

func TestDetachByName(t *testing.T) {
	m := buildSampleMap(t)
	v, err := DetachByName(m, "b")
	require.NoError(t, err)
	require.Equal(t, false, v.Bool())

	_, err = MapLookup(m, "b")
	require.ErrorIs(t, err, ErrNotFound)

	n, _ := Size(m)
	require.Equal(t, 2, n)
}

func TestDelete(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))

	require.NoError(t, Delete(arr, 0))
	n, _ := Size(arr)
	require.Equal(t, 1, n)
	first, _ := Index(arr, 0)
	require.Equal(t, int64(2), first.Int64())
}

func TestDeleteByName(t *testing.T) {
	m := buildSampleMap(t)
	require.NoError(t, DeleteByName(m, "a"))
	_, err := MapLookup(m, "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplace(t *testing.T) {
	arr := NewArray()
	require.NoError(t, ArrayAppend(arr, NewInt(1)))
	require.NoError(t, ArrayAppend(arr, NewInt(2)))
	require.NoError(t, ArrayAppend(arr, NewInt(3)))

	require.NoError(t, Replace(arr, 1, NewStr("two")))

	n, _ := Size(arr)
	require.Equal(t, 3, n)
	mid, _ := Index(arr, 1)
	require.Equal(t, KindStr, mid.Kind())
	require.Equal(t, "two", string(mid.Bytes()))

	first, _ := Index(arr, 0)
	last, _ := Index(arr, 2)
	require.True(t, first.next == mid)
	require.True(t, mid.prev == first)
	require.True(t, mid.next == last)
	require.True(t, last.prev == mid)
}

func TestReplace_PreservesMapKey(t *testing.T) {
	m := buildSampleMap(t)
	require.NoError(t, Replace(m, 0, NewInt(99)))
	v, err := MapLookup(m, "a")
	require.NoError(t, err)
	require.Equal(t, int64(99), v.Int64())
}

func TestReplace_OutOfRange(t *testing.T) {
	arr := NewArray()
	err := Replace(arr, 0, NewInt(1))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeepCopy_StructurallyEqualNoSharedMemory(t *testing.T) {
	orig := NewMap()
	require.NoError(t, MapPut(orig, "name", NewStr("gopher")))
	inner := NewArray()
	require.NoError(t, ArrayAppend(inner, NewInt(1)))
	require.NoError(t, ArrayAppend(inner, NewBlob([]byte{0xDE, 0xAD})))
	require.NoError(t, MapPut(orig, "list", inner))

	twin := DeepCopy(orig)

	// structurally equal
	origBytes, err := Pack(orig)
	require.NoError(t, err)
	twinBytes, err := Pack(twin)
	require.NoError(t, err)
	require.Equal(t, origBytes, twinBytes)

	// no shared memory: mutating the copy's string payload must not affect the original
	nameNode, err := MapLookup(twin, "name")
	require.NoError(t, err)
	nameNode.data[0] = 'X'

	origName, err := MapLookup(orig, "name")
	require.NoError(t, err)
	require.Equal(t, "gopher", string(origName.Bytes()))
}

func TestDeepCopy_FixesSourceMutationBug(t *testing.T) {
	// The reference implementation's duplicate routine mutates the SOURCE
	// node's payload when copying a map entry that carries a key; this
	// guards the corrected behavior (see spec §9 / DESIGN.md).
	m := NewMap()
	require.NoError(t, MapPut(m, "k", NewBlob([]byte{1, 2, 3})))

	before, err := MapLookup(m, "k")
	require.NoError(t, err)
	beforeBytes := append([]byte(nil), before.Bytes()...)

	_ = DeepCopy(m)

	after, err := MapLookup(m, "k")
	require.NoError(t, err)
	require.Equal(t, beforeBytes, after.Bytes())
	require.True(t, &before.data[0] == &after.data[0], "source payload slice must be untouched, same backing array")
}

func TestDeepCopy_NilIsNil(t *testing.T) {
	require.Nil(t, DeepCopy(nil))
}

func TestDeepCopy_PanicsOnCycle(t *testing.T) {
	a := NewArray()
	b := NewArray()
	a.child = b
	b.prev = nil
	b.next = nil
	b.child = a // manufacture a cycle bypassing the public API

	defer func() {
		r := recover()
		require.NotNil(t, r, "deep copy must not silently recurse forever on a cycle")
	}()
	DeepCopy(a)
}
