package msgpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_IntWidthBoundaries(t *testing.T) {
	tests := []struct {
		name string
		hex  []byte
		want int64
	}{
		{"uint16", []byte{0xCD, 0x01, 0x00}, 256},
		{"int16", []byte{0xD1, 0xFF, 0x7F}, -129},
		{"uint32", []byte{0xCE, 0x00, 0x01, 0x00, 0x00}, 0x10000},
		{"int32", []byte{0xD2, 0xFF, 0xFF, 0x7F, 0xFF}, -32769},
		{"int64", []byte{0xD3, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, count, err := Unpack(tt.hex)
			require.NoError(t, err)
			require.Equal(t, 1, count)
			require.Equal(t, tt.want, root.Int64())
		})
	}
}

func TestDecode_Uint64HighBitPreserved(t *testing.T) {
	hex := []byte{0xCF, 0x80, 0, 0, 0, 0, 0, 0, 1}
	root, count, err := Unpack(hex)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.True(t, root.IsUnsigned())
	require.Equal(t, uint64(1<<63+1), root.Uint64())
}

func TestDecode_Str32Boundary(t *testing.T) {
	payload := make([]byte, 0x10000)
	hex := append([]byte{0xDB, 0x00, 0x01, 0x00, 0x00}, payload...)
	root, count, err := Unpack(hex)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, KindStr, root.Kind())
	require.Len(t, root.Bytes(), 0x10000)
}

func TestDecode_Ext32(t *testing.T) {
	// length 0x21 (33, not a fixext power of two) then etype then payload
	payload := make([]byte, 0x21)
	for i := range payload {
		payload[i] = byte(i)
	}
	hex := append([]byte{0xC9, 0x00, 0x00, 0x00, 0x21, 0x0A}, payload...)
	root, count, err := Unpack(hex)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, KindExt, root.Kind())
	require.Equal(t, int8(10), root.ExtType())
	require.Equal(t, payload, root.Bytes())
}

func TestDecode_FixextPowersOfTwo(t *testing.T) {
	tests := []struct {
		name string
		hex  byte
		n    int
	}{
		{"fixext1", 0xD4, 1},
		{"fixext2", 0xD5, 2},
		{"fixext4", 0xD6, 4},
		{"fixext8", 0xD7, 8},
		{"fixext16", 0xD8, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte{tt.hex, 0x01}, make([]byte, tt.n)...)
			root, count, err := Unpack(data)
			require.NoError(t, err)
			require.Equal(t, 1, count)
			require.Equal(t, tt.n, len(root.Bytes()))
			require.Equal(t, int8(1), root.ExtType())
		})
	}
}

func TestDecode_MalformedHeaderAborts(t *testing.T) {
	for _, h := range []byte{0xC1} {
		_, _, err := Unpack([]byte{h})
		require.ErrorIs(t, err, ErrBadFormat)
	}
}

func TestDecode_ClaimedLengthBeyondInputIsRejected(t *testing.T) {
	// bin32 claims 0xFFFFFFFF bytes but the input has none
	_, _, err := Unpack([]byte{0xC6, 0xFF, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, ErrAllocation)
}

func TestDecode_ClaimedArrayCountBeyondInputIsRejected(t *testing.T) {
	// array32 claims far more elements than the remaining bytes could hold
	_, _, err := Unpack([]byte{0xDD, 0xFF, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, ErrAllocation)
}

func TestDecode_NestedContainers(t *testing.T) {
	// [[1, 2], {"x": 3}]
	data := []byte{
		0x92,
		0x92, 0x01, 0x02,
		0x81, 0xA1, 'x', 0x03,
	}
	root, count, err := Unpack(data)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	inner, err := Index(root, 0)
	require.NoError(t, err)
	require.Equal(t, KindArray, inner.Kind())
	n, _ := Size(inner)
	require.Equal(t, 2, n)

	m, err := Index(root, 1)
	require.NoError(t, err)
	v, err := MapLookup(m, "x")
	require.NoError(t, err)
	require.Equal(t, int64(3), v.Int64())
}
