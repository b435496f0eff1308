package msgpack

import (
	"math/bits"

	"github.com/scigolib/msgpack/internal/utils"
	"github.com/scigolib/msgpack/internal/wire"
)

// encodeNode writes n's header and payload into buf, recursing into
// children for containers. This is a depth-first walk: a container's header
// is written first, then each child in order, all before encodeNode returns
// to its caller.
func encodeNode(buf *utils.Buffer, n *Node) {
	switch n.Kind() {
	case KindNil:
		buf.WriteByte(wire.Nil)
	case KindBool:
		if n.sc.b {
			buf.WriteByte(wire.True)
		} else {
			buf.WriteByte(wire.False)
		}
	case KindInt:
		encodeInt(buf, n)
	case KindFloat:
		encodeFloat(buf, n.sc.f)
	case KindStr:
		encodeStr(buf, n.data)
	case KindBlob:
		encodeBlob(buf, n.data)
	case KindExt:
		encodeExt(buf, n.etype, n.data)
	case KindArray:
		encodeArrayHeader(buf, n.Size())
		for c := n.child; c != nil; c = c.next {
			encodeNode(buf, c)
		}
	case KindMap:
		encodeMapHeader(buf, n.Size())
		for c := n.child; c != nil; c = c.next {
			encodeNode(buf, c.key)
			encodeNode(buf, c)
		}
	}
}

func encodeInt(buf *utils.Buffer, n *Node) {
	if n.sc.hasU {
		encodeUintBits(buf, n.sc.u)
		return
	}
	v := n.sc.i
	switch {
	case v >= 0 && v <= 127:
		buf.WriteByte(byte(v))
	case v >= -32 && v < 0:
		buf.WriteByte(byte(v))
	case v >= 0 && v <= 0xFF:
		buf.WriteByte(wire.Uint8)
		buf.WriteByte(byte(v))
	case v >= -128 && v <= -33:
		buf.WriteByte(wire.Int8)
		buf.WriteByte(byte(v))
	case v >= 0 && v <= 0xFFFF:
		buf.WriteByte(wire.Uint16)
		writeBE16(buf, uint16(v))
	case v >= -32768 && v <= -129:
		buf.WriteByte(wire.Int16)
		writeBE16(buf, uint16(v))
	case v >= 0 && v <= 0xFFFFFFFF:
		buf.WriteByte(wire.Uint32)
		writeBE32(buf, uint32(v))
	case v >= -(1<<31) && v <= -32769:
		buf.WriteByte(wire.Int32)
		writeBE32(buf, uint32(v))
	case v >= 0:
		buf.WriteByte(wire.Uint64)
		writeBE64(buf, uint64(v))
	default:
		buf.WriteByte(wire.Int64)
		writeBE64(buf, uint64(v))
	}
}

// encodeUintBits encodes a value that arrived off the wire (or via NewUint)
// as unsigned, so values above math.MaxInt64 are never misencoded as
// negative. It follows the same shortest-header-wins rule as encodeInt.
func encodeUintBits(buf *utils.Buffer, u uint64) {
	switch {
	case u <= 127:
		buf.WriteByte(byte(u))
	case u <= 0xFF:
		buf.WriteByte(wire.Uint8)
		buf.WriteByte(byte(u))
	case u <= 0xFFFF:
		buf.WriteByte(wire.Uint16)
		writeBE16(buf, uint16(u))
	case u <= 0xFFFFFFFF:
		buf.WriteByte(wire.Uint32)
		writeBE32(buf, uint32(u))
	default:
		buf.WriteByte(wire.Uint64)
		writeBE64(buf, u)
	}
}

func encodeFloat(buf *utils.Buffer, f float64) {
	if utils.Float32RoundTrips(f) {
		b := make([]byte, 4)
		utils.PutNativeFloat32(b, float32(f))
		utils.SwapFloat32Bytes(b)
		buf.WriteByte(wire.Float32)
		buf.Write(b)
		return
	}
	b := make([]byte, 8)
	utils.PutNativeFloat64(b, f)
	utils.SwapFloat64Bytes(b)
	buf.WriteByte(wire.Float64)
	buf.Write(b)
}

func encodeStr(buf *utils.Buffer, data []byte) {
	n := len(data)
	switch {
	case n < 32:
		buf.WriteByte(wire.FixStrLow | byte(n))
	case n <= 0xFF:
		buf.WriteByte(wire.Str8)
		buf.WriteByte(byte(n))
	case n <= 0xFFFF:
		buf.WriteByte(wire.Str16)
		writeBE16(buf, uint16(n))
	default:
		buf.WriteByte(wire.Str32)
		writeBE32(buf, uint32(n))
	}
	buf.Write(data)
}

func encodeBlob(buf *utils.Buffer, data []byte) {
	n := len(data)
	switch {
	case n <= 0xFF:
		buf.WriteByte(wire.Bin8)
		buf.WriteByte(byte(n))
	case n <= 0xFFFF:
		buf.WriteByte(wire.Bin16)
		writeBE16(buf, uint16(n))
	default:
		buf.WriteByte(wire.Bin32)
		writeBE32(buf, uint32(n))
	}
	buf.Write(data)
}

func encodeExt(buf *utils.Buffer, etype int8, data []byte) {
	n := len(data)
	if log, ok := fixExtLog2(n); ok {
		buf.WriteByte(wire.FixExt1 + byte(log))
		buf.WriteByte(byte(etype))
		buf.Write(data)
		return
	}
	switch {
	case n <= 0xFF:
		buf.WriteByte(wire.Ext8)
		buf.WriteByte(byte(n))
	case n <= 0xFFFF:
		buf.WriteByte(wire.Ext16)
		writeBE16(buf, uint16(n))
	default:
		buf.WriteByte(wire.Ext32)
		writeBE32(buf, uint32(n))
	}
	buf.WriteByte(byte(etype))
	buf.Write(data)
}

// fixExtLog2 returns log2(n) and true when n is a power of two in {1, 2, 4,
// 8, 16} — the lengths that get a one-byte fixext header instead of a sized
// ext8/16/32 header.
func fixExtLog2(n int) (int, bool) {
	switch n {
	case 1, 2, 4, 8, 16:
		return bits.TrailingZeros(uint(n)), true
	default:
		return 0, false
	}
}

func encodeArrayHeader(buf *utils.Buffer, n int) {
	switch {
	case n <= 15:
		buf.WriteByte(wire.FixArrLow | byte(n))
	case n <= 0xFFFF:
		buf.WriteByte(wire.Array16)
		writeBE16(buf, uint16(n))
	default:
		buf.WriteByte(wire.Array32)
		writeBE32(buf, uint32(n))
	}
}

func encodeMapHeader(buf *utils.Buffer, n int) {
	switch {
	case n <= 15:
		buf.WriteByte(wire.FixMapLow | byte(n))
	case n <= 0xFFFF:
		buf.WriteByte(wire.Map16)
		writeBE16(buf, uint16(n))
	default:
		buf.WriteByte(wire.Map32)
		writeBE32(buf, uint32(n))
	}
}

func writeBE16(buf *utils.Buffer, v uint16) {
	buf.Write([]byte{byte(v >> 8), byte(v)})
}

func writeBE32(buf *utils.Buffer, v uint32) {
	buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func writeBE64(buf *utils.Buffer, v uint64) {
	buf.Write([]byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	})
}
