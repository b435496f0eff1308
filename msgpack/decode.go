package msgpack

import (
	"github.com/scigolib/msgpack/internal/utils"
	"github.com/scigolib/msgpack/internal/wire"
)

// decodeNode parses one MessagePack value from c, recursively decoding
// container children. On any malformed input it marks c bad-format, EOF or
// allocation-refused and returns nil; the caller must check c.Err() before using the result.
func decodeNode(c *utils.Cursor) *Node {
	if !c.Need(1) {
		return nil
	}
	h := c.ReadByte()

	switch {
	case h == wire.Nil:
		return NewNil()
	case h == wire.False:
		return NewBool(false)
	case h == wire.True:
		return NewBool(true)
	case h <= wire.PosFixMax:
		return NewInt(int64(h))
	case h >= wire.NegFixMin:
		return NewInt(int64(int8(h)))
	case h >= wire.FixStrLow && h <= wire.FixStrHigh:
		return decodeStrPayload(c, int(h&0x1F))
	case h >= wire.FixArrLow && h <= wire.FixArrHigh:
		return decodeArrayPayload(c, int(h&0x0F))
	case h >= wire.FixMapLow && h <= wire.FixMapHigh:
		return decodeMapPayload(c, int(h&0x0F))
	case h >= wire.FixExt1 && h <= wire.FixExt16:
		return decodeFixExt(c, h)
	case h == wire.Uint8:
		return decodeUintN(c, 1)
	case h == wire.Uint16:
		return decodeUintN(c, 2)
	case h == wire.Uint32:
		return decodeUintN(c, 4)
	case h == wire.Uint64:
		return decodeUintN(c, 8)
	case h == wire.Int8:
		return decodeIntN(c, 1)
	case h == wire.Int16:
		return decodeIntN(c, 2)
	case h == wire.Int32:
		return decodeIntN(c, 4)
	case h == wire.Int64:
		return decodeIntN(c, 8)
	case h == wire.Float32:
		return decodeFloat32(c)
	case h == wire.Float64:
		return decodeFloat64(c)
	case h == wire.Str8:
		return decodeStrSized(c, 1)
	case h == wire.Str16:
		return decodeStrSized(c, 2)
	case h == wire.Str32:
		return decodeStrSized(c, 4)
	case h == wire.Bin8:
		return decodeBinSized(c, 1)
	case h == wire.Bin16:
		return decodeBinSized(c, 2)
	case h == wire.Bin32:
		return decodeBinSized(c, 4)
	case h == wire.Ext8:
		return decodeExtSized(c, 1)
	case h == wire.Ext16:
		return decodeExtSized(c, 2)
	case h == wire.Ext32:
		return decodeExtSized(c, 4)
	case h == wire.Array16:
		return decodeArraySized(c, 2)
	case h == wire.Array32:
		return decodeArraySized(c, 4)
	case h == wire.Map16:
		return decodeMapSized(c, 2)
	case h == wire.Map32:
		return decodeMapSized(c, 4)
	default:
		c.Fail()
		return nil
	}
}

func readLen(c *utils.Cursor, width int) (uint32, bool) {
	if !c.Need(width) {
		return 0, false
	}
	b := c.Take(width)
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v, true
}

func decodeUintN(c *utils.Cursor, width int) *Node {
	if !c.Need(width) {
		return nil
	}
	b := c.Take(width)
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return NewUint(v)
}

func decodeIntN(c *utils.Cursor, width int) *Node {
	if !c.Need(width) {
		return nil
	}
	b := c.Take(width)
	// sign-extend from the first byte
	v := int64(int8(b[0]))
	for _, x := range b[1:] {
		v = v<<8 | int64(x)
	}
	return NewInt(v)
}

func decodeFloat32(c *utils.Cursor) *Node {
	if !c.Need(4) {
		return nil
	}
	b := utils.GetScratch(4)
	defer utils.ReleaseScratch(b)
	copy(b, c.Take(4))
	utils.SwapFloat32Bytes(b)
	return NewFloat(float64(utils.NativeFloat32(b)))
}

func decodeFloat64(c *utils.Cursor) *Node {
	if !c.Need(8) {
		return nil
	}
	b := utils.GetScratch(8)
	defer utils.ReleaseScratch(b)
	copy(b, c.Take(8))
	utils.SwapFloat64Bytes(b)
	return NewFloat(utils.NativeFloat64(b))
}

func decodeStrPayload(c *utils.Cursor, length int) *Node {
	if err := utils.ValidatePayloadLength(uint32(length), c.Remaining()); err != nil {
		c.FailAllocation()
		return nil
	}
	if !c.Need(length) {
		return nil
	}
	return NewStrBytes(c.Take(length))
}

func decodeStrSized(c *utils.Cursor, widthBytes int) *Node {
	length, ok := readLen(c, widthBytes)
	if !ok {
		return nil
	}
	return decodeStrPayload(c, int(length))
}

func decodeBinSized(c *utils.Cursor, widthBytes int) *Node {
	length, ok := readLen(c, widthBytes)
	if !ok {
		return nil
	}
	if err := utils.ValidatePayloadLength(length, c.Remaining()); err != nil {
		c.FailAllocation()
		return nil
	}
	if !c.Need(int(length)) {
		return nil
	}
	return NewBlob(c.Take(int(length)))
}

func decodeFixExt(c *utils.Cursor, header byte) *Node {
	length := 1 << (header - wire.FixExt1)
	if !c.Need(1 + length) {
		return nil
	}
	etype := int8(c.ReadByte())
	return NewExt(etype, c.Take(length))
}

// decodeExtSized handles ext8/16/32. Per spec §9 the reference decoder's
// ext32 path is buggy (etype and the length's high byte overlap); this
// follows the MessagePack spec strictly for every width: a big-endian
// length field first, then one etype byte, then the payload.
func decodeExtSized(c *utils.Cursor, widthBytes int) *Node {
	length, ok := readLen(c, widthBytes)
	if !ok {
		return nil
	}
	if err := utils.ValidatePayloadLength(length, c.Remaining()); err != nil {
		c.FailAllocation()
		return nil
	}
	if !c.Need(1 + int(length)) {
		return nil
	}
	etype := int8(c.ReadByte())
	return NewExt(etype, c.Take(int(length)))
}

func decodeArrayPayload(c *utils.Cursor, count int) *Node {
	if err := utils.ValidateContainerCount(uint32(count), 1, c.Remaining()); err != nil {
		c.FailAllocation()
		return nil
	}
	arr := NewArray()
	for i := 0; i < count; i++ {
		child := decodeNode(c)
		if c.Err() != utils.CursorOK {
			return nil
		}
		appendChild(arr, child)
	}
	return arr
}

func decodeArraySized(c *utils.Cursor, widthBytes int) *Node {
	count, ok := readLen(c, widthBytes)
	if !ok {
		return nil
	}
	return decodeArrayPayload(c, int(count))
}

func decodeMapPayload(c *utils.Cursor, count int) *Node {
	if err := utils.ValidateContainerCount(uint32(count), 2, c.Remaining()); err != nil {
		c.FailAllocation()
		return nil
	}
	m := NewMap()
	for i := 0; i < count; i++ {
		key := decodeNode(c)
		if c.Err() != utils.CursorOK {
			return nil
		}
		val := decodeNode(c)
		if c.Err() != utils.CursorOK {
			return nil
		}
		val.key = key
		appendChild(m, val)
	}
	return m
}

func decodeMapSized(c *utils.Cursor, widthBytes int) *Node {
	count, ok := readLen(c, widthBytes)
	if !ok {
		return nil
	}
	return decodeMapPayload(c, int(count))
}
