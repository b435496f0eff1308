package msgpack

import (
	"github.com/scigolib/msgpack/internal/utils"
)

// Pack serializes n, and its full subtree, into a freshly allocated byte
// slice. A nil n encodes as KindNil's single byte.
func Pack(n *Node) ([]byte, error) {
	buf := utils.NewBuffer(64)
	encodeNode(buf, n)
	return buf.Bytes(), nil
}

// Unpack decodes data as a stream of one or more top-level MessagePack
// values, returned as a sibling chain rooted at the first value. It reports
// the number of top-level values found. Multiple top-level values are a
// deliberate extension over a single-document codec (see spec §3): callers
// that expect exactly one value should check count == 1.
//
// On empty, malformed or truncated input, Unpack returns a nil root, a count
// of 0, and a wrapped ErrTruncated, ErrBadFormat or ErrAllocation.
func Unpack(data []byte) (*Node, int, error) {
	c := utils.NewCursor(data)

	var root, tail *Node
	count := 0

	for c.Remaining() > 0 {
		n := decodeNode(c)
		switch c.Err() {
		case utils.CursorEOF:
			return nil, 0, wrapf("unpack", ErrTruncated, "truncated value at offset %d", c.Pos())
		case utils.CursorBadFormat:
			return nil, 0, wrapf("unpack", ErrBadFormat, "malformed header at offset %d", c.Pos())
		case utils.CursorAllocation:
			return nil, 0, wrapf("unpack", ErrAllocation, "refused allocation for claimed length at offset %d", c.Pos())
		}

		count++
		if root == nil {
			root = n
			tail = n
		} else {
			tail.next = n
			n.prev = tail
			tail = n
		}
	}

	if count == 0 {
		return nil, 0, wrapf("unpack", ErrTruncated, "empty input")
	}
	return root, count, nil
}
