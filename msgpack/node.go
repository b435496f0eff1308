// Package msgpack implements the MessagePack binary serialization format:
// a decoder from bytes to an in-memory document tree, an encoder back to
// bytes, a constructor/mutator API for building trees programmatically, and
// structural queries over the tree (size, indexing, lookup by name, deep
// copy).
package msgpack

// Kind identifies which MessagePack type family a Node holds.
type Kind uint8

// Node kinds.
const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindBlob
	KindExt
	KindArray
	KindMap
)

// String renders a Kind's name, used by tests and debug output.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBlob:
		return "blob"
	case KindExt:
		return "ext"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// scalar holds the Bool/Int/Float payload of a non-container node. It is a
// proper tagged variant rather than the single overloaded union field the
// reference C implementation uses (see DESIGN.md): Int is tracked as both a
// signed and — when the wire value was an unsigned 64-bit integer whose high
// bit is set — an unsigned arm, so a round trip never silently reinterprets
// a large uint64 as negative.
type scalar struct {
	b    bool
	i    int64
	u    uint64
	hasU bool // true when the value is unsigned and above math.MaxInt64 (see NewUint)
	f    float64
}

// Node is one element of a MessagePack document tree. A parent exclusively
// owns its child chain (via child/next) and, for a map entry, its key; prev
// is a non-owning back-reference. See DESIGN.md for the full ownership
// discussion.
type Node struct {
	kind  Kind
	sc    scalar
	data  []byte // owned payload for Str/Blob/Ext
	etype int8   // meaningful only when kind == KindExt

	key   *Node // non-nil only when this node is a map entry's value
	child *Node // first child, for Array/Map
	next  *Node // next sibling
	prev  *Node // previous sibling (non-owning)

	gen uint64 // bumped on every structural mutation of this node's children, for lookup-cache staleness
}

// Kind reports which MessagePack type family n holds.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNil
	}
	return n.kind
}

// IsContainer reports whether n is an Array or Map.
func (n *Node) IsContainer() bool {
	return n.Kind() == KindArray || n.Kind() == KindMap
}

// Bool returns the node's boolean value. Only meaningful for KindBool.
func (n *Node) Bool() bool {
	return n.sc.b
}

// Int64 returns the node's signed integer value. Meaningful for KindInt;
// values decoded from an unsigned wire type whose high bit is set saturate
// to math.MaxInt64 rather than silently wrapping negative (see IsUnsigned /
// Uint64 for the lossless path).
func (n *Node) Int64() int64 {
	if n.sc.hasU && n.sc.u > 1<<63-1 {
		return 1<<63 - 1
	}
	return n.sc.i
}

// Uint64 returns the node's value reinterpreted as unsigned. Meaningful for
// KindInt.
func (n *Node) Uint64() uint64 {
	if n.sc.hasU {
		return n.sc.u
	}
	return uint64(n.sc.i)
}

// IsUnsigned reports whether the node's integer is an unsigned value with
// its high bit set, whether decoded from the wire or built by NewUint (the
// one case a signed int64 cannot represent losslessly).
func (n *Node) IsUnsigned() bool {
	return n.sc.hasU
}

// Float64 returns the node's floating-point value. Meaningful for
// KindFloat. Note that a round trip collapses float32 payloads into this
// double-precision slot (see spec §9 / Non-goals): the node does not retain
// whether it was originally encoded as float32 or float64.
func (n *Node) Float64() float64 {
	return n.sc.f
}

// Bytes returns the node's raw payload. Meaningful for KindStr/KindBlob/
// KindExt. The returned slice is owned by the node; callers must not
// mutate it in place (use DeepCopy first if independent mutation is
// needed).
func (n *Node) Bytes() []byte {
	return n.data
}

// Len returns the payload byte length for KindStr/KindBlob/KindExt, or the
// child count for KindArray/KindMap (equivalent to Size()).
func (n *Node) Len() int {
	switch n.kind {
	case KindStr, KindBlob, KindExt:
		return len(n.data)
	case KindArray, KindMap:
		return n.Size()
	default:
		return 0
	}
}

// ExtType returns the user extension type byte. Meaningful only for
// KindExt.
func (n *Node) ExtType() int8 {
	return n.etype
}

// Key returns the node's map key, or nil if n is not a map entry's value.
func (n *Node) Key() *Node {
	return n.key
}

// NextSibling returns the next node in n's sibling chain, or nil at the end
// of the chain. For a tree returned by Unpack this walks the stream's
// top-level roots; for a container's children, prefer Size/Index.
func NextSibling(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.next
}
