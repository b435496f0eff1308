package msgpack

// NewNil returns a fresh Nil node.
func NewNil() *Node {
	return &Node{kind: KindNil}
}

// NewBool returns a fresh Bool node.
func NewBool(b bool) *Node {
	return &Node{kind: KindBool, sc: scalar{b: b}}
}

// NewInt returns a fresh Int node holding a signed value.
func NewInt(i int64) *Node {
	return &Node{kind: KindInt, sc: scalar{i: i, u: uint64(i)}}
}

// NewUint returns a fresh Int node holding an unsigned value, preserving
// values above math.MaxInt64 losslessly (see Node.IsUnsigned).
func NewUint(u uint64) *Node {
	return &Node{kind: KindInt, sc: scalar{i: int64(u), u: u, hasU: u > 1<<63-1}}
}

// NewFloat returns a fresh Float node.
func NewFloat(f float64) *Node {
	return &Node{kind: KindFloat, sc: scalar{f: f}}
}

// NewStr returns a fresh Str node. The payload is copied; strings are not
// validated as UTF-8 (per spec — the wire format does not require it).
func NewStr(s string) *Node {
	return &Node{kind: KindStr, data: append([]byte(nil), s...)}
}

// NewStrBytes is like NewStr but takes raw bytes directly.
func NewStrBytes(b []byte) *Node {
	return &Node{kind: KindStr, data: append([]byte(nil), b...)}
}

// NewBlob returns a fresh Blob node. The payload is copied.
func NewBlob(b []byte) *Node {
	return &Node{kind: KindBlob, data: append([]byte(nil), b...)}
}

// NewExt returns a fresh Ext node with the given user extension type and
// payload. The payload is copied.
func NewExt(etype int8, b []byte) *Node {
	return &Node{kind: KindExt, etype: etype, data: append([]byte(nil), b...)}
}

// NewArray returns a fresh, empty Array node.
func NewArray() *Node {
	return &Node{kind: KindArray}
}

// NewMap returns a fresh, empty Map node.
func NewMap() *Node {
	return &Node{kind: KindMap}
}

// tailSibling returns the last node in n's sibling chain (n itself if it has
// no next).
func tailSibling(n *Node) *Node {
	for n.next != nil {
		n = n.next
	}
	return n
}

// appendChild links child onto the tail of parent's child chain.
func appendChild(parent, child *Node) {
	if parent.child == nil {
		parent.child = child
	} else {
		tail := tailSibling(parent.child)
		tail.next = child
		child.prev = tail
	}
	parent.gen++
}

// ArrayAppend appends value as the new last element of an Array node.
// Returns ErrKindMismatch if arr is not a Kind Array.
func ArrayAppend(arr, value *Node) error {
	if err := checkKind(arr, KindArray); err != nil {
		return err
	}
	appendChild(arr, value)
	return nil
}

// MapPut appends a (name, value) entry as the new last entry of a Map node.
// A Str key node is created from name and attached to value's Key() slot,
// per spec §4.F. Does not check for an existing entry with the same name —
// callers wanting replace-if-present semantics should use MapLookup +
// Replace/Detach first. Returns ErrKindMismatch if m is not a Kind Map.
func MapPut(m *Node, name string, value *Node) error {
	if err := checkKind(m, KindMap); err != nil {
		return err
	}
	value.key = NewStr(name)
	appendChild(m, value)
	return nil
}

// MapPutKey is like MapPut but takes an already-built key node (any Kind —
// map keys need not be strings on the wire, only the MapLookup convenience
// API assumes Str keys).
func MapPutKey(m *Node, key, value *Node) error {
	if err := checkKind(m, KindMap); err != nil {
		return err
	}
	value.key = key
	appendChild(m, value)
	return nil
}

func checkKind(n *Node, k Kind) error {
	if n.Kind() != k {
		return wrapf("build", ErrKindMismatch, "expected %s node, got %s", k, n.Kind())
	}
	return nil
}
