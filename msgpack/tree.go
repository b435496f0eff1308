package msgpack

import (
	set3 "github.com/TomTonic/Set3"
	"golang.org/x/text/cases"

	"github.com/scigolib/msgpack/internal/nameindex"
)

var foldCaser = cases.Fold()

// lookupCache memoizes MapLookup/MapLookupFold results, keyed by (container
// pointer, generation, folded name). See internal/nameindex for the
// staleness discussion.
var lookupCache = nameindex.New[*Node](4096)

// Size returns the number of children of an Array or Map node.
// Returns ErrKindMismatch for a non-container node.
func Size(n *Node) (int, error) {
	if !n.IsContainer() {
		return 0, wrapf("size", ErrKindMismatch, "node is %s, not a container", n.Kind())
	}
	return n.Size(), nil
}

// Size returns the number of children, walking the sibling chain. Returns 0
// for a non-container node (scalars never have children).
func (n *Node) Size() int {
	count := 0
	for c := n.child; c != nil; c = c.next {
		count++
	}
	return count
}

// Index returns the i'th child (0-based) of an Array or Map node.
// Returns ErrOutOfRange if i is out of bounds, ErrKindMismatch if n is not a
// container.
func Index(n *Node, i int) (*Node, error) {
	if !n.IsContainer() {
		return nil, wrapf("index", ErrKindMismatch, "node is %s, not a container", n.Kind())
	}
	if i < 0 {
		return nil, wrapf("index", ErrOutOfRange, "negative index %d", i)
	}
	c := n.child
	for ; c != nil && i > 0; i-- {
		c = c.next
	}
	if c == nil {
		return nil, wrapf("index", ErrOutOfRange, "index out of range")
	}
	return c, nil
}

// MapLookup returns the first child of a Map node whose key is a Str equal
// to name (exact, case-sensitive byte comparison — the wire-faithful
// primary lookup). Returns ErrKindMismatch if n is not a Map, ErrNotFound if
// no entry matches.
func MapLookup(n *Node, name string) (*Node, error) {
	return mapLookup(n, name, false)
}

// MapLookupFold is the case-insensitive convenience lookup inherited from
// the reference implementation (see DESIGN.md — this departs from
// MessagePack's byte-exact key semantics and should be treated as a
// convenience, not the primary API).
func MapLookupFold(n *Node, name string) (*Node, error) {
	return mapLookup(n, name, true)
}

func mapLookup(n *Node, name string, fold bool) (*Node, error) {
	if n.Kind() != KindMap {
		return nil, wrapf("map-lookup", ErrKindMismatch, "node is %s, not a map", n.Kind())
	}

	want := name
	if fold {
		want = foldCaser.String(name)
	}

	if cached, ok := lookupCache.Get(n, n.gen, cacheToken(fold, want)); ok {
		// The cache never stores a negative result, so a hit is always
		// still present in the live chain for this generation.
		return cached, nil
	}

	for c := n.child; c != nil; c = c.next {
		if c.key == nil || c.key.Kind() != KindStr {
			continue
		}
		got := string(c.key.Bytes())
		if fold {
			got = foldCaser.String(got)
		}
		if got == want {
			lookupCache.Put(n, n.gen, cacheToken(fold, want), c)
			return c, nil
		}
	}
	return nil, wrapf("map-lookup", ErrNotFound, "no entry named %q", name)
}

func cacheToken(fold bool, want string) string {
	if fold {
		return "f:" + want
	}
	return "s:" + want
}

// Detach unlinks the child at index i from its parent's sibling chain and
// returns it, still owning its entire subtree. The detached node's prev/next
// are cleared.
func Detach(parent *Node, i int) (*Node, error) {
	target, err := Index(parent, i)
	if err != nil {
		return nil, err
	}
	return detachNode(parent, target), nil
}

// DetachByName is Detach, locating the target by exact (case-sensitive) map
// key rather than index.
func DetachByName(parent *Node, name string) (*Node, error) {
	target, err := MapLookup(parent, name)
	if err != nil {
		return nil, err
	}
	return detachNode(parent, target), nil
}

func detachNode(parent, target *Node) *Node {
	if target.prev != nil {
		target.prev.next = target.next
	} else {
		parent.child = target.next
	}
	if target.next != nil {
		target.next.prev = target.prev
	}
	target.prev = nil
	target.next = nil
	parent.gen++
	return target
}

// Delete detaches the child at index i and discards it (Go's GC reclaims
// its subtree once unreferenced; see spec §3 Lifecycles — a manual
// "recursive free" has no analog here, the logical detach+drop is the same
// operation).
func Delete(parent *Node, i int) error {
	_, err := Detach(parent, i)
	return err
}

// DeleteByName is Delete, locating the target by exact map key.
func DeleteByName(parent *Node, name string) error {
	_, err := DetachByName(parent, name)
	return err
}

// Replace splices replacement into the chain at the same position
// currently held by the child at index i, discarding the old child.
// Returns ErrOutOfRange/ErrKindMismatch on the same conditions as Index.
func Replace(parent *Node, i int, replacement *Node) error {
	old, err := Index(parent, i)
	if err != nil {
		return err
	}
	replacement.prev = old.prev
	replacement.next = old.next
	if old.prev != nil {
		old.prev.next = replacement
	} else {
		parent.child = replacement
	}
	if old.next != nil {
		old.next.prev = replacement
	}
	replacement.key = old.key
	old.prev, old.next = nil, nil
	parent.gen++
	return nil
}

// DeepCopy returns a twin of n: same scalar values, a fresh owned payload
// copy for Str/Blob/Ext, and freshly cloned key/child/sibling subtrees. The
// copy shares no owned memory with n; mutating one never affects the other.
//
// A visited-pointer guard (backed by a Set3) detects the cycle a corrupted
// tree could introduce — the spec's ownership invariants forbid cycles by
// construction, but unlike the reference C implementation's unchecked
// recursion, a bug that violates that invariant here fails loudly instead of
// stack-overflowing.
func DeepCopy(n *Node) *Node {
	visited := set3.Empty[*Node]()
	return deepCopy(n, visited)
}

func deepCopy(n *Node, visited *set3.Set3[*Node]) *Node {
	if n == nil {
		return nil
	}
	if visited.Contains(n) {
		panic("msgpack: cycle detected during deep copy")
	}
	visited.Add(n)

	twin := &Node{kind: n.kind, sc: n.sc, etype: n.etype}
	if n.data != nil {
		twin.data = append([]byte(nil), n.data...)
	}
	twin.key = deepCopy(n.key, visited)

	var headCopy, tailCopy *Node
	for c := n.child; c != nil; c = c.next {
		cc := deepCopy(c, visited)
		if headCopy == nil {
			headCopy = cc
		} else {
			tailCopy.next = cc
			cc.prev = tailCopy
		}
		tailCopy = cc
	}
	twin.child = headCopy

	return twin
}
