package msgpack

import (
	"fmt"
	"io"
	"strings"
)

// String renders a one-line summary of n's kind and value, used by tests and
// ad-hoc debugging. Containers show their child count rather than
// recursing — use Dump for a full tree render.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("bool(%v)", n.sc.b)
	case KindInt:
		if n.sc.hasU {
			return fmt.Sprintf("int(%d)", n.sc.u)
		}
		return fmt.Sprintf("int(%d)", n.sc.i)
	case KindFloat:
		return fmt.Sprintf("float(%v)", n.sc.f)
	case KindStr:
		return fmt.Sprintf("str(%q)", n.data)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(n.data))
	case KindExt:
		return fmt.Sprintf("ext(type=%d, %d bytes)", n.etype, len(n.data))
	case KindArray:
		return fmt.Sprintf("array(%d)", n.Size())
	case KindMap:
		return fmt.Sprintf("map(%d)", n.Size())
	default:
		return "unknown"
	}
}

// Dump writes an indented, human-readable tree render of n to w: one line
// per node, indentation tracking depth, map entries prefixed by their key.
func Dump(w io.Writer, n *Node) {
	dumpNode(w, n, 0)
}

func dumpNode(w io.Writer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.key != nil {
		keyLabel := n.key.String()
		if n.key.Kind() == KindStr {
			keyLabel = string(n.key.Bytes())
		}
		fmt.Fprintf(w, "%s%s: %s\n", indent, keyLabel, n.String())
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.String())
	}
	if n.IsContainer() {
		for c := n.child; c != nil; c = c.next {
			dumpNode(w, c, depth+1)
		}
	}
}
