package msgpack

import (
	"errors"
	"fmt"

	"github.com/scigolib/msgpack/internal/utils"
)

// Sentinel errors, compared with errors.Is. Each corresponds to one entry in
// spec §7's error taxonomy.
var (
	// ErrTruncated means fewer bytes remained than a header demanded.
	ErrTruncated = errors.New("msgpack: truncated input")
	// ErrBadFormat means a header byte (or a length field's consequences)
	// did not correspond to any defined MessagePack family.
	ErrBadFormat = errors.New("msgpack: invalid format")
	// ErrKindMismatch means a tree operation targeted a node of the wrong
	// Kind (e.g. indexing a scalar, or looking up a name on an Array).
	ErrKindMismatch = errors.New("msgpack: kind mismatch")
	// ErrOutOfRange means an index was out of bounds for a container's
	// child count.
	ErrOutOfRange = errors.New("msgpack: index out of range")
	// ErrNotFound means a named lookup found no matching key.
	ErrNotFound = errors.New("msgpack: name not found")
	// ErrAllocation wraps a failure to allocate memory for a payload; Go's
	// allocator panics rather than returning an error, so this only
	// surfaces from paths (e.g. a declared length sanity check) the codec
	// itself guards against, never from the runtime allocator directly.
	ErrAllocation = errors.New("msgpack: allocation failed")
)

// wrapf builds a contextual error around a sentinel, in the teacher's
// WrapError idiom.
func wrapf(context string, sentinel error, format string, args ...interface{}) error {
	return utils.WrapError(context, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
