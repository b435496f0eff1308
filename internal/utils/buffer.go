package utils

import "sync"

var scratchPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

// GetScratch returns a pool-backed byte slice of the given size, for
// short-lived decode scratch space (e.g. assembling a header's fixed-width
// payload before interpretation). Callers must not retain the slice past
// ReleaseScratch.
func GetScratch(size int) []byte {
	buf := scratchPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size, size*2)
	}
	return buf[:size]
}

// ReleaseScratch returns a scratch buffer to the pool.
func ReleaseScratch(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	scratchPool.Put(buf[:0])
}

// Buffer is an append-only growth buffer with amortized-O(1) append,
// backing the encoder's whole-tree write.
type Buffer struct {
	data []byte
}

// NewBuffer returns a Buffer with the given initial capacity hint.
func NewBuffer(capHint int) *Buffer {
	if capHint < 0 {
		capHint = 0
	}
	return &Buffer{data: make([]byte, 0, capHint)}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// grow ensures at least need bytes of free capacity, doubling
// (used+need)*2 when the current free capacity is insufficient. This is the
// buffer's own growth contract — it does not rely on append's built-in
// growth factor, so the amortized-O(1) guarantee is explicit and testable.
func (b *Buffer) grow(need int) {
	free := cap(b.data) - len(b.data)
	if free >= need {
		return
	}
	newCap := (len(b.data) + need) * 2
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Write appends p to the buffer, growing as needed.
func (b *Buffer) Write(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) {
	b.grow(1)
	b.data = append(b.data, c)
}

// Bytes transfers ownership of the underlying array to the caller. The
// Buffer must not be used after calling Bytes.
func (b *Buffer) Bytes() []byte {
	out := b.data
	b.data = nil
	return out
}
