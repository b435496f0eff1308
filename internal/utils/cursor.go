package utils

// CursorErr classifies why a Cursor stopped making progress.
type CursorErr int

// Cursor error states.
const (
	// CursorOK means no error has occurred.
	CursorOK CursorErr = iota
	// CursorEOF means fewer bytes remained than a Need call demanded.
	CursorEOF
	// CursorBadFormat means the decoder recognized the bytes as
	// structurally invalid (e.g. an unknown header byte).
	CursorBadFormat
	// CursorAllocation means a header's declared length or element count
	// failed a sanity check against the input actually remaining, and the
	// decoder refused to allocate for it rather than trusting the header.
	CursorAllocation
)

// Cursor is position + remaining length + error flag over an input slice,
// with bounded consume: every decode path calls Need before reading a
// length-delimited payload, so an out-of-bounds read is impossible as long
// as callers honor Need's result.
type Cursor struct {
	data []byte
	pos  int
	err  CursorErr
}

// NewCursor wraps data for bounded, sequential consumption.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Err returns the cursor's current error state.
func (c *Cursor) Err() CursorErr {
	return c.err
}

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Need sets CursorEOF and returns false if fewer than k bytes remain.
// Callers must check the return value before reading.
func (c *Cursor) Need(k int) bool {
	if c.err != CursorOK {
		return false
	}
	if k < 0 || c.Remaining() < k {
		c.err = CursorEOF
		return false
	}
	return true
}

// Fail marks the cursor as malformed, short-circuiting all further decoding.
func (c *Cursor) Fail() {
	if c.err == CursorOK {
		c.err = CursorBadFormat
	}
}

// FailAllocation marks the cursor as having refused a header-claimed
// allocation, short-circuiting all further decoding.
func (c *Cursor) FailAllocation() {
	if c.err == CursorOK {
		c.err = CursorAllocation
	}
}

// Peek returns the next k bytes without advancing the cursor. The caller
// must have already called Need(k) successfully.
func (c *Cursor) Peek(k int) []byte {
	return c.data[c.pos : c.pos+k]
}

// Consume advances the cursor by k bytes. The caller must have already
// called Need(k) successfully.
func (c *Cursor) Consume(k int) {
	c.pos += k
}

// Take is Peek followed by Consume in one step: it returns the next k bytes
// and advances past them. The caller must have already called Need(k).
func (c *Cursor) Take(k int) []byte {
	b := c.Peek(k)
	c.Consume(k)
	return b
}

// ReadByte returns the next single byte and advances past it. The caller
// must have already called Need(1).
func (c *Cursor) ReadByte() byte {
	b := c.data[c.pos]
	c.pos++
	return b
}
