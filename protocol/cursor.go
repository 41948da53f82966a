// File: protocol/cursor.go
//
// Bounds-checked forward-only iteration over an input buffer.

package protocol

// Cursor is a forward-only reader over a borrowed byte slice. It never
// copies, never reads out of bounds, and never allocates; exhaustion is
// reported through the boolean result, not a panic.
//
// Cursors are created fresh for each decode pass and discarded when the
// pass returns.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf. The cursor
// borrows buf; it does not copy.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Next returns the byte at the current position and advances by one.
// The second result is false when the buffer is exhausted.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// SliceTo returns a borrowed sub-slice of count bytes starting at the
// current position. The position advances by count whether or not the
// request can be satisfied: after a failed SliceTo the cursor sits past
// the valid region and the whole decode pass must be abandoned, never
// retried on the same cursor.
func (c *Cursor) SliceTo(count int) ([]byte, bool) {
	start := c.pos
	c.pos += count
	// pos < start catches both negative counts and integer overflow from
	// attacker-controlled length fields.
	if c.pos < start || c.pos > len(c.buf) {
		return nil, false
	}
	return c.buf[start:c.pos], true
}

// Pos reports the current offset from the start of the buffer. On a fully
// decoded frame this is the number of bytes the frame occupied.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining reports how many unread bytes are left, or 0 when the cursor
// has been advanced past the end by a failed SliceTo.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.pos
}
