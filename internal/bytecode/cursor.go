// Package bytecode contains the shared building blocks of the event script
// decoders: a byte cursor over a borrowed stream, the decode errors, the
// packed condition operand codec and the generic script assembler.
package bytecode

import "fmt"

// Cursor reads from a byte stream that it does not own. Offsets reported by
// the cursor are absolute positions within the stream it was created with.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at offset pos of data.
func NewCursor(data []byte, pos int) *Cursor {
	return &Cursor{
		data: data,
		pos:  pos,
	}
}

// Offset returns the absolute position of the next byte to read.
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}
	return len(c.data) - c.pos
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.data[c.pos], nil
}

// ReadByte consumes and returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadU16 consumes a little-endian 16 bit value.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// ReadU24 consumes a little-endian 24 bit value.
func (c *Cursor) ReadU24() (uint32, error) {
	if err := c.need(3); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos]) | uint32(c.data[c.pos+1])<<8 | uint32(c.data[c.pos+2])<<16
	c.pos += 3
	return v, nil
}

// Read consumes n bytes and returns them as a sub slice of the underlying
// stream. Callers that keep the bytes beyond the decode must copy them.
func (c *Cursor) Read(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) need(n int) error {
	if have := c.Remaining(); have < n {
		return fmt.Errorf("%w: need %d bytes at offset 0x%06x, %d left", ErrTruncated, n, c.pos, have)
	}
	return nil
}
