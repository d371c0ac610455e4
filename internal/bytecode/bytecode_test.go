package bytecode

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCursor_Read(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x34, 0x12, 0x56, 0x34, 0x12, 0xaa}, 0)

	b, err := c.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	u16, err := c.ReadU16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u24, err := c.ReadU24()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x123456), u24)

	assert.Equal(t, 6, c.Offset())
	assert.Equal(t, 1, c.Remaining())

	peek, err := c.Peek()
	assert.NoError(t, err)
	assert.Equal(t, byte(0xaa), peek)
	assert.Equal(t, 6, c.Offset())
}

func TestCursor_Truncated(t *testing.T) {
	tests := []struct {
		name string
		read func(c *Cursor) error
	}{
		{"byte", func(c *Cursor) error { _, err := c.ReadByte(); return err }},
		{"u16", func(c *Cursor) error { _, err := c.ReadU16(); return err }},
		{"u24", func(c *Cursor) error { _, err := c.ReadU24(); return err }},
		{"slice", func(c *Cursor) error { _, err := c.Read(2); return err }},
		{"peek", func(c *Cursor) error { _, err := c.Peek(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor([]byte{0x01, 0x02}, 2)
			err := tt.read(c)
			assert.True(t, errors.Is(err, ErrTruncated))
			assert.Equal(t, 2, c.Offset())
		})
	}
}

func TestCursor_ReadIsBorrowed(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30}
	c := NewCursor(data, 1)

	b, err := c.Read(2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x20, 0x30}, b)

	data[1] = 0xff
	assert.Equal(t, byte(0xff), b[0])
}

func TestNewCondition(t *testing.T) {
	tests := []struct {
		name     string
		bytes    [2]byte
		expected Condition
	}{
		{"set bit 2 of byte 0", [2]byte{0x02, 0x80}, Condition{IsSet: true, Byte: 0, Bit: 2}},
		{"byte 0xff", [2]byte{0xf8, 0x07}, Condition{IsSet: false, Byte: 0xff, Bit: 0}},
		{"clear all byte bits", [2]byte{0xf8, 0x7f}, Condition{IsSet: false, Byte: 0xfff, Bit: 0}},
		{"set byte 0x14 bit 4", [2]byte{0xa4, 0x80}, Condition{IsSet: true, Byte: 0x14, Bit: 4}},
		{"clear byte 0x82 bit 2", [2]byte{0x12, 0x04}, Condition{IsSet: false, Byte: 0x82, Bit: 2}},
		{"bit 7", [2]byte{0x07, 0x00}, Condition{IsSet: false, Byte: 0, Bit: 7}},
		{"zero", [2]byte{0x00, 0x00}, Condition{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.bytes[:], 0)
			cond, err := ReadCondition(c)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, cond)
			assert.Equal(t, 2, c.Offset())
		})
	}
}

func TestNewCondition_Total(t *testing.T) {
	for v := 0; v <= 0xffff; v++ {
		cond := NewCondition(uint16(v))
		assert.True(t, cond.Byte <= 0xfff)
		assert.True(t, cond.Bit <= 7)
		assert.Equal(t, v&0x8000 != 0, cond.IsSet)
	}
}

func TestAssemble(t *testing.T) {
	decode := func(c *Cursor) (byte, error) {
		tag, err := c.Peek()
		if err != nil {
			return 0, err
		}
		if tag > 0x10 {
			return 0, UnrecognizedTag(c)
		}
		return c.ReadByte()
	}

	t.Run("stops at terminator", func(t *testing.T) {
		c := NewCursor([]byte{0x01, 0x02, 0xfe, 0x03}, 0)
		events, err := Assemble(c, decode, 0xfe)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, events)
		assert.Equal(t, 3, c.Offset())
	})

	t.Run("any of several terminators", func(t *testing.T) {
		c := NewCursor([]byte{0x01, 0xfd}, 0)
		events, err := Assemble(c, decode, 0xff, 0xfd)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x01}, events)
		assert.Equal(t, 2, c.Offset())
	})

	t.Run("empty script", func(t *testing.T) {
		c := NewCursor([]byte{0xfe}, 0)
		events, err := Assemble(c, decode, 0xfe)
		assert.NoError(t, err)
		assert.Len(t, events, 0)
	})

	t.Run("decode error is returned unchanged", func(t *testing.T) {
		c := NewCursor([]byte{0x01, 0x20, 0xfe}, 0)
		events, err := Assemble(c, decode, 0xfe)
		assert.True(t, events == nil)

		var tagErr *UnrecognizedTagError
		assert.True(t, errors.As(err, &tagErr))
		assert.Equal(t, byte(0x20), tagErr.Tag)
		assert.Equal(t, 1, tagErr.Offset)
		assert.Equal(t, "unknown event tag 0x20 at 0x000001", err.Error())
	})

	t.Run("missing terminator", func(t *testing.T) {
		c := NewCursor([]byte{0x01, 0x02}, 0)
		_, err := Assemble(c, decode, 0xfe)
		assert.True(t, errors.Is(err, ErrTruncated))
	})
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0x00, 0x00, 0x7f))
	assert.True(t, InRange(0x7f, 0x00, 0x7f))
	assert.False(t, InRange(0x80, 0x00, 0x7f))
	assert.True(t, InRange(0xff, 0x80, 0xff))
	assert.False(t, InRange(0x7f, 0x80, 0x9f))
}
