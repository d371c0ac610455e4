package bytecode

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned when fewer bytes remain than an operand requires.
var ErrTruncated = errors.New("truncated event data")

// UnrecognizedTagError is returned when no decoder entry, neither an exact
// tag nor a tag range, matches the byte at Offset.
type UnrecognizedTagError struct {
	Tag    byte
	Offset int
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("unknown event tag 0x%02x at 0x%06x", e.Tag, e.Offset)
}

// UnrecognizedTag returns an UnrecognizedTagError for the byte at the cursor
// position. The cursor is not advanced.
func UnrecognizedTag(c *Cursor) error {
	tag, err := c.Peek()
	if err != nil {
		return err
	}
	return &UnrecognizedTagError{
		Tag:    tag,
		Offset: c.Offset(),
	}
}

// InRange reports whether tag lies within the inclusive range [lo, hi].
func InRange(tag, lo, hi byte) bool {
	return lo <= tag && tag <= hi
}
