package bytecode

import "slices"

// DecodeFunc decodes the single instruction at the cursor position.
type DecodeFunc[E any] func(c *Cursor) (E, error)

// Assemble decodes instructions until one of the terminator tags is found.
// The terminator is checked before every decode and is consumed, the cursor
// is left directly behind it. Decode errors are returned unchanged and no
// partially decoded sequence is returned with them.
func Assemble[E any](c *Cursor, decode DecodeFunc[E], terminators ...byte) ([]E, error) {
	var events []E
	for {
		tag, err := c.Peek()
		if err != nil {
			return nil, err
		}
		if slices.Contains(terminators, tag) {
			_, _ = c.ReadByte()
			return events, nil
		}

		event, err := decode(c)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
}
