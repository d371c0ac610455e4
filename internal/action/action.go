// Package action decodes the single byte actions that make up a field
// script party action queue.
package action

import (
	"fmt"

	"github.com/retroenv/ff6events/internal/bytecode"
)

// QueueEnd terminates an action queue. It is not a valid action tag.
const QueueEnd = 0xff

// Action is a queued party member action. The value is the action tag.
type Action uint8

// Known actions.
const (
	CenterOnScreen Action = 0xd7
)

var names = map[Action]string{
	CenterOnScreen: "center_on_screen",
}

// Decode consumes a single action tag.
func Decode(c *bytecode.Cursor) (Action, error) {
	tag, err := c.Peek()
	if err != nil {
		return 0, err
	}

	a := Action(tag)
	if _, ok := names[a]; !ok {
		return 0, bytecode.UnrecognizedTag(c)
	}
	_, _ = c.ReadByte()
	return a, nil
}

func (a Action) String() string {
	if name, ok := names[a]; ok {
		return name
	}
	return fmt.Sprintf("action_%02x", uint8(a))
}

// MarshalText encodes the action by name for the exporters.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
