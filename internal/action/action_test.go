package action

import (
	"errors"
	"testing"

	"github.com/retroenv/ff6events/internal/bytecode"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	c := bytecode.NewCursor([]byte{0xd7}, 0)

	a, err := Decode(c)
	assert.NoError(t, err)
	assert.Equal(t, CenterOnScreen, a)
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, "center_on_screen", a.String())
}

func TestDecode_UnrecognizedTag(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		pos  int
	}{
		{"unknown action", []byte{0x00}, 0},
		{"queue terminator", []byte{0xd7, QueueEnd}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bytecode.NewCursor(tt.data, tt.pos)
			_, err := Decode(c)

			var tagErr *bytecode.UnrecognizedTagError
			assert.True(t, errors.As(err, &tagErr))
			assert.Equal(t, tt.data[tt.pos], tagErr.Tag)
			assert.Equal(t, tt.pos, tagErr.Offset)
			assert.Equal(t, tt.pos, c.Offset())
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode(bytecode.NewCursor(nil, 0))
	assert.True(t, errors.Is(err, bytecode.ErrTruncated))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "action_42", Action(0x42).String())

	text, err := CenterOnScreen.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "center_on_screen", string(text))
}
