package worldchar

import (
	"errors"
	"testing"

	"github.com/retroenv/ff6events/internal/bytecode"
	"github.com/retroenv/retrogolib/assert"
)

func decode(t *testing.T, data []byte) (Event, int) {
	t.Helper()
	c := bytecode.NewCursor(data, 0)
	event, err := Decode(c)
	assert.NoError(t, err)
	return event, c.Offset()
}

func TestDecode_SimpleEvents(t *testing.T) {
	tests := []struct {
		tag      byte
		expected Event
	}{
		{TagSetEntitySpeedSlowest, EntitySpeed{Speed: Slowest}},
		{TagSetEntitySpeedSlow, EntitySpeed{Speed: Slow}},
		{TagSetEntitySpeedNormal, EntitySpeed{Speed: Normal}},
		{TagSetEntitySpeedFast, EntitySpeed{Speed: Fast}},
		{TagSetEntitySpeedFastest, EntitySpeed{Speed: Fastest}},
		{TagFadeScreen, FadeScreen{}},
		{TagUnfadeScreen, UnfadeScreen{}},
		{TagHideCharacter, HideCharacter{}},
		{TagShowCharacter, ShowCharacter{}},
		{TagHideMiniMap, HideMiniMap{}},
		{TagShowMiniMap, ShowMiniMap{}},
		{TagTurnCharacterUp, TurnCharacter{Dir: Up}},
		{TagTurnCharacterRight, TurnCharacter{Dir: Right}},
		{TagTurnCharacterDown, TurnCharacter{Dir: Down}},
		{TagTurnCharacterLeft, TurnCharacter{Dir: Left}},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			event, consumed := decode(t, []byte{tt.tag, 0x00})
			assert.Equal(t, tt.expected, event)
			assert.Equal(t, 1, consumed)
		})
	}
}

func TestDecode_MoveDiagonal(t *testing.T) {
	tests := []struct {
		tag   byte
		dir   Diagonal
		steps [2]uint8
	}{
		{TagMoveDiagRightUp1x1, RightUp, [2]uint8{1, 1}},
		{TagMoveDiagRightUp1x2, RightUp, [2]uint8{1, 2}},
		{TagMoveDiagRightUp2x1, RightUp, [2]uint8{2, 1}},
		{TagMoveDiagRightDown1x1, RightDown, [2]uint8{1, 1}},
		{TagMoveDiagRightDown1x2, RightDown, [2]uint8{1, 2}},
		{TagMoveDiagRightDown2x1, RightDown, [2]uint8{2, 1}},
		{TagMoveDiagLeftUp1x1, LeftUp, [2]uint8{1, 1}},
		{TagMoveDiagLeftUp1x2, LeftUp, [2]uint8{1, 2}},
		{TagMoveDiagLeftUp2x1, LeftUp, [2]uint8{2, 1}},
		{TagMoveDiagLeftDown1x1, LeftDown, [2]uint8{1, 1}},
		{TagMoveDiagLeftDown1x2, LeftDown, [2]uint8{1, 2}},
		{TagMoveDiagLeftDown2x1, LeftDown, [2]uint8{2, 1}},
	}

	seen := map[byte]bool{}
	for _, tt := range tests {
		expected := MoveDiag{Dir: tt.dir, Steps: tt.steps}
		t.Run(expected.String(), func(t *testing.T) {
			event, consumed := decode(t, []byte{tt.tag})
			assert.Equal(t, Event(expected), event)
			assert.Equal(t, 1, consumed)
		})
		seen[tt.tag] = true
	}
	assert.Len(t, seen, 12)
}

func TestDecode_ConditionalJump(t *testing.T) {
	conditions := []bytecode.Condition{
		{IsSet: true, Byte: 0x14, Bit: 0x4},
		{IsSet: false, Byte: 0x82, Bit: 0x2},
		{IsSet: true, Byte: 0x00, Bit: 0x2},
		{IsSet: true, Byte: 0x82, Bit: 0x0},
		{IsSet: true, Byte: 0x00, Bit: 0x0},
		{IsSet: false, Byte: 0xfff, Bit: 0x0},
		{IsSet: false, Byte: 0x00, Bit: 0x7},
		{IsSet: false, Byte: 0x00, Bit: 0x0},
	}
	encoded := [][2]byte{
		{0xa4, 0x80},
		{0x12, 0x04},
		{0x02, 0x80},
		{0x10, 0x84},
		{0x00, 0x80},
		{0xf8, 0x7f},
		{0x07, 0x00},
		{0x00, 0x00},
	}

	for i := range 8 {
		data := []byte{TagConditionJumpAnd1 + byte(i)}
		for c := 0; c <= i; c++ {
			data = append(data, encoded[c][0], encoded[c][1])
		}
		data = append(data, 0x56, 0x34, 0x12)

		expected := ConditionalJump{
			Op:         And,
			Conditions: conditions[:i+1],
			Addr:       0x123456,
		}
		event, consumed := decode(t, data)
		assert.Equal(t, Event(expected), event)
		assert.Equal(t, len(data), consumed)

		data[0] = TagConditionJumpOr1 + byte(i)
		expected.Op = Or
		event, consumed = decode(t, data)
		assert.Equal(t, Event(expected), event)
		assert.Equal(t, len(data), consumed)
	}
}

func TestDecode_ClrSetEventBit(t *testing.T) {
	event, consumed := decode(t, []byte{TagSetEventBit, 0xcc, 0x01})
	assert.Equal(t, Event(ClrSetEventBit{Set: true, Byte: 0x39, Bit: 0x4}), event)
	assert.Equal(t, 3, consumed)

	event, _ = decode(t, []byte{TagClearEventBit, 0xff, 0xff})
	assert.Equal(t, Event(ClrSetEventBit{Set: false, Byte: 0x1fff, Bit: 0x7}), event)
}

func TestDecode_GraphicalAction(t *testing.T) {
	for i := range byte(0x40) {
		event, consumed := decode(t, []byte{i})
		assert.Equal(t, Event(GraphicalAction{Action: i, Flipped: false}), event)
		assert.Equal(t, 1, consumed)

		event, consumed = decode(t, []byte{i | 0x40})
		assert.Equal(t, Event(GraphicalAction{Action: i, Flipped: true}), event)
		assert.Equal(t, 1, consumed)
	}
}

func TestDecode_Move(t *testing.T) {
	for dir := range byte(4) {
		for steps := range byte(8) {
			tag := 0x80 | steps<<2 | dir
			event, consumed := decode(t, []byte{tag})
			assert.Equal(t, Event(Move{Dir: dir, Steps: steps}), event)
			assert.Equal(t, 1, consumed)
		}
	}
}

func TestDecode_OperandEvents(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Event
	}{
		{
			name:     "load map",
			data:     []byte{TagLoadMap, 0x03, 0x06, 0x08, 0x08, 0x00},
			expected: LoadMap{Map: 0x603, X: 8, Y: 8, Mode: 0, Variant: TagLoadMap},
		},
		{
			name:     "load map variant 2",
			data:     []byte{TagLoadMap2, 0x03, 0x06, 0x08, 0x08, 0x00},
			expected: LoadMap{Map: 0x603, X: 8, Y: 8, Mode: 0, Variant: TagLoadMap2},
		},
		{
			name:     "pause",
			data:     []byte{TagPause, 10},
			expected: Pause{Frames: 10},
		},
		{
			name:     "unknown command c7",
			data:     []byte{TagUnknownCmdC7, 0xaa, 0x55},
			expected: UnknownCmdC7{Args: [2]uint8{0xaa, 0x55}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, consumed := decode(t, tt.data)
			assert.Equal(t, tt.expected, event)
			assert.Equal(t, len(tt.data), consumed)
		})
	}
}

func TestDecode_UnrecognizedTag(t *testing.T) {
	for _, tag := range []byte{0xac, 0xc5, 0xc6, 0xca, 0xd4, 0xdc, 0xde, 0xe1, 0xfc, 0xfe} {
		c := bytecode.NewCursor([]byte{0x00, tag}, 1)
		_, err := Decode(c)

		var tagErr *bytecode.UnrecognizedTagError
		assert.True(t, errors.As(err, &tagErr))
		assert.Equal(t, tag, tagErr.Tag)
		assert.Equal(t, 1, tagErr.Offset)
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"condition", []byte{TagConditionJumpAnd1 + 1, 0xa4, 0x80, 0x12}},
		{"jump address", []byte{TagConditionJumpOr1, 0xa4, 0x80, 0x56, 0x34}},
		{"event bit", []byte{TagSetEventBit, 0xcc}},
		{"load map", []byte{TagLoadMap, 0x03, 0x06, 0x08}},
		{"pause", []byte{TagPause}},
		{"c7 arguments", []byte{TagUnknownCmdC7, 0xaa}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytecode.NewCursor(tt.data, 0))
			assert.True(t, errors.Is(err, bytecode.ErrTruncated))
		})
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		terminator byte
	}{
		{"end", []byte{0x85, TagPause, 0x10, Terminator}, Terminator},
		{"alternate end", []byte{0x85, TagPause, 0x10, TerminatorAlt}, TerminatorAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bytecode.NewCursor(append(tt.data, 0x00), 0)
			script, err := ParseScript(c)
			assert.NoError(t, err)
			assert.Equal(t, []Event{Move{Dir: 1, Steps: 1}, Pause{Frames: 0x10}}, script.Events)
			assert.Equal(t, len(tt.data), c.Offset())
		})
	}
}

func TestParseScript_FieldTerminatorIsNotAccepted(t *testing.T) {
	c := bytecode.NewCursor([]byte{0x4b, 0x85, 0x0b, 0xfe}, 0)
	_, err := ParseScript(c)

	var tagErr *bytecode.UnrecognizedTagError
	assert.True(t, errors.As(err, &tagErr))
	assert.Equal(t, byte(0xfe), tagErr.Tag)
	assert.Equal(t, 3, tagErr.Offset)
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{EntitySpeed{Speed: Fastest}, "entity_speed fastest"},
		{TurnCharacter{Dir: Left}, "turn_character left"},
		{MoveDiag{Dir: LeftUp, Steps: [2]uint8{1, 2}}, "move_diag left_up 1x2"},
		{Move{Dir: 3, Steps: 7}, "move dir=3, steps=7"},
		{GraphicalAction{Action: 0x12, Flipped: true}, "graphical_action $12 flipped"},
		{ClrSetEventBit{Set: true, Byte: 0x39, Bit: 4}, "clr_set_event_bit set $039.4"},
		{LoadMap{Map: 0x603, X: 8, Y: 9, Variant: TagLoadMap2}, "load_map $0603, 8, 9, mode=$00, variant=$d3"},
		{UnknownCmdC7{Args: [2]uint8{0xaa, 0x55}}, "unknown_cmd_c7 $aa, $55"},
		{
			ConditionalJump{Op: Or, Conditions: []bytecode.Condition{{IsSet: true, Byte: 0x14, Bit: 4}}, Addr: 0x123456},
			"conditional_jump or [$014.4 set], $123456",
		},
		{FadeScreen{}, "fade_screen"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.String())
		})
	}
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "and", And.String())
	assert.Equal(t, "unknown(9)", Speed(9).String())

	text, err := RightDown.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "right_down", string(text))
}
