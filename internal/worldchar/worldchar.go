// Package worldchar decodes the world map character script dialect:
// movement, graphics, conditional jumps on event bits and map changes.
package worldchar

import (
	"github.com/retroenv/ff6events/internal/bytecode"
)

// Event tags and tag ranges.
const (
	TagGraphicalActionFirst = 0x00
	TagGraphicalActionLast  = 0x7f
	TagMoveFirst            = 0x80
	TagMoveLast             = 0x9f

	TagMoveDiagRightUp1x1   = 0xa0
	TagMoveDiagRightDown1x1 = 0xa1
	TagMoveDiagLeftDown1x1  = 0xa2
	TagMoveDiagLeftUp1x1    = 0xa3
	TagMoveDiagRightUp1x2   = 0xa4
	TagMoveDiagRightUp2x1   = 0xa5
	TagMoveDiagRightDown2x1 = 0xa6
	TagMoveDiagRightDown1x2 = 0xa7
	TagMoveDiagLeftDown1x2  = 0xa8
	TagMoveDiagLeftDown2x1  = 0xa9
	TagMoveDiagLeftUp2x1    = 0xaa
	TagMoveDiagLeftUp1x2    = 0xab

	TagConditionJumpAnd1 = 0xb0
	TagConditionJumpAnd8 = 0xb7
	TagConditionJumpOr1  = 0xb8
	TagConditionJumpOr8  = 0xbf

	TagSetEntitySpeedSlowest = 0xc0
	TagSetEntitySpeedSlow    = 0xc1
	TagSetEntitySpeedNormal  = 0xc2
	TagSetEntitySpeedFast    = 0xc3
	TagSetEntitySpeedFastest = 0xc4

	TagUnknownCmdC7  = 0xc7
	TagSetEventBit   = 0xc8
	TagClearEventBit = 0xc9

	TagTurnCharacterUp    = 0xcc
	TagTurnCharacterRight = 0xcd
	TagTurnCharacterDown  = 0xce
	TagTurnCharacterLeft  = 0xcf

	TagShowCharacter = 0xd0
	TagHideCharacter = 0xd1
	TagLoadMap       = 0xd2
	TagLoadMap2      = 0xd3

	TagUnfadeScreen = 0xd8
	TagFadeScreen   = 0xd9
	TagHideMiniMap  = 0xdd
	TagShowMiniMap  = 0xdf
	TagPause        = 0xe0

	// TerminatorAlt is the alternate end of a script.
	TerminatorAlt = 0xfd
	// Terminator is the regular end of a script.
	Terminator = 0xff
)

// Terminators lists all tags that end a world character script.
var Terminators = []byte{Terminator, TerminatorAlt}

// Script is a decoded world character script, without its terminator.
type Script struct {
	Events []Event `yaml:"events" toml:"events" cbor:"events"`
}

var simpleEvents = map[byte]Event{
	TagSetEntitySpeedSlowest: EntitySpeed{Speed: Slowest},
	TagSetEntitySpeedSlow:    EntitySpeed{Speed: Slow},
	TagSetEntitySpeedNormal:  EntitySpeed{Speed: Normal},
	TagSetEntitySpeedFast:    EntitySpeed{Speed: Fast},
	TagSetEntitySpeedFastest: EntitySpeed{Speed: Fastest},

	TagFadeScreen:    FadeScreen{},
	TagHideCharacter: HideCharacter{},
	TagHideMiniMap:   HideMiniMap{},

	TagMoveDiagRightUp1x1:   MoveDiag{Dir: RightUp, Steps: [2]uint8{1, 1}},
	TagMoveDiagRightDown1x1: MoveDiag{Dir: RightDown, Steps: [2]uint8{1, 1}},
	TagMoveDiagLeftDown1x1:  MoveDiag{Dir: LeftDown, Steps: [2]uint8{1, 1}},
	TagMoveDiagLeftUp1x1:    MoveDiag{Dir: LeftUp, Steps: [2]uint8{1, 1}},
	TagMoveDiagRightUp1x2:   MoveDiag{Dir: RightUp, Steps: [2]uint8{1, 2}},
	TagMoveDiagRightUp2x1:   MoveDiag{Dir: RightUp, Steps: [2]uint8{2, 1}},
	TagMoveDiagRightDown2x1: MoveDiag{Dir: RightDown, Steps: [2]uint8{2, 1}},
	TagMoveDiagRightDown1x2: MoveDiag{Dir: RightDown, Steps: [2]uint8{1, 2}},
	TagMoveDiagLeftDown1x2:  MoveDiag{Dir: LeftDown, Steps: [2]uint8{1, 2}},
	TagMoveDiagLeftDown2x1:  MoveDiag{Dir: LeftDown, Steps: [2]uint8{2, 1}},
	TagMoveDiagLeftUp2x1:    MoveDiag{Dir: LeftUp, Steps: [2]uint8{2, 1}},
	TagMoveDiagLeftUp1x2:    MoveDiag{Dir: LeftUp, Steps: [2]uint8{1, 2}},

	TagShowCharacter: ShowCharacter{},
	TagShowMiniMap:   ShowMiniMap{},

	TagTurnCharacterUp:    TurnCharacter{Dir: Up},
	TagTurnCharacterRight: TurnCharacter{Dir: Right},
	TagTurnCharacterDown:  TurnCharacter{Dir: Down},
	TagTurnCharacterLeft:  TurnCharacter{Dir: Left},

	TagUnfadeScreen: UnfadeScreen{},
}

// ParseScript decodes events until one of the script terminators has been
// consumed.
func ParseScript(c *bytecode.Cursor) (*Script, error) {
	events, err := bytecode.Assemble(c, Decode, Terminators...)
	if err != nil {
		return nil, err
	}
	return &Script{Events: events}, nil
}

// Decode decodes the event at the cursor position. Exact tags are matched
// before the tag ranges. An *bytecode.UnrecognizedTagError is returned for
// unknown tags.
func Decode(c *bytecode.Cursor) (Event, error) {
	tag, err := c.Peek()
	if err != nil {
		return nil, err
	}

	if event, ok := simpleEvents[tag]; ok {
		_, _ = c.ReadByte()
		return event, nil
	}

	switch {
	case bytecode.InRange(tag, TagConditionJumpAnd1, TagConditionJumpOr8):
		return decodeConditionalJump(c)
	case bytecode.InRange(tag, TagSetEventBit, TagClearEventBit):
		return decodeClrSetEventBit(c)
	case bytecode.InRange(tag, TagGraphicalActionFirst, TagGraphicalActionLast):
		return decodeGraphicalAction(c)
	case bytecode.InRange(tag, TagLoadMap, TagLoadMap2):
		return decodeLoadMap(c)
	case bytecode.InRange(tag, TagMoveFirst, TagMoveLast):
		return decodeMove(c)
	case tag == TagPause:
		return decodePause(c)
	case tag == TagUnknownCmdC7:
		return decodeUnknownCmdC7(c)
	}

	return nil, bytecode.UnrecognizedTag(c)
}

// decodeConditionalJump decodes the 16 conditional jump tags. The tag
// selects the operator and the number of conditions, 1 to 8.
func decodeConditionalJump(c *bytecode.Cursor) (Event, error) {
	tag, _ := c.ReadByte()

	op := And
	if tag >= TagConditionJumpOr1 {
		op = Or
	}
	count := int(tag-TagConditionJumpAnd1)%8 + 1

	conditions := make([]bytecode.Condition, 0, count)
	for range count {
		cond, err := bytecode.ReadCondition(c)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}

	addr, err := c.ReadU24()
	if err != nil {
		return nil, err
	}

	return ConditionalJump{
		Op:         op,
		Conditions: conditions,
		Addr:       addr,
	}, nil
}

func decodeClrSetEventBit(c *bytecode.Cursor) (Event, error) {
	tag, _ := c.ReadByte()
	v, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	return ClrSetEventBit{
		Set:  tag == TagSetEventBit,
		Byte: v >> 3,
		Bit:  uint8(v & 0x7),
	}, nil
}

func decodeGraphicalAction(c *bytecode.Cursor) (Event, error) {
	v, _ := c.ReadByte()
	return GraphicalAction{
		Action:  v & 0x3f,
		Flipped: v>>6 == 1,
	}, nil
}

func decodeLoadMap(c *bytecode.Cursor) (Event, error) {
	tag, _ := c.ReadByte()
	m, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	b, err := c.Read(3)
	if err != nil {
		return nil, err
	}
	return LoadMap{
		Map:     m,
		X:       b[0],
		Y:       b[1],
		Mode:    b[2],
		Variant: tag,
	}, nil
}

func decodeMove(c *bytecode.Cursor) (Event, error) {
	v, _ := c.ReadByte()
	return Move{
		Dir:   v & 0x3,
		Steps: (v >> 2) & 0x7,
	}, nil
}

func decodePause(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	frames, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	return Pause{Frames: frames}, nil
}

func decodeUnknownCmdC7(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	b, err := c.Read(2)
	if err != nil {
		return nil, err
	}
	return UnknownCmdC7{Args: [2]uint8{b[0], b[1]}}, nil
}
