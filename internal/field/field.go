// Package field decodes the field event script dialect: dialogs, battles,
// branches and the party action queues.
package field

import (
	"github.com/retroenv/ff6events/internal/action"
	"github.com/retroenv/ff6events/internal/bytecode"
)

// Event tags. Tags 0x31-0x34 are the party action queues.
const (
	TagActionQueueFirst  = 0x31
	TagActionQueueSecond = 0x32
	TagActionQueueThird  = 0x33
	TagActionQueueFourth = 0x34

	TagMakeChar0Lead           = 0x47
	TagDialogWait              = 0x49
	TagDispTextBoxWait         = 0x4b
	TagInvokeBattle            = 0x4e
	TagInvokeBattleOnChestOpen = 0x8e
	TagUnfadeScreen            = 0x96
	TagCall                    = 0xb2
	TagJumpIfBattleSwitch      = 0xb7
	TagBranchIfEventBit        = 0xc0

	// Terminator ends a field script.
	Terminator = 0xfe
	TagNop     = 0xff
)

// Script is a decoded field script, without its terminator.
type Script struct {
	Events []Event `yaml:"events" toml:"events" cbor:"events"`
}

var simpleEvents = map[byte]Event{
	TagDialogWait:              DialogWait{},
	TagInvokeBattle:            InvokeBattle{},
	TagInvokeBattleOnChestOpen: InvokeBattleOnChestOpen{},
	TagMakeChar0Lead:           MakeChar0Lead{},
	TagNop:                     Nop{},
	TagUnfadeScreen:            UnfadeScreen{},
}

// ParseScript decodes events until the script terminator has been consumed.
func ParseScript(c *bytecode.Cursor) (*Script, error) {
	events, err := bytecode.Assemble(c, Decode, Terminator)
	if err != nil {
		return nil, err
	}
	return &Script{Events: events}, nil
}

// Decode decodes the event at the cursor position. An
// *bytecode.UnrecognizedTagError is returned for unknown tags.
func Decode(c *bytecode.Cursor) (Event, error) {
	tag, err := c.Peek()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagActionQueueFirst, TagActionQueueSecond, TagActionQueueThird, TagActionQueueFourth:
		return decodeActionQueue(c)
	case TagBranchIfEventBit:
		return decodeBranchIfEventBit(c)
	case TagCall:
		return decodeCall(c)
	case TagDispTextBoxWait:
		return decodeDispTextBoxWait(c)
	case TagJumpIfBattleSwitch:
		return decodeJumpIfBattleSwitch(c)
	}

	if event, ok := simpleEvents[tag]; ok {
		_, _ = c.ReadByte()
		return event, nil
	}

	return nil, bytecode.UnrecognizedTag(c)
}

// decodeActionQueue decodes a queue header followed by actions up to the
// queue terminator. The declared length is kept as is and not checked
// against the number of decoded actions.
func decodeActionQueue(c *bytecode.Cursor) (Event, error) {
	tag, _ := c.ReadByte()
	info, err := c.ReadByte()
	if err != nil {
		return nil, err
	}

	actions, err := bytecode.Assemble(c, action.Decode, action.QueueEnd)
	if err != nil {
		return nil, err
	}

	return ActionQueue{
		QueueID: tag,
		Wait:    info&0x80 != 0,
		Len:     info & 0x7f,
		Actions: actions,
	}, nil
}

func decodeBranchIfEventBit(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	bit, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	addr, err := c.ReadU24()
	if err != nil {
		return nil, err
	}
	return BranchIfEventBit{Bit: bit, Addr: addr}, nil
}

func decodeCall(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	addr, err := c.ReadU24()
	if err != nil {
		return nil, err
	}
	return Call{Addr: addr}, nil
}

func decodeDispTextBoxWait(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	msg, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	return Dialog{Msg: msg, Wait: true}, nil
}

func decodeJumpIfBattleSwitch(c *bytecode.Cursor) (Event, error) {
	_, _ = c.ReadByte()
	sw, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	addr, err := c.ReadU24()
	if err != nil {
		return nil, err
	}
	return JumpIfBattleSwitch{Switch: sw, Addr: addr}, nil
}
