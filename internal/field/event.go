package field

import (
	"fmt"
	"strings"

	"github.com/retroenv/ff6events/internal/action"
)

// Event is a decoded field script instruction.
type Event interface {
	fmt.Stringer

	// Name returns the event mnemonic.
	Name() string

	isEvent()
}

// ActionQueue queues actions for a party member. QueueID is the event tag
// that selected the party slot.
type ActionQueue struct {
	QueueID uint8           `yaml:"queue_id" toml:"queue_id" cbor:"queue_id"`
	Wait    bool            `yaml:"wait" toml:"wait" cbor:"wait"`
	Len     uint8           `yaml:"len" toml:"len" cbor:"len"`
	Actions []action.Action `yaml:"actions" toml:"actions" cbor:"actions"`
}

// BranchIfEventBit branches to Addr depending on an event bit.
type BranchIfEventBit struct {
	Bit  uint16 `yaml:"bit" toml:"bit" cbor:"bit"`
	Addr uint32 `yaml:"addr" toml:"addr" cbor:"addr"`
}

// Call calls the event subroutine at Addr.
type Call struct {
	Addr uint32 `yaml:"addr" toml:"addr" cbor:"addr"`
}

// Dialog displays a message box.
type Dialog struct {
	Msg  uint16 `yaml:"msg" toml:"msg" cbor:"msg"`
	Wait bool   `yaml:"wait" toml:"wait" cbor:"wait"`
}

// DialogWait waits for the current dialog to be closed.
type DialogWait struct{}

// InvokeBattle starts a battle.
type InvokeBattle struct{}

// InvokeBattleOnChestOpen starts the battle of a monster-in-a-box chest.
type InvokeBattleOnChestOpen struct{}

// JumpIfBattleSwitch jumps to Addr depending on a battle switch.
type JumpIfBattleSwitch struct {
	Switch uint8  `yaml:"switch" toml:"switch" cbor:"switch"`
	Addr   uint32 `yaml:"addr" toml:"addr" cbor:"addr"`
}

// MakeChar0Lead makes character 0 the party leader.
type MakeChar0Lead struct{}

// Nop does nothing.
type Nop struct{}

// UnfadeScreen fades the screen in.
type UnfadeScreen struct{}

func (ActionQueue) Name() string             { return "action_queue" }
func (BranchIfEventBit) Name() string        { return "branch_if_event_bit" }
func (Call) Name() string                    { return "call" }
func (Dialog) Name() string                  { return "dialog" }
func (DialogWait) Name() string              { return "dialog_wait" }
func (InvokeBattle) Name() string            { return "invoke_battle" }
func (InvokeBattleOnChestOpen) Name() string { return "invoke_battle_on_chest_open" }
func (JumpIfBattleSwitch) Name() string      { return "jump_if_battle_switch" }
func (MakeChar0Lead) Name() string           { return "make_char0_lead" }
func (Nop) Name() string                     { return "nop" }
func (UnfadeScreen) Name() string            { return "unfade_screen" }

func (e ActionQueue) String() string {
	actions := make([]string, len(e.Actions))
	for i, a := range e.Actions {
		actions[i] = a.String()
	}
	s := fmt.Sprintf("%s $%02x len=%d [%s]", e.Name(), e.QueueID, e.Len, strings.Join(actions, ", "))
	if e.Wait {
		s += " wait"
	}
	return s
}

func (e BranchIfEventBit) String() string {
	return fmt.Sprintf("%s $%04x, $%06x", e.Name(), e.Bit, e.Addr)
}

func (e Call) String() string {
	return fmt.Sprintf("%s $%06x", e.Name(), e.Addr)
}

func (e Dialog) String() string {
	s := fmt.Sprintf("%s $%04x", e.Name(), e.Msg)
	if e.Wait {
		s += " wait"
	}
	return s
}

func (e JumpIfBattleSwitch) String() string {
	return fmt.Sprintf("%s $%02x, $%06x", e.Name(), e.Switch, e.Addr)
}

func (e DialogWait) String() string              { return e.Name() }
func (e InvokeBattle) String() string            { return e.Name() }
func (e InvokeBattleOnChestOpen) String() string { return e.Name() }
func (e MakeChar0Lead) String() string           { return e.Name() }
func (e Nop) String() string                     { return e.Name() }
func (e UnfadeScreen) String() string            { return e.Name() }

func (ActionQueue) isEvent()             {}
func (BranchIfEventBit) isEvent()        {}
func (Call) isEvent()                    {}
func (Dialog) isEvent()                  {}
func (DialogWait) isEvent()              {}
func (InvokeBattle) isEvent()            {}
func (InvokeBattleOnChestOpen) isEvent() {}
func (JumpIfBattleSwitch) isEvent()      {}
func (MakeChar0Lead) isEvent()           {}
func (Nop) isEvent()                     {}
func (UnfadeScreen) isEvent()            {}
