package worldchar

import (
	"fmt"
	"strings"

	"github.com/retroenv/ff6events/internal/bytecode"
)

// CondOp combines the conditions of a conditional jump.
type CondOp uint8

// Condition operators.
const (
	And CondOp = iota
	Or
)

// Direction is a facing direction of the character.
type Direction uint8

// Facing directions.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// Diagonal is a diagonal movement direction.
type Diagonal uint8

// Diagonal directions.
const (
	RightUp Diagonal = iota
	RightDown
	LeftUp
	LeftDown
)

// Speed is a movement speed level.
type Speed uint8

// Speed levels.
const (
	Slowest Speed = iota
	Slow
	Normal
	Fast
	Fastest
)

var (
	condOpNames    = [...]string{And: "and", Or: "or"}
	directionNames = [...]string{Up: "up", Right: "right", Down: "down", Left: "left"}
	diagonalNames  = [...]string{RightUp: "right_up", RightDown: "right_down", LeftUp: "left_up", LeftDown: "left_down"}
	speedNames     = [...]string{Slowest: "slowest", Slow: "slow", Normal: "normal", Fast: "fast", Fastest: "fastest"}
)

func (o CondOp) String() string    { return enumName(condOpNames[:], o) }
func (d Direction) String() string { return enumName(directionNames[:], d) }
func (d Diagonal) String() string  { return enumName(diagonalNames[:], d) }
func (s Speed) String() string     { return enumName(speedNames[:], s) }

// MarshalText encodes the operator by name for the exporters.
func (o CondOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// MarshalText encodes the direction by name for the exporters.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// MarshalText encodes the diagonal by name for the exporters.
func (d Diagonal) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// MarshalText encodes the speed by name for the exporters.
func (s Speed) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

// Event is a decoded world character script instruction.
type Event interface {
	fmt.Stringer

	// Name returns the event mnemonic.
	Name() string

	isEvent()
}

// ClrSetEventBit sets or clears a persistent event bit.
type ClrSetEventBit struct {
	Set  bool   `yaml:"set" toml:"set" cbor:"set"`
	Byte uint16 `yaml:"byte" toml:"byte" cbor:"byte"`
	Bit  uint8  `yaml:"bit" toml:"bit" cbor:"bit"`
}

// ConditionalJump jumps to Addr if all (And) or any (Or) of the conditions
// hold.
type ConditionalJump struct {
	Op         CondOp               `yaml:"op" toml:"op" cbor:"op"`
	Conditions []bytecode.Condition `yaml:"conditions" toml:"conditions" cbor:"conditions"`
	Addr       uint32               `yaml:"addr" toml:"addr" cbor:"addr"`
}

// EntitySpeed sets the movement speed.
type EntitySpeed struct {
	Speed Speed `yaml:"speed" toml:"speed" cbor:"speed"`
}

// FadeScreen fades the screen out.
type FadeScreen struct{}

// GraphicalAction shows a character graphic, optionally mirrored.
type GraphicalAction struct {
	Action  uint8 `yaml:"action" toml:"action" cbor:"action"`
	Flipped bool  `yaml:"flipped" toml:"flipped" cbor:"flipped"`
}

// HideCharacter hides the character.
type HideCharacter struct{}

// HideMiniMap hides the mini map.
type HideMiniMap struct{}

// LoadMap loads a map. Variant is the tag the event was encoded with.
type LoadMap struct {
	Map     uint16 `yaml:"map" toml:"map" cbor:"map"`
	X       uint8  `yaml:"x" toml:"x" cbor:"x"`
	Y       uint8  `yaml:"y" toml:"y" cbor:"y"`
	Mode    uint8  `yaml:"mode" toml:"mode" cbor:"mode"`
	Variant uint8  `yaml:"variant" toml:"variant" cbor:"variant"`
}

// Move moves the character orthogonally. Dir is the raw 2 bit direction
// code of the encoding.
type Move struct {
	Dir   uint8 `yaml:"dir" toml:"dir" cbor:"dir"`
	Steps uint8 `yaml:"steps" toml:"steps" cbor:"steps"`
}

// MoveDiag moves the character diagonally, Steps holds the step counts of
// the two axes.
type MoveDiag struct {
	Dir   Diagonal `yaml:"dir" toml:"dir" cbor:"dir"`
	Steps [2]uint8 `yaml:"steps" toml:"steps" cbor:"steps"`
}

// Pause waits for a number of frames.
type Pause struct {
	Frames uint8 `yaml:"frames" toml:"frames" cbor:"frames"`
}

// ShowCharacter shows the character.
type ShowCharacter struct{}

// ShowMiniMap shows the mini map.
type ShowMiniMap struct{}

// TurnCharacter turns the character to face a direction.
type TurnCharacter struct {
	Dir Direction `yaml:"dir" toml:"dir" cbor:"dir"`
}

// UnfadeScreen fades the screen in.
type UnfadeScreen struct{}

// UnknownCmdC7 is command 0xc7 with its operands kept as is.
type UnknownCmdC7 struct {
	Args [2]uint8 `yaml:"args" toml:"args" cbor:"args"`
}

func (ClrSetEventBit) Name() string  { return "clr_set_event_bit" }
func (ConditionalJump) Name() string { return "conditional_jump" }
func (EntitySpeed) Name() string     { return "entity_speed" }
func (FadeScreen) Name() string      { return "fade_screen" }
func (GraphicalAction) Name() string { return "graphical_action" }
func (HideCharacter) Name() string   { return "hide_character" }
func (HideMiniMap) Name() string     { return "hide_mini_map" }
func (LoadMap) Name() string         { return "load_map" }
func (Move) Name() string            { return "move" }
func (MoveDiag) Name() string        { return "move_diag" }
func (Pause) Name() string           { return "pause" }
func (ShowCharacter) Name() string   { return "show_character" }
func (ShowMiniMap) Name() string     { return "show_mini_map" }
func (TurnCharacter) Name() string   { return "turn_character" }
func (UnfadeScreen) Name() string    { return "unfade_screen" }
func (UnknownCmdC7) Name() string    { return "unknown_cmd_c7" }

func (e ClrSetEventBit) String() string {
	op := "clear"
	if e.Set {
		op = "set"
	}
	return fmt.Sprintf("%s %s $%03x.%d", e.Name(), op, e.Byte, e.Bit)
}

func (e ConditionalJump) String() string {
	conditions := make([]string, len(e.Conditions))
	for i, c := range e.Conditions {
		conditions[i] = c.String()
	}
	return fmt.Sprintf("%s %s [%s], $%06x", e.Name(), e.Op, strings.Join(conditions, ", "), e.Addr)
}

func (e EntitySpeed) String() string {
	return fmt.Sprintf("%s %s", e.Name(), e.Speed)
}

func (e GraphicalAction) String() string {
	s := fmt.Sprintf("%s $%02x", e.Name(), e.Action)
	if e.Flipped {
		s += " flipped"
	}
	return s
}

func (e LoadMap) String() string {
	return fmt.Sprintf("%s $%04x, %d, %d, mode=$%02x, variant=$%02x", e.Name(), e.Map, e.X, e.Y, e.Mode, e.Variant)
}

func (e Move) String() string {
	return fmt.Sprintf("%s dir=%d, steps=%d", e.Name(), e.Dir, e.Steps)
}

func (e MoveDiag) String() string {
	return fmt.Sprintf("%s %s %dx%d", e.Name(), e.Dir, e.Steps[0], e.Steps[1])
}

func (e Pause) String() string {
	return fmt.Sprintf("%s %d", e.Name(), e.Frames)
}

func (e TurnCharacter) String() string {
	return fmt.Sprintf("%s %s", e.Name(), e.Dir)
}

func (e UnknownCmdC7) String() string {
	return fmt.Sprintf("%s $%02x, $%02x", e.Name(), e.Args[0], e.Args[1])
}

func (e FadeScreen) String() string    { return e.Name() }
func (e HideCharacter) String() string { return e.Name() }
func (e HideMiniMap) String() string   { return e.Name() }
func (e ShowCharacter) String() string { return e.Name() }
func (e ShowMiniMap) String() string   { return e.Name() }
func (e UnfadeScreen) String() string  { return e.Name() }

func (ClrSetEventBit) isEvent()  {}
func (ConditionalJump) isEvent() {}
func (EntitySpeed) isEvent()     {}
func (FadeScreen) isEvent()      {}
func (GraphicalAction) isEvent() {}
func (HideCharacter) isEvent()   {}
func (HideMiniMap) isEvent()     {}
func (LoadMap) isEvent()         {}
func (Move) isEvent()            {}
func (MoveDiag) isEvent()        {}
func (Pause) isEvent()           {}
func (ShowCharacter) isEvent()   {}
func (ShowMiniMap) isEvent()     {}
func (TurnCharacter) isEvent()   {}
func (UnfadeScreen) isEvent()    {}
func (UnknownCmdC7) isEvent()    {}
