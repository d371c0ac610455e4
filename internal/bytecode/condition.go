package bytecode

import "fmt"

// Condition names one persistent event bit and the state it is expected to
// be in. It is packed into a 16 bit operand:
//
//	bit 15:    expected state, set or clear
//	bits 3-14: event byte index
//	bits 0-2:  bit index within the byte
type Condition struct {
	IsSet bool   `yaml:"is_set" toml:"is_set" cbor:"is_set"`
	Byte  uint16 `yaml:"byte" toml:"byte" cbor:"byte"`
	Bit   uint8  `yaml:"bit" toml:"bit" cbor:"bit"`
}

// NewCondition unpacks a condition operand. Every 16 bit value is valid.
func NewCondition(value uint16) Condition {
	return Condition{
		IsSet: value>>15 == 1,
		Byte:  (value >> 3) & 0xfff,
		Bit:   uint8(value & 0x7),
	}
}

// ReadCondition consumes a little-endian condition operand.
func ReadCondition(c *Cursor) (Condition, error) {
	v, err := c.ReadU16()
	if err != nil {
		return Condition{}, err
	}
	return NewCondition(v), nil
}

func (c Condition) String() string {
	state := "clear"
	if c.IsSet {
		state = "set"
	}
	return fmt.Sprintf("$%03x.%d %s", c.Byte, c.Bit, state)
}
