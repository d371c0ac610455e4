package location

import (
	"fmt"

	"github.com/retroenv/ff6events/internal/rommap"
)

// NPCSize is the size of an NPC record.
const NPCSize = 9

// NPC is a non player character placed on a location.
type NPC struct {
	EventAddr       uint32 `yaml:"event_addr" toml:"event_addr" cbor:"event_addr"`
	Palette         uint8  `yaml:"palette" toml:"palette" cbor:"palette"`
	SolidActionPath bool   `yaml:"solid_action_path" toml:"solid_action_path" cbor:"solid_action_path"`

	// EnableBit and EnableAddr select the NPC event bit that controls the
	// visibility of the NPC.
	EnableBit  uint8 `yaml:"enable_bit" toml:"enable_bit" cbor:"enable_bit"`
	EnableAddr uint8 `yaml:"enable_addr" toml:"enable_addr" cbor:"enable_addr"`

	X                  uint8 `yaml:"x" toml:"x" cbor:"x"`
	ShowRiderInVehicle bool  `yaml:"show_rider_in_vehicle" toml:"show_rider_in_vehicle" cbor:"show_rider_in_vehicle"`
	Y                  uint8 `yaml:"y" toml:"y" cbor:"y"`
	Speed              uint8 `yaml:"speed" toml:"speed" cbor:"speed"`
	Sprite             uint8 `yaml:"sprite" toml:"sprite" cbor:"sprite"`
	MovementType       uint8 `yaml:"movement_type" toml:"movement_type" cbor:"movement_type"`
	MapLayer           uint8 `yaml:"map_layer" toml:"map_layer" cbor:"map_layer"`
	Vehicle            uint8 `yaml:"vehicle" toml:"vehicle" cbor:"vehicle"`
	StartDirection     uint8 `yaml:"start_direction" toml:"start_direction" cbor:"start_direction"`
	TurnWhenTriggered  bool  `yaml:"turn_when_triggered" toml:"turn_when_triggered" cbor:"turn_when_triggered"`
	Unknown8Bits       uint8 `yaml:"unknown_8_bits" toml:"unknown_8_bits" cbor:"unknown_8_bits"`
}

// ParseNPC decodes an NPC record.
func ParseNPC(data []byte) (NPC, error) {
	if len(data) < NPCSize {
		return NPC{}, fmt.Errorf("npc needs %d bytes, have %d", NPCSize, len(data))
	}

	d := data
	return NPC{
		EventAddr:          readU24(d) & rommap.EventAddrMask,
		Palette:            (d[2] >> 2) & 0x7,
		SolidActionPath:    testBit(d[2], 5),
		EnableBit:          uint8((uint16(d[2])|uint16(d[3])<<8)>>6) & 0x7,
		EnableAddr:         d[3] >> 1,
		X:                  d[4] & 0x7f,
		ShowRiderInVehicle: testBit(d[4], 7),
		Y:                  d[5] & 0x3f,
		Speed:              d[5] >> 6,
		Sprite:             d[6],
		MovementType:       d[7] & 0xf,
		MapLayer:           (d[7] >> 4) & 0x3,
		Vehicle:            (d[7] >> 6) & 0x3,
		StartDirection:     d[8] & 0x3,
		TurnWhenTriggered:  testBit(d[8], 2),
		Unknown8Bits:       d[8] >> 3,
	}, nil
}

// ParseNPCs decodes consecutive NPC records. Trailing bytes that do not
// form a complete record are ignored.
func ParseNPCs(data []byte) ([]NPC, error) {
	npcs := make([]NPC, 0, len(data)/NPCSize)
	for i := 0; i+NPCSize <= len(data); i += NPCSize {
		npc, err := ParseNPC(data[i:])
		if err != nil {
			return nil, fmt.Errorf("parsing npc %d: %w", i/NPCSize, err)
		}
		npcs = append(npcs, npc)
	}
	return npcs, nil
}

func readU24(d []byte) uint32 {
	return uint32(d[0]) | uint32(d[1])<<8 | uint32(d[2])<<16
}
