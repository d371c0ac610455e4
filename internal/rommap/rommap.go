// Package rommap contains the locations of the event related tables in a
// HiROM mapped game image and the conversion of SNES addresses to file
// offsets.
package rommap

import "fmt"

// SNES addresses of the tables.
const (
	EventTriggerPointers = 0xc40000
	NPCPointers          = 0xc41a10
	NPCData              = 0xc41d52
	LocationProperties   = 0xed8f00

	// EventScripts is the bank that event script addresses of NPC and
	// trigger records are relative to.
	EventScripts = 0xca0000

	// ROMBase is the SNES address of the first byte of the image.
	ROMBase = 0xc00000
)

// Table sizes.
const (
	// Locations is the number of locations that have properties.
	Locations = 0x19f
	// PointerEntries is the number of entries of the NPC and trigger
	// pointer tables, the last one only terminates the previous range.
	PointerEntries = 0x1a0
	// EventAddrMask masks the 18 bit event script address of a record.
	EventAddrMask = 0x3ffff
)

// SNESToFile converts a SNES address to a file offset.
func SNESToFile(addr int) (int, error) {
	if addr < ROMBase {
		return 0, fmt.Errorf("address 0x%06x is below the rom base 0x%06x", addr, ROMBase)
	}
	return addr - ROMBase, nil
}

// MustSNESToFile converts a SNES address constant to a file offset.
// It panics for addresses below the rom base.
func MustSNESToFile(addr int) int {
	offset, err := SNESToFile(addr)
	if err != nil {
		panic(err)
	}
	return offset
}

// EventToFile converts an event script address as stored in NPC and trigger
// records to a file offset.
func EventToFile(addr uint32) int {
	return EventScripts - ROMBase + int(addr&EventAddrMask)
}
