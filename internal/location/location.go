// Package location decodes the location records of the game image: the
// location properties and the NPCs and event triggers placed on each
// location.
package location

import (
	"fmt"
	"slices"

	"github.com/retroenv/ff6events/internal/ptrtable"
	"github.com/retroenv/ff6events/internal/rommap"
	"github.com/retroenv/retrogolib/set"
)

// Location is a map with its settings and the objects that can start event
// scripts.
type Location struct {
	Index      int        `yaml:"index" toml:"index" cbor:"index"`
	Properties Properties `yaml:"properties" toml:"properties" cbor:"properties"`
	NPCs       []NPC      `yaml:"npcs" toml:"npcs" cbor:"npcs"`
	Triggers   []Trigger  `yaml:"triggers" toml:"triggers" cbor:"triggers"`
}

// Parse decodes all locations of a game image without copier header.
func Parse(rom []byte) ([]Location, error) {
	npcTable, err := pointerTable(rom, rommap.NPCPointers)
	if err != nil {
		return nil, fmt.Errorf("reading npc pointer table: %w", err)
	}
	triggerTable, err := pointerTable(rom, rommap.EventTriggerPointers)
	if err != nil {
		return nil, fmt.Errorf("reading trigger pointer table: %w", err)
	}

	propertiesBase := rommap.MustSNESToFile(rommap.LocationProperties)

	locations := make([]Location, 0, rommap.Locations)
	for i := range rommap.Locations {
		loc, err := parseLocation(rom, i, propertiesBase, npcTable.Entries[i], triggerTable.Entries[i])
		if err != nil {
			return nil, fmt.Errorf("parsing location 0x%03x: %w", i, err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func parseLocation(rom []byte, index, propertiesBase int, npcEntry, triggerEntry ptrtable.Entry) (Location, error) {
	propertiesEntry := ptrtable.Entry{
		Addr: propertiesBase + index*PropertiesSize,
		Len:  PropertiesSize,
	}
	data, err := propertiesEntry.Slice(rom)
	if err != nil {
		return Location{}, fmt.Errorf("reading properties: %w", err)
	}
	properties, err := ParseProperties(data)
	if err != nil {
		return Location{}, err
	}

	data, err = npcEntry.Slice(rom)
	if err != nil {
		return Location{}, fmt.Errorf("reading npcs: %w", err)
	}
	npcs, err := ParseNPCs(data)
	if err != nil {
		return Location{}, err
	}

	data, err = triggerEntry.Slice(rom)
	if err != nil {
		return Location{}, fmt.Errorf("reading triggers: %w", err)
	}
	triggers, err := ParseTriggers(data)
	if err != nil {
		return Location{}, err
	}

	return Location{
		Index:      index,
		Properties: properties,
		NPCs:       npcs,
		Triggers:   triggers,
	}, nil
}

func pointerTable(rom []byte, addr int) (*ptrtable.Table, error) {
	offset := rommap.MustSNESToFile(addr)
	if offset > len(rom) {
		return nil, fmt.Errorf("table offset 0x%06x is outside of the rom size 0x%06x", offset, len(rom))
	}
	return ptrtable.New(rom[offset:], rommap.PointerEntries, offset)
}

// EntryPoints returns the sorted and unique file offsets of all event
// scripts that NPCs and triggers of the locations refer to.
func EntryPoints(locations []Location) []int {
	unique := set.New[int]()
	for _, loc := range locations {
		for _, npc := range loc.NPCs {
			unique.Add(rommap.EventToFile(npc.EventAddr))
		}
		for _, trigger := range loc.Triggers {
			unique.Add(rommap.EventToFile(trigger.EventAddr))
		}
	}

	offsets := make([]int, 0, len(unique))
	for offset := range unique {
		offsets = append(offsets, offset)
	}
	slices.Sort(offsets)
	return offsets
}
