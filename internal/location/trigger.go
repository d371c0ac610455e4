package location

import "fmt"

// TriggerSize is the size of an event trigger record.
const TriggerSize = 5

// Trigger starts an event script when the party steps on a tile.
type Trigger struct {
	X         uint8  `yaml:"x" toml:"x" cbor:"x"`
	Y         uint8  `yaml:"y" toml:"y" cbor:"y"`
	EventAddr uint32 `yaml:"event_addr" toml:"event_addr" cbor:"event_addr"`
}

// ParseTrigger decodes an event trigger record.
func ParseTrigger(data []byte) (Trigger, error) {
	if len(data) < TriggerSize {
		return Trigger{}, fmt.Errorf("trigger needs %d bytes, have %d", TriggerSize, len(data))
	}
	return Trigger{
		X:         data[0],
		Y:         data[1],
		EventAddr: readU24(data[2:]),
	}, nil
}

// ParseTriggers decodes consecutive event trigger records.
func ParseTriggers(data []byte) ([]Trigger, error) {
	triggers := make([]Trigger, 0, len(data)/TriggerSize)
	for i := 0; i+TriggerSize <= len(data); i += TriggerSize {
		trigger, err := ParseTrigger(data[i:])
		if err != nil {
			return nil, fmt.Errorf("parsing trigger %d: %w", i/TriggerSize, err)
		}
		triggers = append(triggers, trigger)
	}
	return triggers, nil
}
