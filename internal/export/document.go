package export

import (
	"reflect"

	"github.com/retroenv/ff6events/internal/scanner"
)

// ScriptDocument is the exported form of a scanned script.
type ScriptDocument struct {
	Dialect string          `yaml:"dialect" toml:"dialect" cbor:"dialect"`
	Start   int             `yaml:"start" toml:"start" cbor:"start"`
	End     int             `yaml:"end" toml:"end" cbor:"end"`
	Events  []EventDocument `yaml:"events" toml:"events" cbor:"events"`
}

// EventDocument is the exported form of an event. Args holds the event
// operands and is omitted for events without operands.
type EventDocument struct {
	Op   string `yaml:"op" toml:"op" cbor:"op"`
	Args any    `yaml:"args,omitempty" toml:"args,omitempty" cbor:"args,omitempty"`
}

// NewScriptDocument converts a scanned script to its exported form.
func NewScriptDocument(entry scanner.Entry) ScriptDocument {
	doc := ScriptDocument{
		Dialect: entry.Dialect.String(),
		Start:   entry.Start,
		End:     entry.End,
	}

	for _, ev := range entry.Events() {
		event := EventDocument{
			Op: ev.Name(),
		}
		if reflect.TypeOf(ev).NumField() > 0 {
			event.Args = ev
		}
		doc.Events = append(doc.Events, event)
	}

	return doc
}
