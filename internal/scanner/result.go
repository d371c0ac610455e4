package scanner

import (
	"fmt"
	"strings"

	"github.com/retroenv/ff6events/internal/field"
	"github.com/retroenv/ff6events/internal/worldchar"
)

// Dialect identifies the event script dialect that decoded a script.
type Dialect uint8

// Dialects in scan priority order.
const (
	WorldChar Dialect = iota
	Field
)

func (d Dialect) String() string {
	switch d {
	case WorldChar:
		return "world_char"
	case Field:
		return "field"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// MarshalText encodes the dialect by name for the exporters.
func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Entry is a script found by the scanner. Exactly one of WorldChar and
// Field is set, matching Dialect.
type Entry struct {
	// Offset is the key of the entry in the scan result. For sequential
	// scans it is the offset directly behind the script terminator.
	Offset int
	// Start and End delimit the script bytes, End is exclusive.
	Start int
	End   int

	Dialect   Dialect
	WorldChar *worldchar.Script
	Field     *field.Script
}

// Len returns the number of decoded events of the script.
func (e Entry) Len() int {
	if e.Dialect == Field {
		return len(e.Field.Events)
	}
	return len(e.WorldChar.Events)
}

// Event is the dialect independent view of a decoded event.
type Event interface {
	fmt.Stringer
	Name() string
}

// Events returns the decoded events of the script.
func (e Entry) Events() []Event {
	events := make([]Event, 0, e.Len())
	if e.Dialect == Field {
		for _, ev := range e.Field.Events {
			events = append(events, ev)
		}
		return events
	}
	for _, ev := range e.WorldChar.Events {
		events = append(events, ev)
	}
	return events
}

// DialectMismatchError is returned when no dialect decodes a complete
// script at Offset. It keeps the failure of every attempted dialect.
type DialectMismatchError struct {
	Offset    int
	WorldChar error
	Field     error
}

func (e *DialectMismatchError) Error() string {
	return fmt.Sprintf("no event script dialect matches at offset 0x%06x: %s %v; %s %v",
		e.Offset, WorldChar, e.WorldChar, Field, e.Field)
}

// Unwrap returns the errors of all attempted dialects.
func (e *DialectMismatchError) Unwrap() []error {
	return []error{e.WorldChar, e.Field}
}

// Result is the outcome of a sequential scan. Entries are ordered by
// increasing offset.
type Result struct {
	Entries []Entry

	// Remaining is the number of bytes that were not consumed.
	Remaining int
	// Err describes why the scan stopped early, it is nil if the whole
	// stream was consumed.
	Err *DialectMismatchError

	index map[int]int
}

func newResult() *Result {
	return &Result{
		index: map[int]int{},
	}
}

func (r *Result) add(entry Entry) {
	r.index[entry.Offset] = len(r.Entries)
	r.Entries = append(r.Entries, entry)
}

// Get returns the entry recorded for the given offset key.
func (r *Result) Get(offset int) (Entry, bool) {
	i, ok := r.index[offset]
	if !ok {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// Complete returns whether the whole stream was consumed.
func (r *Result) Complete() bool {
	return r.Remaining == 0
}

// Report returns a human readable description of the unconsumed bytes and
// the failure of each dialect at the stopping point. It is empty for a
// complete scan.
func (r *Result) Report() string {
	if r.Complete() {
		return ""
	}

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%d bytes left.\n", r.Remaining)
	if r.Err == nil {
		return buf.String()
	}
	fmt.Fprintf(buf, "Errors: %s %v\n", WorldChar, r.Err.WorldChar)
	fmt.Fprintf(buf, "%s %v\n", Field, r.Err.Field)
	return buf.String()
}
