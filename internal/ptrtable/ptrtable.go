// Package ptrtable decodes tables of 16 bit little-endian pointers that
// delimit consecutive variable sized records.
package ptrtable

import "fmt"

// Entry is a record range of a pointer table.
type Entry struct {
	Addr int
	Len  int
}

// Slice returns the bytes of the entry.
func (e Entry) Slice(data []byte) ([]byte, error) {
	end := e.Addr + e.Len
	if e.Addr < 0 || end > len(data) {
		return nil, fmt.Errorf("entry 0x%06x+0x%x needs at least %d bytes, have %d", e.Addr, e.Len, end, len(data))
	}
	return data[e.Addr:end], nil
}

// Table is a decoded pointer table.
type Table struct {
	Entries []Entry
}

// New decodes a table of the given number of pointers from data. Each
// pointer is relative to offset. The last pointer only sizes the range of
// the previous one, the table therefore has one entry less than pointers.
func New(data []byte, pointers, offset int) (*Table, error) {
	if pointers < 1 {
		return nil, fmt.Errorf("invalid pointer count %d", pointers)
	}
	if len(data) < pointers*2 {
		return nil, fmt.Errorf("pointer table needs %d bytes, have %d", pointers*2, len(data))
	}

	table := &Table{
		Entries: make([]Entry, 0, pointers-1),
	}
	for i := range pointers - 1 {
		addr := decodeU16(data[i*2:])
		next := decodeU16(data[(i+1)*2:])
		if next < addr {
			return nil, fmt.Errorf("pointer %d 0x%04x is below previous pointer 0x%04x", i+1, next, addr)
		}

		table.Entries = append(table.Entries, Entry{
			Addr: offset + addr,
			Len:  next - addr,
		})
	}

	return table, nil
}

func decodeU16(data []byte) int {
	return int(data[0]) | int(data[1])<<8
}
