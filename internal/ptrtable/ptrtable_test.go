package ptrtable

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	data := []byte{0x02, 0x00, 0x04, 0x00, 0x04, 0x01, 0x00, 0x20}

	table, err := New(data, 4, 0x12345000)
	assert.NoError(t, err)

	expected := []Entry{
		{Addr: 0x12345002, Len: 2},
		{Addr: 0x12345004, Len: 0x100},
		{Addr: 0x12345104, Len: 0x1efc},
	}
	assert.Equal(t, expected, table.Entries)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		pointers int
		err      string
	}{
		{name: "no pointers", data: []byte{0x00, 0x00}, pointers: 0, err: "invalid pointer count"},
		{name: "short data", data: []byte{0x00, 0x00, 0x01}, pointers: 2, err: "needs 4 bytes, have 3"},
		{name: "decreasing", data: []byte{0x04, 0x00, 0x02, 0x00}, pointers: 2, err: "below previous pointer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data, tt.pointers, 0)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestNew_SinglePointer(t *testing.T) {
	table, err := New([]byte{0x10, 0x00}, 1, 0)
	assert.NoError(t, err)
	assert.Len(t, table.Entries, 0)
}

func TestEntrySlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5}

	b, err := Entry{Addr: 2, Len: 3}.Slice(data)
	assert.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, b)

	b, err = Entry{Addr: 6, Len: 0}.Slice(data)
	assert.NoError(t, err)
	assert.Len(t, b, 0)

	_, err = Entry{Addr: 4, Len: 3}.Slice(data)
	assert.ErrorContains(t, err, "needs at least 7 bytes, have 6")
}
