// Package listing writes a human readable text listing of scanned event
// scripts.
package listing

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/ff6events/internal/bytecode"
	"github.com/retroenv/ff6events/internal/field"
	"github.com/retroenv/ff6events/internal/scanner"
	"github.com/retroenv/ff6events/internal/worldchar"
)

const dataBytesPerLine = 16

// Options of the writer.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// Writer writes script listings.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteTitle writes a comment line that introduces a group of scripts.
func (w Writer) WriteTitle(title string) error {
	if _, err := fmt.Fprintf(w.writer, "; %s\n\n", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	return nil
}

// WriteScripts writes all entries, data is the stream that the entries
// were scanned from.
func (w Writer) WriteScripts(data []byte, entries []scanner.Entry) error {
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if err := w.writeScript(data, entry); err != nil {
			return fmt.Errorf("writing script 0x%06x: %w", entry.Start, err)
		}
	}
	return nil
}

// WriteRemaining writes the bytes of a stream that could not be decoded,
// starting at offset.
func (w Writer) WriteRemaining(data []byte, offset int) error {
	if offset >= len(data) {
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "\n; %d bytes not decoded\n", len(data)-offset); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	lineOffset := offset
	for chunk := range slices.Chunk(data[offset:], dataBytesPerLine) {
		if err := w.writeDataLine(chunk, lineOffset); err != nil {
			return fmt.Errorf("writing remaining data: %w", err)
		}
		lineOffset += len(chunk)
	}
	return nil
}

// writeDataLine writes the raw bytes of one line as a .byte directive.
func (w Writer) writeDataLine(chunk []byte, offset int) error {
	values := make([]string, len(chunk))
	for i, b := range chunk {
		values[i] = fmt.Sprintf("$%02x", b)
	}
	line := ".byte " + strings.Join(values, ", ")

	var err error
	if w.options.OffsetComments {
		_, err = fmt.Fprintf(w.writer, "  %-64s ; $%06X\n", line, offset)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %s\n", line)
	}
	if err != nil {
		return fmt.Errorf("writing data line: %w", err)
	}
	return nil
}

func (w Writer) writeScript(data []byte, entry scanner.Entry) error {
	if _, err := fmt.Fprintf(w.writer, "script_%06x: ; %s, %d events\n", entry.Start, entry.Dialect, entry.Len()); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}

	offsets, err := eventOffsets(data, entry)
	if err != nil {
		return err
	}

	for i, ev := range entry.Events() {
		if err := w.writeLine(data, ev.String(), offsets[i], offsets[i+1]); err != nil {
			return err
		}
	}

	// the terminator is the last byte of the script
	return w.writeLine(data, "end", entry.End-1, entry.End)
}

func (w Writer) writeLine(data []byte, code string, start, end int) error {
	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%06X", start))
	}
	if w.options.HexComments {
		hexBytes := make([]string, 0, end-start)
		for _, b := range data[start:end] {
			hexBytes = append(hexBytes, fmt.Sprintf("%02x", b))
		}
		comments = append(comments, strings.Join(hexBytes, " "))
	}

	var err error
	if len(comments) == 0 {
		_, err = fmt.Fprintf(w.writer, "  %s\n", code)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-40s ; %s\n", code, strings.Join(comments, "  "))
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// eventOffsets decodes the script again to find the start offset of every
// event. The returned slice has one more element than the script has
// events, the last one is the offset of the terminator.
func eventOffsets(data []byte, entry scanner.Entry) ([]int, error) {
	c := bytecode.NewCursor(data, entry.Start)
	count := entry.Len()
	offsets := make([]int, 0, count+1)

	for range count {
		offsets = append(offsets, c.Offset())

		var err error
		if entry.Dialect == scanner.Field {
			_, err = field.Decode(c)
		} else {
			_, err = worldchar.Decode(c)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding event at 0x%06x: %w", offsets[len(offsets)-1], err)
		}
	}

	offsets = append(offsets, c.Offset())
	return offsets, nil
}
