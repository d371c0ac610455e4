// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/ff6events/internal/options"
)

// Image size constants.
const (
	// CopierHeaderSize is the size of the header that copier devices
	// prepend to an image.
	CopierHeaderSize = 512

	bankSize = 0x8000
)

// ROM is a loaded game image.
type ROM struct {
	// Data is the image without copier header.
	Data []byte
	// HasCopierHeader reports whether a copier header was removed.
	HasCopierHeader bool
}

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file named by the options.
func (l *Loader) Load(opts options.Program) (*ROM, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading rom %s: %w", opts.Input, err)
	}
	return rom, nil
}

// LoadBuffer reads a ROM image from a reader. A copier header is detected
// by the image size not being a multiple of the bank size.
func (l *Loader) LoadBuffer(reader io.Reader) (*ROM, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty rom image")
	}

	rom := &ROM{Data: data}
	switch len(data) % bankSize {
	case 0:
	case CopierHeaderSize:
		rom.Data = data[CopierHeaderSize:]
		rom.HasCopierHeader = true
	default:
		return nil, fmt.Errorf("unexpected rom image size 0x%x", len(data))
	}
	return rom, nil
}
