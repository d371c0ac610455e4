// Package export writes decoded locations and event scripts to one file per
// record in a selectable serialization format.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/retroenv/ff6events/internal/location"
	"github.com/retroenv/ff6events/internal/scanner"
	"github.com/retroenv/retrogolib/log"
	"go.yaml.in/yaml/v3"
)

// Format is a serialization format of the exported files.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
	CBOR Format = "cbor"
)

// Formats lists all supported formats.
var Formats = []Format{YAML, TOML, CBOR}

// Sub directories of the output directory.
const (
	LocationsDir = "field"
	ScriptsDir   = "events"
)

// ParseFormat returns the format for the given name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported export format '%s'", name)
	}
	return f, nil
}

type encodeFunc func(v any) ([]byte, error)

// Exporter writes records below an output directory.
type Exporter struct {
	logger *log.Logger
	dir    string
	format Format
	encode encodeFunc
}

// New returns an exporter that writes files of the given format below dir.
func New(logger *log.Logger, dir string, format Format) (*Exporter, error) {
	encode, err := encoder(format)
	if err != nil {
		return nil, err
	}
	return &Exporter{
		logger: logger,
		dir:    dir,
		format: format,
		encode: encode,
	}, nil
}

func encoder(format Format) (encodeFunc, error) {
	switch format {
	case YAML:
		return yaml.Marshal, nil

	case TOML:
		return func(v any) ([]byte, error) {
			buf := &bytes.Buffer{}
			if err := toml.NewEncoder(buf).Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}, nil

	case CBOR:
		em, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("creating cbor encoding mode: %w", err)
		}
		return em.Marshal, nil

	default:
		return nil, fmt.Errorf("unsupported export format '%s'", format)
	}
}

// Locations writes every location to field/<index>.<ext>.
func (e *Exporter) Locations(locations []location.Location) error {
	for _, loc := range locations {
		name := fmt.Sprintf("%03x", loc.Index)
		if err := e.write(LocationsDir, name, loc); err != nil {
			return fmt.Errorf("exporting location 0x%03x: %w", loc.Index, err)
		}
	}

	e.logger.Debug("Locations exported",
		log.Int("count", len(locations)),
		log.String("dir", filepath.Join(e.dir, LocationsDir)))
	return nil
}

// Scripts writes every script to <subDir>/<start offset>.<ext>.
func (e *Exporter) Scripts(subDir string, entries []scanner.Entry) error {
	for _, entry := range entries {
		name := fmt.Sprintf("%06x", entry.Start)
		if err := e.write(subDir, name, NewScriptDocument(entry)); err != nil {
			return fmt.Errorf("exporting script 0x%06x: %w", entry.Start, err)
		}
	}

	e.logger.Debug("Scripts exported",
		log.Int("count", len(entries)),
		log.String("dir", filepath.Join(e.dir, subDir)))
	return nil
}

func (e *Exporter) write(subDir, name string, v any) error {
	data, err := e.encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", e.format, err)
	}

	dir := filepath.Join(e.dir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, name+"."+string(e.format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file '%s': %w", path, err)
	}
	return nil
}
