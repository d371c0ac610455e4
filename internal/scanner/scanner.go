// Package scanner finds event scripts in an unannotated byte stream by
// trying the script dialects in a fixed priority order.
package scanner

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/retroenv/ff6events/internal/bytecode"
	"github.com/retroenv/ff6events/internal/field"
	"github.com/retroenv/ff6events/internal/worldchar"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Scanner decodes event scripts from byte streams.
type Scanner struct {
	logger *log.Logger
}

// New creates a new scanner.
func New(logger *log.Logger) *Scanner {
	return &Scanner{
		logger: logger,
	}
}

// Scan consumes data from the start, one script after the other. At every
// offset the world character dialect is tried first and the field dialect
// second, the first complete script wins. Scanning stops at the first
// offset where both dialects fail, the entries found up to that point are
// returned together with the failure.
//
// Entries are keyed by the offset directly behind their terminator.
func (s *Scanner) Scan(data []byte) *Result {
	return s.ScanFrom(data, 0)
}

// ScanFrom works like Scan but starts at offset start of data. All offsets
// of the result are positions within data.
func (s *Scanner) ScanFrom(data []byte, start int) *Result {
	result := newResult()

	offset := max(start, 0)
	for offset < len(data) {
		entry, err := decodeAt(data, offset)
		if err != nil {
			result.Remaining = len(data) - offset
			result.Err = err
			s.logger.Debug("Scan stopped",
				log.Hex("offset", offset),
				log.Int("remaining", result.Remaining),
				log.Err(err))
			break
		}

		entry.Offset = entry.End
		result.add(entry)
		s.logger.Debug("Script found",
			log.Stringer("dialect", entry.Dialect),
			log.Hex("start", entry.Start),
			log.Hex("end", entry.End),
			log.Int("events", entry.Len()))

		offset = entry.End
	}

	return result
}

// Failure is an entry point that could not be decoded.
type Failure struct {
	Offset int
	Err    *DialectMismatchError
}

// EntryPointResult is the outcome of decoding known script entry points.
// Entries and failures are sorted by offset.
type EntryPointResult struct {
	Entries  []Entry
	Failures []Failure
}

// ScanEntryPoints decodes a script at each of the given offsets. The offsets
// are independent of each other and are decoded concurrently by up to
// workers goroutines. Entries are keyed by their start offset. Offsets
// outside of data are reported as failures.
func (s *Scanner) ScanEntryPoints(ctx context.Context, data []byte, offsets []int, workers int) (*EntryPointResult, error) {
	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		result EntryPointResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, offset := range offsets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry, err := decodeAt(data, offset)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, Failure{Offset: offset, Err: err})
				return nil
			}
			entry.Offset = entry.Start
			result.Entries = append(result.Entries, entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning entry points: %w", err)
	}

	slices.SortFunc(result.Entries, func(a, b Entry) int { return a.Start - b.Start })
	slices.SortFunc(result.Failures, func(a, b Failure) int { return a.Offset - b.Offset })

	s.logger.Debug("Entry points scanned",
		log.Int("scripts", len(result.Entries)),
		log.Int("failures", len(result.Failures)))
	return &result, nil
}

// decodeAt tries all dialects in priority order at offset.
func decodeAt(data []byte, offset int) (Entry, *DialectMismatchError) {
	if offset < 0 || offset > len(data) {
		err := fmt.Errorf("%w: offset 0x%06x outside of %d bytes", bytecode.ErrTruncated, offset, len(data))
		return Entry{}, &DialectMismatchError{Offset: offset, WorldChar: err, Field: err}
	}

	c := bytecode.NewCursor(data, offset)
	worldScript, worldErr := worldchar.ParseScript(c)
	if worldErr == nil {
		return Entry{
			Start:     offset,
			End:       c.Offset(),
			Dialect:   WorldChar,
			WorldChar: worldScript,
		}, nil
	}

	c = bytecode.NewCursor(data, offset)
	fieldScript, fieldErr := field.ParseScript(c)
	if fieldErr == nil {
		return Entry{
			Start:   offset,
			End:     c.Offset(),
			Dialect: Field,
			Field:   fieldScript,
		}, nil
	}

	return Entry{}, &DialectMismatchError{
		Offset:    offset,
		WorldChar: worldErr,
		Field:     fieldErr,
	}
}
