// Package pipeline orchestrates the decoding workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/ff6events/internal/config"
	"github.com/retroenv/ff6events/internal/export"
	"github.com/retroenv/ff6events/internal/listing"
	"github.com/retroenv/ff6events/internal/loader"
	"github.com/retroenv/ff6events/internal/location"
	"github.com/retroenv/ff6events/internal/options"
	"github.com/retroenv/ff6events/internal/scanner"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete decoding workflow.
type Pipeline struct {
	logger  *log.Logger
	loader  *loader.Loader
	scanner *scanner.Scanner
	stdout  io.Writer
	create  func(name string) (io.WriteCloser, error)
}

// Summary describes the outcome of a pipeline run.
type Summary struct {
	Locations   int
	Scripts     int
	Failures    []scanner.Failure
	EntryPoints *scanner.EntryPointResult
	Regions     []RegionResult
}

// RegionResult is the sequential scan result of a configured region.
type RegionResult struct {
	Region config.Region
	Start  int
	End    int
	Result *scanner.Result
}

// New creates a new decoding pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:  logger,
		loader:  loader.New(),
		scanner: scanner.New(logger),
		stdout:  os.Stdout,
		create:  createFile,
	}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Execute runs the complete decoding pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, cfg config.Config) (*Summary, error) {
	rom, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	if !opts.Quiet {
		p.logger.Info("Processing ROM",
			log.String("file", opts.Input),
			log.Int("size", len(rom.Data)),
			log.String("format", string(cfg.Format)),
		)
	}
	if rom.HasCopierHeader {
		p.logger.Debug("Copier header removed")
	}

	return p.ExecuteWithROM(ctx, rom.Data, opts, cfg)
}

// ExecuteWithROM runs the decoding pipeline with a pre-loaded ROM image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program, cfg config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	locations, err := location.Parse(rom)
	if err != nil {
		return nil, fmt.Errorf("parsing locations: %w", err)
	}

	entryPoints := location.EntryPoints(locations)
	p.logger.Debug("Locations parsed",
		log.Int("locations", len(locations)),
		log.Int("entry_points", len(entryPoints)))

	entryResult, err := p.scanner.ScanEntryPoints(ctx, rom, entryPoints, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("decoding entry points: %w", err)
	}
	for _, failure := range entryResult.Failures {
		p.logger.Warn("Event script could not be decoded",
			log.Hex("offset", failure.Offset),
			log.Err(failure.Err))
	}

	regions, err := p.scanRegions(ctx, rom, cfg.Regions)
	if err != nil {
		return nil, err
	}

	if err := p.export(cfg, locations, entryResult, regions); err != nil {
		return nil, err
	}

	if opts.Listing != "" {
		if err := p.writeListing(opts, rom, entryResult, regions); err != nil {
			return nil, fmt.Errorf("writing listing: %w", err)
		}
	}

	summary := &Summary{
		Locations:   len(locations),
		Scripts:     len(entryResult.Entries),
		Failures:    entryResult.Failures,
		EntryPoints: entryResult,
		Regions:     regions,
	}
	for _, region := range regions {
		summary.Scripts += len(region.Result.Entries)
	}

	if !opts.Quiet {
		p.logger.Info("Decoding finished",
			log.Int("locations", summary.Locations),
			log.Int("scripts", summary.Scripts),
			log.Int("failures", len(summary.Failures)),
			log.String("output", cfg.Output),
		)
	}
	return summary, nil
}

// scanRegions scans every configured region sequentially.
func (p *Pipeline) scanRegions(ctx context.Context, rom []byte, regions []config.Region) ([]RegionResult, error) {
	results := make([]RegionResult, 0, len(regions))

	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning regions: %w", err)
		}

		start, end, err := region.FileRange()
		if err != nil {
			return nil, err
		}
		if end > len(rom) {
			return nil, fmt.Errorf("region '%s' ends at 0x%06x outside of the rom size 0x%06x", region.Name, end, len(rom))
		}

		result := p.scanner.ScanFrom(rom[:end], start)
		if !result.Complete() {
			p.logger.Warn("Region not fully decoded",
				log.String("region", region.Name),
				log.Int("remaining", result.Remaining),
				log.Err(result.Err))
		}

		results = append(results, RegionResult{
			Region: region,
			Start:  start,
			End:    end,
			Result: result,
		})
	}

	return results, nil
}

func (p *Pipeline) export(cfg config.Config, locations []location.Location,
	entryResult *scanner.EntryPointResult, regions []RegionResult) error {

	exporter, err := export.New(p.logger, cfg.Output, cfg.Format)
	if err != nil {
		return fmt.Errorf("creating exporter: %w", err)
	}

	if err := exporter.Locations(locations); err != nil {
		return fmt.Errorf("exporting locations: %w", err)
	}
	if err := exporter.Scripts(export.ScriptsDir, entryResult.Entries); err != nil {
		return fmt.Errorf("exporting scripts: %w", err)
	}

	for _, region := range regions {
		dir := filepath.Join("regions", region.Region.Name)
		if err := exporter.Scripts(dir, region.Result.Entries); err != nil {
			return fmt.Errorf("exporting region '%s': %w", region.Region.Name, err)
		}
	}
	return nil
}

func (p *Pipeline) writeListing(opts options.Program, rom []byte,
	entryResult *scanner.EntryPointResult, regions []RegionResult) (err error) {

	writer := p.stdout
	if opts.Listing != "-" {
		file, createErr := p.create(opts.Listing)
		if createErr != nil {
			return fmt.Errorf("creating listing file %s: %w", opts.Listing, createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing listing file %s: %w", opts.Listing, closeErr)
			}
		}()
		writer = file
	}

	w := listing.New(writer, listing.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	})

	if err := w.WriteTitle("entry points"); err != nil {
		return err
	}
	if err := w.WriteScripts(rom, entryResult.Entries); err != nil {
		return err
	}

	for _, region := range regions {
		title := fmt.Sprintf("region %s $%06x-$%06x", region.Region.Name, region.Region.Start, region.Region.End)
		if _, err := fmt.Fprintln(writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		if err := w.WriteTitle(title); err != nil {
			return err
		}
		if err := w.WriteScripts(rom, region.Result.Entries); err != nil {
			return err
		}
		if err := w.WriteRemaining(rom[:region.End], region.End-region.Result.Remaining); err != nil {
			return err
		}
	}

	return nil
}
