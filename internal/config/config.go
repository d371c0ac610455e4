// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/ff6events/internal/export"
	"github.com/retroenv/ff6events/internal/options"
	"github.com/retroenv/ff6events/internal/rommap"
	"github.com/retroenv/retrogolib/log"
)

// Default values of the configuration.
const (
	DefaultOutput  = "out"
	DefaultFormat  = export.YAML
	DefaultWorkers = 8
)

// Config is the configuration of a decoding run.
type Config struct {
	Output  string        `toml:"output"`
	Format  export.Format `toml:"format"`
	Workers int           `toml:"workers"`
	Regions []Region      `toml:"region"`
}

// Region is a range of SNES addresses that contains consecutive event
// scripts. End is exclusive.
type Region struct {
	Name  string `toml:"name"`
	Start int    `toml:"start"`
	End   int    `toml:"end"`
}

// FileRange returns the file offsets of the region.
func (r Region) FileRange() (int, int, error) {
	start, err := rommap.SNESToFile(r.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("region '%s' start: %w", r.Name, err)
	}
	end, err := rommap.SNESToFile(r.End)
	if err != nil {
		return 0, 0, fmt.Errorf("region '%s' end: %w", r.Name, err)
	}
	return start, end, nil
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Output:  DefaultOutput,
		Format:  DefaultFormat,
		Workers: DefaultWorkers,
	}
}

// Load reads a TOML config file. Values missing in the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config file '%s': %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("unknown keys in config file '%s': %s", path, strings.Join(keys, ", "))
	}

	format, err := export.ParseFormat(string(cfg.Format))
	if err != nil {
		return Config{}, fmt.Errorf("validating config file '%s': %w", path, err)
	}
	cfg.Format = format

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config file '%s': %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if _, err := export.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}

	names := map[string]struct{}{}
	for _, region := range c.Regions {
		if region.Name == "" {
			return fmt.Errorf("region 0x%06x-0x%06x has no name", region.Start, region.End)
		}
		if strings.ContainsAny(region.Name, `/\`) || region.Name == "." || region.Name == ".." {
			return fmt.Errorf("region name '%s' is not a valid directory name", region.Name)
		}
		if _, ok := names[region.Name]; ok {
			return fmt.Errorf("duplicate region name '%s'", region.Name)
		}
		names[region.Name] = struct{}{}

		if _, _, err := region.FileRange(); err != nil {
			return err
		}
		if region.End <= region.Start {
			return fmt.Errorf("region '%s' end 0x%06x is not after start 0x%06x", region.Name, region.End, region.Start)
		}
	}
	return nil
}

// Resolve loads the config file named by the options, or the defaults if
// none is given, and applies the option values that were set.
func Resolve(opts options.Program) (Config, error) {
	cfg := Default()
	if opts.Config != "" {
		var err error
		cfg, err = Load(opts.Config)
		if err != nil {
			return Config{}, err
		}
	}

	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Format != "" {
		format, err := export.ParseFormat(opts.Format)
		if err != nil {
			return Config{}, err
		}
		cfg.Format = format
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	return cfg, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
