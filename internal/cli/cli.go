// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/ff6events/internal/export"
	"github.com/retroenv/ff6events/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: ff6events [options] <rom file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after the rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Format != "" {
		format, err := export.ParseFormat(opts.Format)
		if err != nil {
			formats := make([]string, len(export.Formats))
			for i, f := range export.Formats {
				formats[i] = string(f)
			}
			return fmt.Errorf("%w. Valid options: %s", err, strings.Join(formats, ", "))
		}
		opts.Format = string(format)
	}

	if opts.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", opts.Workers)
	}
	return nil
}

// validateOptionCombinations checks for options that only apply together.
func validateOptionCombinations(opts options.Program) error {
	if opts.Listing == "" && (opts.NoHexComments || opts.NoOffsets) {
		return errors.New("-nohexcomments and -nooffsets require a listing output set with -l")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "output directory of the exported records (default \"out\")")
	flags.StringVar(&opts.Config, "c", "", "TOML config file with output settings and script regions to scan")
	flags.StringVar(&opts.Listing, "l", "", "name of the text listing file to write, - for stdout")
	flags.StringVar(&opts.Format, "f", "", "export format: yaml, toml or cbor (default \"yaml\")")
	flags.IntVar(&opts.Workers, "workers", 0, "number of concurrent script decoders (default 8)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output event bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in listing comments")
}
