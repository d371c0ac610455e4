// Package main implements the main entry point for a Final Fantasy VI event script decoder
package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/retroenv/ff6events/internal/cli"
	"github.com/retroenv/ff6events/internal/config"
	"github.com/retroenv/ff6events/internal/options"
	"github.com/retroenv/ff6events/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	cfg, err := config.Resolve(opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	p := pipeline.New(logger)
	if _, err := p.Execute(ctx, opts, cfg); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Decoding failed", log.Err(err))
		os.Exit(1)
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	logger.Info("ff6events", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
