// Command pdfaconvert is the CLI entrypoint for the PDF/A converter.
//
// It parses flags, loads the converter properties, and either runs the
// converter check (--check) or converts the input file or directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/pdfaconvert/internal/check"
	"github.com/backmassage/pdfaconvert/internal/config"
	"github.com/backmassage/pdfaconvert/internal/convert"
	"github.com/backmassage/pdfaconvert/internal/display"
	"github.com/backmassage/pdfaconvert/internal/logging"
	"github.com/backmassage/pdfaconvert/internal/pipeline"
	"github.com/backmassage/pdfaconvert/internal/process"
)

// version is injected at build time via -ldflags "-X main.version=...".
// When empty, the version bundled in the config package is used.
var version = ""

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	var opts cliOptions
	var parsed bool

	cmd := newRootCmd(&cfg, &opts, &parsed)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "pdfaconvert: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return 1
	}
	if !parsed {
		return 0 // --help
	}

	if opts.showVersion {
		v := config.Version(version)
		if v == "" {
			fmt.Fprintln(stderr, "pdfaconvert: version unknown")
			return 1
		}
		fmt.Fprintf(stdout, "Version: %s\n", v)
		return 0
	}

	propsWarning, err := config.Load(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "pdfaconvert: %v\n", err)
		return 1
	}
	cfg.ColorMode = opts.colorMode()
	cfg.Input = config.NormalizeDirArg(cfg.Input)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "pdfaconvert: %v\n", err)
		if errors.Is(err, config.ErrMissingInput) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "pdfaconvert: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()
	if propsWarning != nil {
		log.Warn("%v", propsWarning)
	}

	// Phase 3: Signal handling. SIGINT/SIGTERM kills the running converter
	// and stops the batch before the next file.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := &process.Exec{}
	if cfg.Verbose {
		runner.Tee = stdout
	}

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, runner, log) {
			return 1
		}
		return 0
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		log.Error("Input not found: %s", cfg.Input)
		return 1
	}

	log.Info("=== pdfaconvert v%s ===", config.Version(version))
	log.Info("In:  %s", cfg.Input)
	log.Info("Properties: %s", cfg.PropertiesSource)
	if cfg.DeleteConverted {
		log.Warn("Generated PDFs will be deleted after inspection")
	}
	for _, err := range check.CheckDeps(&cfg) {
		log.Warn("%v", err)
	}

	conv, err := convert.New(&cfg, cfg.SubDir, log, convert.WithRunner(runner))
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	fmt.Fprintln(stdout)

	// Phase 4: Run the batch. Per-file failures do not change the exit status.
	results, stats, err := pipeline.Run(ctx, cfg.Input, conv, pipeline.Options{DeleteAfter: cfg.DeleteConverted}, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	pipeline.PrintTable(stdout, results)

	if cfg.ReportFile != "" {
		report := pipeline.BuildReport(cfg.Input, conv.OutputDir(), results, stats)
		if err := pipeline.WriteReport(cfg.ReportFile, report); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Info("Report written to %s (run %s)", cfg.ReportFile, report.RunID)
	}
	return 0
}
