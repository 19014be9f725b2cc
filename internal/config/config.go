// Package config holds runtime configuration: converter locations and the
// output directory loaded from properties, plus the per-run settings that
// come from the command line.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ErrMissingInput is returned by [Config.Validate] when no input was given.
var ErrMissingInput = errors.New("missing required option: i")

// PDF/A conformance levels accepted by pdfaPilot's --level switch.
var pdfaLevels = map[string]bool{
	"1a": true, "1b": true,
	"2a": true, "2b": true, "2u": true,
	"3a": true, "3b": true, "3u": true,
}

// Config holds all runtime settings. [DefaultConfig] supplies the base,
// [Config.ApplyProperties] overlays the loaded properties and the CLI sets
// the run fields. It is read-only once [Config.Validate] has passed.
type Config struct {
	// Run settings (CLI).
	Input           string // -i: file or directory.
	SubDir          string // -o: sub-directory of OutputDir for this run.
	DeleteConverted bool   // Remove each PDF after it has been inspected.
	ReportFile      string // Optional YAML run report.
	CheckOnly       bool   // Run --check diagnostics and exit.

	// Converter installations (properties).
	UnoconvHome       string
	CalibreHome       string
	PdfaPilotHome     string
	PdfaPilotRemote   bool
	PdfaPilotEndpoint string // Remote dispatcher address; empty uses pdfaPilot's own default.
	PdfaPilotLevel    string // Default: "1b".

	// Output (properties).
	OutputDir  string
	OutputWait time.Duration // How long to wait for a late output file. Default: 0.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string

	// PropertiesSource records where the properties were loaded from.
	PropertiesSource string
}

// DefaultConfig returns the built-in defaults. Properties loaded at startup
// override these.
func DefaultConfig() Config {
	return Config{
		UnoconvHome:    "/usr/bin",
		CalibreHome:    "/usr/bin",
		PdfaPilotHome:  "/opt/pdfapilot",
		PdfaPilotLevel: "1b",
		OutputDir:      "output",
		ColorMode:      ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and required paths. When not in CheckOnly mode
// an input path is required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	c.PdfaPilotLevel = strings.ToLower(strings.TrimSpace(c.PdfaPilotLevel))
	if !pdfaLevels[c.PdfaPilotLevel] {
		return fmt.Errorf("invalid PDF/A level %q (e.g. 1b, 2b, 3u)", c.PdfaPilotLevel)
	}
	if c.OutputWait < 0 {
		return errors.New("output wait must not be negative")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output directory is not configured (" + KeyOutputDir + ")")
	}
	if strings.ContainsAny(c.SubDir, `/\`) || c.SubDir == ".." {
		return fmt.Errorf("output sub-directory %q must be a single directory name", c.SubDir)
	}

	if c.CheckOnly {
		return nil
	}
	if c.Input == "" {
		return ErrMissingInput
	}
	return nil
}
