// Package check provides converter diagnostics (--check mode) and the
// pre-run dependency check (CheckDeps) for unoconv, calibre and pdfaPilot.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/pdfaconvert/internal/config"
	"github.com/backmassage/pdfaconvert/internal/process"
)

// Sentinel errors returned by CheckDeps and Executable.
var (
	ErrToolNotFound      = errors.New("converter executable not found")
	ErrToolNotExecutable = errors.New("converter file is not executable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Tool is one converter installation to check.
type Tool struct {
	Name       string
	Executable string
	Extensions string // What it converts, for display.
}

// Tools lists the converter executables named by cfg.
func Tools(cfg *config.Config) []Tool {
	pilot := "pdf"
	if cfg.PdfaPilotRemote {
		pilot = "pdf (remote)"
	}
	return []Tool{
		{Name: "unoconv", Executable: filepath.Join(cfg.UnoconvHome, "unoconv"), Extensions: "doc docm docx odt rtf wp wpd"},
		{Name: "calibre", Executable: filepath.Join(cfg.CalibreHome, "ebook-convert"), Extensions: "epub"},
		{Name: "pdfaPilot", Executable: filepath.Join(cfg.PdfaPilotHome, "pdfaPilot"), Extensions: pilot},
	}
}

// RunCheck runs the interactive --check flow: for each converter it
// reports whether the executable exists and what its --version prints,
// then checks the output directory. It reports whether every converter
// was found; it does not stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, r process.Runner, log Logger) bool {
	log.Info("=== Converter Check ===")
	log.Info("Properties: %s", cfg.PropertiesSource)

	ok := true
	for _, t := range Tools(cfg) {
		if !checkTool(ctx, r, t, log) {
			ok = false
		}
	}
	if cfg.PdfaPilotRemote {
		endpoint := cfg.PdfaPilotEndpoint
		if endpoint == "" {
			endpoint = "(pdfaPilot default)"
		}
		log.Info("pdfaPilot remote endpoint: %s", endpoint)
	}
	log.Info("PDF/A level: %s", cfg.PdfaPilotLevel)
	checkOutputDir(cfg.OutputDir, log)
	return ok
}

// checkTool verifies the executable and logs the first line of its
// --version output.
func checkTool(ctx context.Context, r process.Runner, t Tool, log Logger) bool {
	if err := Executable(t.Executable); err != nil {
		log.Error("%s (%s): %v", t.Name, t.Extensions, err)
		return false
	}
	res, err := r.Run(ctx, process.Command{Args: []string{t.Executable, "--version"}})
	if err != nil {
		log.Warn("%s found at %s but --version failed: %v", t.Name, t.Executable, err)
		return true
	}
	if res.ExitCode != 0 {
		log.Warn("%s found at %s but --version exited with status %d", t.Name, t.Executable, res.ExitCode)
		return true
	}
	log.Success("%s (%s): %s", t.Name, t.Extensions, firstLine(string(res.Output)))
	return true
}

// checkOutputDir reports whether the output directory exists or can be
// created. Nothing is created here.
func checkOutputDir(dir string, log Logger) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		log.Success("Output directory: %s", dir)
	case err == nil:
		log.Error("Output directory %s is not a directory", dir)
	case errors.Is(err, os.ErrNotExist):
		log.Info("Output directory %s will be created", dir)
	default:
		log.Error("Output directory %s: %v", dir, err)
	}
}

// CheckDeps is the pre-run validation: it returns one error per converter
// executable that is missing or not executable. Runs may still convert the
// file types whose converter is present.
func CheckDeps(cfg *config.Config) []error {
	var errs []error
	for _, t := range Tools(cfg) {
		if err := Executable(t.Executable); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
	}
	return errs
}

// Executable returns nil if path is a regular file with an execute bit.
func Executable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, path)
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrToolNotExecutable, path)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	if s == "" {
		return "(no version output)"
	}
	return strings.TrimSpace(s)
}
