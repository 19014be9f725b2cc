// Package convert picks the external converter for an input file by its
// extension and owns the output directory the converters write into.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/pdfaconvert/internal/config"
	"github.com/backmassage/pdfaconvert/internal/domain"
	"github.com/backmassage/pdfaconvert/internal/locate"
	"github.com/backmassage/pdfaconvert/internal/naming"
	"github.com/backmassage/pdfaconvert/internal/process"
	"github.com/backmassage/pdfaconvert/internal/tools"
)

type factory func(env tools.Env, cfg *config.Config) tools.Converter

func unoconv(env tools.Env, cfg *config.Config) tools.Converter {
	return tools.NewUnoconv(env, cfg.UnoconvHome)
}

func calibre(env tools.Env, cfg *config.Config) tools.Converter {
	return tools.NewCalibre(env, cfg.CalibreHome)
}

func pdfaPilot(env tools.Env, cfg *config.Config) tools.Converter {
	if cfg.PdfaPilotRemote {
		return tools.NewPdfaPilotRemote(env, cfg.PdfaPilotHome, cfg.PdfaPilotEndpoint, cfg.PdfaPilotLevel)
	}
	return tools.NewPdfaPilot(env, cfg.PdfaPilotHome, cfg.PdfaPilotLevel)
}

// byExtension maps lower-cased extensions to the adapter that handles them.
var byExtension = map[string]factory{
	"doc":  unoconv,
	"docm": unoconv,
	"docx": unoconv,
	"odt":  unoconv,
	"rtf":  unoconv,
	"wp":   unoconv,
	"wpd":  unoconv,
	"epub": calibre,
	"pdf":  pdfaPilot,
}

// Extensions returns the supported extensions in no particular order.
func Extensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	return exts
}

// Option customizes a Converter.
type Option func(*options)

type options struct {
	runner process.Runner
}

// WithRunner replaces the subprocess runner.
func WithRunner(r process.Runner) Option {
	return func(o *options) { o.runner = r }
}

// Converter dispatches input files to the matching tool adapter.
type Converter struct {
	cfg       *config.Config
	env       tools.Env
	outputDir string
}

// New prepares the output directory (cfg.OutputDir, plus subDir beneath it
// when set) and returns a ready dispatcher. cfg must already be validated.
func New(cfg *config.Config, subDir string, log tools.Logger, opts ...Option) (*Converter, error) {
	o := options{runner: &process.Exec{}}
	for _, opt := range opts {
		opt(&o)
	}

	outputDir := cfg.OutputDir
	if subDir != "" {
		outputDir = filepath.Join(outputDir, subDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}

	log.Debug("properties: %s", cfg.PropertiesSource)
	log.Debug("unoconv home: %s", cfg.UnoconvHome)
	log.Debug("calibre home: %s", cfg.CalibreHome)
	log.Debug("pdfaPilot home: %s (remote=%t)", cfg.PdfaPilotHome, cfg.PdfaPilotRemote)
	log.Info("Output directory: %s", abs)

	return &Converter{
		cfg: cfg,
		env: tools.Env{
			Runner:    o.runner,
			Locator:   &locate.Locator{Wait: cfg.OutputWait, Inspect: true},
			OutputDir: abs,
			Log:       log,
		},
		outputDir: abs,
	}, nil
}

// OutputDir is the absolute directory generated files are written to.
func (c *Converter) OutputDir() string { return c.outputDir }

// Select returns the adapter for path based on its extension.
func (c *Converter) Select(path string) (tools.Converter, error) {
	if path == "" {
		return nil, domain.InvalidArgument("no input file")
	}
	f, ok := byExtension[naming.Extension(path)]
	if !ok {
		return nil, domain.UnknownFileType(path)
	}
	return f(c.env, c.cfg), nil
}

// Examine converts one file. Argument and file-type errors are returned
// before any subprocess starts.
func (c *Converter) Examine(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if req.InputPath == "" {
		return nil, domain.InvalidArgument("no input file")
	}
	tool, err := c.Select(req.InputPath)
	if err != nil {
		return nil, err
	}
	return tool.Convert(ctx, req)
}

// DeleteConvertedFile removes name from the output directory. It reports
// whether a file was removed; an empty or unknown name is not an error.
func (c *Converter) DeleteConvertedFile(name string) bool {
	if name == "" {
		return false
	}
	path := filepath.Join(c.outputDir, filepath.Base(name))
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return os.Remove(path) == nil
}
