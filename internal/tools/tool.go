package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/pdfaconvert/internal/domain"
	"github.com/backmassage/pdfaconvert/internal/locate"
	"github.com/backmassage/pdfaconvert/internal/naming"
	"github.com/backmassage/pdfaconvert/internal/process"
)

// tailLines is how much tool output is logged when no file was produced.
const tailLines = 20

// Converter turns one input file into a PDF/A file in the output directory.
type Converter interface {
	Name() string
	Convert(ctx context.Context, req domain.Request) (*domain.Result, error)
}

// Logger is the subset of logging.Logger the adapters use.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Env is what every adapter shares: how to run commands, where output
// goes and how it is found.
type Env struct {
	Runner    process.Runner
	Locator   *locate.Locator
	OutputDir string
	Log       Logger
}

// tool is the shared Convert implementation; the variants differ only in
// argv, log file name and diagnostic patterns.
type tool struct {
	name    string
	logFile string
	build   func(in, out string) []string
	diag    diagnostics
	env     Env
}

func (t *tool) Name() string { return t.name }

// Convert runs the tool for req.InputPath and returns the located output.
// Launch failures wrap [domain.ErrExternalTool]; a missing or empty output
// file wraps [domain.ErrGeneratedFileUnavailable].
func (t *tool) Convert(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if req.InputPath == "" {
		return nil, domain.InvalidArgument("no input file")
	}
	in, err := filepath.Abs(req.InputPath)
	if err != nil {
		return nil, domain.InvalidArgument(err.Error())
	}
	name := naming.OutputName(in)
	out := filepath.Join(t.env.OutputDir, name)

	args := t.build(in, out)
	t.env.Log.Debug("%s: %s", t.name, strings.Join(args, " "))

	res, err := t.env.Runner.Run(ctx, process.Command{Args: args})
	if err != nil {
		cause := err
		var de *domain.Error
		if errors.As(err, &de) && de.Err != nil {
			cause = de.Err
		}
		return nil, domain.ExternalTool(t.name, req.InputPath, cause)
	}

	logPath := filepath.Join(t.env.OutputDir, t.logFile)
	if err := os.WriteFile(logPath, res.Output, 0o644); err != nil {
		t.env.Log.Warn("%s: could not write tool log %s: %v", t.name, logPath, err)
	}
	if res.ExitCode != 0 {
		t.env.Log.Warn("%s exited with status %d for %s", t.name, res.ExitCode, filepath.Base(in))
	}

	diags := t.diag.scan(res.Output)
	for _, d := range diags {
		t.env.Log.Warn("%s: %s", t.name, d)
	}

	found, err := t.env.Locator.Locate(ctx, t.env.OutputDir, name)
	if err != nil {
		if tail := lastLines(res.Output, tailLines); tail != "" {
			t.env.Log.Info("%s output (last %d lines):\n%s", t.name, tailLines, tail)
		}
		return nil, err
	}

	result := &domain.Result{
		Tool:        t.name,
		InputPath:   req.InputPath,
		OutputPath:  found.Path,
		Size:        found.Size,
		ExitCode:    res.ExitCode,
		Duration:    res.Duration,
		Diagnostics: diags,
		Metadata:    found.Metadata,
	}

	if req.DeleteAfter {
		if err := os.Remove(found.Path); err != nil {
			t.env.Log.Warn("%s: could not delete %s: %v", t.name, found.Path, err)
		} else {
			result.Deleted = true
		}
	}
	return result, nil
}

// lastLines returns at most n trailing non-empty lines of out.
func lastLines(out []byte, n int) string {
	lines := strings.Split(string(bytes.TrimRight(out, "\r\n")), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
