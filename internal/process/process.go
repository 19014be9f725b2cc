// Package process runs external converter commands and captures their
// combined console output.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/backmassage/pdfaconvert/internal/domain"
)

// Command is one external tool invocation. Args[0] is the executable.
type Command struct {
	Args []string
	Dir  string // Working directory; empty inherits the current one.
}

// Result holds the outcome of a command that was started. A non-zero
// ExitCode is not an error at this level.
type Result struct {
	Output   []byte
	ExitCode int
	Duration time.Duration
}

// Runner executes commands. [Exec] is the real implementation.
type Runner interface {
	Run(ctx context.Context, c Command) (*Result, error)
}

// Exec runs commands as OS subprocesses that inherit the current environment.
type Exec struct {
	// Tee, when set, receives the tool output as it is produced (verbose mode).
	Tee io.Writer
}

// Run starts c, waits for it to exit and returns its combined stdout and
// stderr. When the executable cannot be launched the error wraps
// [domain.ErrExternalTool] and the OS error. Cancelling ctx kills the process.
func (e *Exec) Run(ctx context.Context, c Command) (*Result, error) {
	if len(c.Args) == 0 || c.Args[0] == "" {
		return nil, domain.InvalidArgument("empty command")
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir

	var buf bytes.Buffer
	var out io.Writer = &buf
	if e.Tee != nil {
		out = io.MultiWriter(&buf, e.Tee)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	err := cmd.Run()
	res := &Result{Output: buf.Bytes(), Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		// Killed by cancellation; whatever it printed is still returned.
		res.ExitCode = -1
		return res, domain.ExternalTool(c.Args[0], "", ctx.Err())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return nil, domain.ExternalTool(c.Args[0], "", err)
	}
}
