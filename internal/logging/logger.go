// Package logging provides the leveled console logger with optional file
// sink. It is a thin printf-style facade over zerolog's ConsoleWriter.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/backmassage/pdfaconvert/internal/config"
	"github.com/backmassage/pdfaconvert/internal/term"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger writes leveled lines to stdout (errors to stderr) and, when
// configured, appends the same lines without color to a log file.
// Loggers derived with [Logger.With] share the parent's sinks.
type Logger struct {
	zl   zerolog.Logger
	sink *sink
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *config.Config, stdout, stderr io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	colored := term.Enabled()

	s := &sink{
		out:    consoleWriter(stdout, colored),
		errOut: consoleWriter(stderr, colored),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		s.file = f
		s.fileOut = consoleWriter(f, false)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(s).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, sink: s}, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	return l.sink.close()
}

// With returns a logger that adds key=value to every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger(), sink: l.sink}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs a completed step at INFO level, tagged ok=true.
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Info().Bool("ok", true).Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the config was verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

// sink routes zerolog output by level and mirrors it to the log file.
type sink struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	fileOut io.Writer
}

func (s *sink) Write(p []byte) (int, error) {
	return s.WriteLevel(zerolog.NoLevel, p)
}

func (s *sink) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := s.out
	if level >= zerolog.ErrorLevel && level <= zerolog.PanicLevel {
		dst = s.errOut
	}
	n, err := dst.Write(p)
	if s.fileOut != nil {
		_, _ = s.fileOut.Write(p)
	}
	return n, err
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.fileOut = nil
	return err
}

func consoleWriter(out io.Writer, colored bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     !colored,
		TimeFormat:  timeFormat,
		FormatLevel: levelFormatter(colored),
	}
}

// levelFormatter renders "[INFO]"-style labels, colored per level.
func levelFormatter(colored bool) zerolog.Formatter {
	return func(i interface{}) string {
		lvl, _ := i.(string)
		label := "[" + strings.ToUpper(lvl) + "]"
		if !colored {
			return label
		}
		switch lvl {
		case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
			return term.Red.Sprint(label)
		case zerolog.LevelWarnValue:
			return term.Yellow.Sprint(label)
		case zerolog.LevelDebugValue:
			return term.Cyan.Sprint(label)
		default:
			return term.Blue.Sprint(label)
		}
	}
}
