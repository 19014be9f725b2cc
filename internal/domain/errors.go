// Package domain holds the types shared by every stage of a conversion:
// the per-file request and result, and the error taxonomy.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; every *Error unwraps to exactly one.
var (
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrUnknownFileType          = errors.New("unrecognized file type")
	ErrExternalTool             = errors.New("external tool execution failed")
	ErrGeneratedFileUnavailable = errors.New("generated file unavailable")
)

// Error is a conversion failure tied to one file.
type Error struct {
	Kind    error
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [%s]", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path, message string, err error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Err: err}
}

func InvalidArgument(message string) *Error {
	return newError(ErrInvalidArgument, "", message, nil)
}

func UnknownFileType(path string) *Error {
	return newError(ErrUnknownFileType, path, "cannot process file", nil)
}

func ExternalTool(tool, path string, err error) *Error {
	return newError(ErrExternalTool, path, tool, err)
}

func GeneratedFileUnavailable(path string, err error) *Error {
	return newError(ErrGeneratedFileUnavailable, path, "", err)
}

// KindName returns a short stable label for err's kind, or "other".
func KindName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid-argument"
	case errors.Is(err, ErrUnknownFileType):
		return "unrecognized-file-type"
	case errors.Is(err, ErrExternalTool):
		return "external-tool"
	case errors.Is(err, ErrGeneratedFileUnavailable):
		return "generated-file-unavailable"
	default:
		return "other"
	}
}
