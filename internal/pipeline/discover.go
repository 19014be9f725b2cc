package pipeline

import (
	"os"
	"path/filepath"

	"github.com/backmassage/pdfaconvert/internal/domain"
)

// Entry is one candidate input. Regular is false for sub-directories and
// anything else that cannot be converted (sockets, dangling links).
type Entry struct {
	Path    string
	Regular bool
}

// Discover resolves input into the entries to process. A file yields
// itself; a directory yields its immediate entries sorted by name. A
// missing input or an empty directory is an error wrapping
// [domain.ErrInvalidArgument].
func Discover(input string) ([]Entry, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, &domain.Error{Kind: domain.ErrInvalidArgument, Path: input, Message: "input not found", Err: err}
	}
	if !info.IsDir() {
		return []Entry{{Path: input, Regular: info.Mode().IsRegular()}}, nil
	}

	// os.ReadDir returns entries sorted by file name.
	dirents, err := os.ReadDir(input)
	if err != nil {
		return nil, &domain.Error{Kind: domain.ErrInvalidArgument, Path: input, Message: "cannot read input directory", Err: err}
	}
	if len(dirents) == 0 {
		return nil, &domain.Error{Kind: domain.ErrInvalidArgument, Path: input, Message: "empty input directory"}
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		path := filepath.Join(input, d.Name())
		// Stat follows symlinks so a link to a document is processed.
		fi, err := os.Stat(path)
		entries = append(entries, Entry{Path: path, Regular: err == nil && fi.Mode().IsRegular()})
	}
	return entries, nil
}
