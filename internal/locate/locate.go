// Package locate finds the PDF an external converter was asked to write
// and inspects it.
//
// Converters report success unreliably, so the file on disk is the only
// evidence that counts: it must be a regular, non-empty, readable file.
// Some converters (remote pdfaPilot in particular) hand the file over a
// little after their process exits; [Locator.Wait] covers that with an
// fsnotify watch on the output directory.
package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/backmassage/pdfaconvert/internal/domain"
)

// Metadata keys set by inspection. PDF document properties are added
// under their own names.
const (
	MetaMIME         = "mime"
	MetaPages        = "pages"
	MetaInspectError = "inspect_error"
)

var errEmpty = errors.New("file is empty")

var disablePdfcpuConfig sync.Once

// Found is a located output file.
type Found struct {
	Path     string
	Size     int64
	Metadata map[string]string
}

// Locator checks for generated files. The zero value checks once and does
// not inspect.
type Locator struct {
	Wait    time.Duration // How long to wait for a missing or empty file.
	Inspect bool          // Add MIME type and PDF details to Found.Metadata.
}

// Locate returns the file name in dir. When it is absent, empty or
// unreadable the error wraps [domain.ErrGeneratedFileUnavailable] and names
// the expected path.
func (l *Locator) Locate(ctx context.Context, dir, name string) (*Found, error) {
	path := filepath.Join(dir, name)

	size, err := check(path)
	if err != nil && l.Wait > 0 {
		size, err = l.waitFor(ctx, dir, path)
	}
	if err != nil {
		return nil, domain.GeneratedFileUnavailable(path, err)
	}

	f := &Found{Path: path, Size: size, Metadata: map[string]string{}}
	if l.Inspect {
		inspect(path, f.Metadata)
	}
	return f, nil
}

// check reports the size of path if it is a regular, non-empty file that
// can be opened for reading.
func check(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("not a regular file")
	}
	if info.Size() == 0 {
		return 0, errEmpty
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	f.Close()
	return info.Size(), nil
}

// waitFor watches dir until path passes check, the wait expires or ctx is
// cancelled. The last check error is returned on expiry.
func (l *Locator) waitFor(ctx context.Context, dir, path string) (int64, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return 0, fmt.Errorf("watch %s: %w", dir, err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return 0, fmt.Errorf("watch %s: %w", dir, err)
	}

	// The file may have landed between the first check and Add.
	size, lastErr := check(path)
	if lastErr == nil {
		return size, nil
	}

	timer := time.NewTimer(l.Wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
			return 0, fmt.Errorf("not ready after %s: %w", l.Wait, lastErr)
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0, lastErr
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if size, lastErr = check(path); lastErr == nil {
				return size, nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return 0, lastErr
			}
			lastErr = werr
		}
	}
}

// inspect fills md with the detected MIME type and, for PDFs, the page
// count and document properties. Failures are recorded in md.
func inspect(path string, md map[string]string) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		md[MetaInspectError] = err.Error()
		return
	}
	md[MetaMIME] = mtype.String()
	if !mtype.Is("application/pdf") {
		md[MetaInspectError] = "not a PDF: " + mtype.String()
		return
	}

	disablePdfcpuConfig.Do(api.DisableConfigDir)

	pages, err := api.PageCountFile(path)
	if err != nil {
		md[MetaInspectError] = err.Error()
		return
	}
	md[MetaPages] = strconv.Itoa(pages)

	f, err := os.Open(path)
	if err != nil {
		md[MetaInspectError] = err.Error()
		return
	}
	defer f.Close()

	props, err := api.Properties(f, nil)
	if err != nil {
		md[MetaInspectError] = err.Error()
		return
	}
	for k, v := range props {
		if _, reserved := md[k]; !reserved {
			md[k] = v
		}
	}
}
