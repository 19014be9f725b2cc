package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/backmassage/pdfaconvert/internal/display"
	"github.com/backmassage/pdfaconvert/internal/domain"
	"github.com/backmassage/pdfaconvert/internal/term"
)

const maxNameWidth = 50

// tableRow is the plain-text rendering of one FileResult.
type tableRow struct {
	Name   string
	Tool   string
	Pages  string
	Size   string
	Status string
	class  string // "ok", "skip" or "fail"; picks the status color.
}

func rowFor(fr FileResult) tableRow {
	r := tableRow{Name: filepath.Base(fr.Path), Tool: "-", Pages: "-", Size: "-"}
	switch {
	case fr.Result != nil:
		r.Tool = fr.Result.Tool
		if p := fr.Result.Metadata["pages"]; p != "" {
			r.Pages = p
		}
		r.Size = display.FormatBytes(fr.Result.Size)
		r.Status, r.class = "ok", "ok"
		if fr.Result.Deleted {
			r.Status = "ok (deleted)"
		}
	case fr.Err != nil:
		r.Status, r.class = domain.KindName(fr.Err), "fail"
	default:
		r.Status, r.class = "skipped", "skip"
	}
	return r
}

// PrintTable writes a per-file results table to w. Nothing is written for
// an empty run.
func PrintTable(w io.Writer, results []FileResult) {
	if len(results) == 0 {
		return
	}

	rows := make([]tableRow, len(results))
	nameW, toolW, pagesW, sizeW := len("File"), len("Tool"), len("Pages"), len("Size")
	for i, fr := range results {
		r := rowFor(fr)
		rows[i] = r
		nameW = max(nameW, len(r.Name))
		toolW = max(toolW, len(r.Tool))
		pagesW = max(pagesW, len(r.Pages))
		sizeW = max(sizeW, len(r.Size))
	}
	nameW = min(nameW, maxNameWidth)

	header := fmt.Sprintf("  %-*s  %-*s  %*s  %*s  %s",
		nameW, "File", toolW, "Tool", pagesW, "Pages", sizeW, "Size", "Status")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %*s  %*s  %s\n",
			nameW, name, toolW, r.Tool, pagesW, r.Pages, sizeW, r.Size, colorStatus(r.Status, r.class))
	}
	fmt.Fprintln(w)
}

// colorStatus wraps the status text in the color for its class. Status is
// the last column, so no padding is needed around the escape codes.
func colorStatus(s, class string) string {
	switch class {
	case "ok":
		return term.Green.Sprint(s)
	case "fail":
		return term.Red.Sprint(s)
	default:
		return term.Yellow.Sprint(s)
	}
}
