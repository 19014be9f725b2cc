package naming

import (
	"path/filepath"
	"strings"
)

// PDFExt is the extension of every generated file.
const PDFExt = ".pdf"

// OutputName returns the generated file name for inputPath: the base name
// with its last extension replaced by ".pdf".
//
//	/in/report.final.docx -> report.final.pdf
//	/in/README            -> README.pdf
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base + PDFExt
}

// Extension returns the lower-cased text after the last "." of path, or ""
// when the base name has none.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}
