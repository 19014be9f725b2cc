// Package tools wraps the external PDF/A converters.
//
// Each adapter builds the command line for its tool, runs it through a
// [process.Runner], keeps the tool's console output in a per-tool log file
// in the output directory, and then asks the [locate.Locator] for the PDF
// it told the tool to write. The file on disk decides success; the exit
// status is only reported.
//
// Adapters:
//   - unoconv (LibreOffice): doc, docm, docx, odt, rtf, wp, wpd
//   - calibre ebook-convert: epub
//   - callas pdfaPilot, local or remote (--dist): pdf
package tools
