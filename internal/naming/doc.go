// Package naming derives the PDF file name a converter is told to produce
// and tracks which inputs claimed each name within one run.
package naming
