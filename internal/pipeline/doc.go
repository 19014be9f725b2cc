// Package pipeline drives a conversion run: it discovers input files,
// hands each one to the dispatcher in order, isolates per-file failures,
// and summarizes the run in the log, an optional results table and an
// optional YAML report.
//
// Files are processed sequentially. Only the immediate entries of an input
// directory are considered; sub-directories are reported and skipped.
package pipeline
