package domain

import "time"

// Request asks for one input file to be converted.
type Request struct {
	InputPath string
	// DeleteAfter removes the generated PDF once it has been inspected.
	DeleteAfter bool
}

// Result describes a finished conversion. OutputPath no longer exists on
// disk when Deleted is set; the remaining fields are kept as a record.
type Result struct {
	Tool        string
	InputPath   string
	OutputPath  string
	Size        int64
	ExitCode    int
	Duration    time.Duration
	Deleted     bool
	Diagnostics []string
	Metadata    map[string]string
}
