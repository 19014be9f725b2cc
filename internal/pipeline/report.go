package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/pdfaconvert/internal/domain"
)

// Report is the YAML document written by [WriteReport].
type Report struct {
	RunID    string        `yaml:"run_id"`
	Input    string        `yaml:"input"`
	Output   string        `yaml:"output_dir"`
	Started  time.Time     `yaml:"started"`
	Finished time.Time     `yaml:"finished"`
	Stats    ReportStats   `yaml:"stats"`
	Files    []ReportEntry `yaml:"files"`
}

// ReportStats mirrors RunStats for the report.
type ReportStats struct {
	Total       int   `yaml:"total"`
	Converted   int   `yaml:"converted"`
	Skipped     int   `yaml:"skipped"`
	Failed      int   `yaml:"failed"`
	Interrupted bool  `yaml:"interrupted,omitempty"`
	InputBytes  int64 `yaml:"input_bytes"`
	OutputBytes int64 `yaml:"output_bytes"`
}

// ReportEntry is one input file's outcome.
type ReportEntry struct {
	Input       string            `yaml:"input"`
	Status      string            `yaml:"status"` // converted, skipped or failed
	Tool        string            `yaml:"tool,omitempty"`
	Output      string            `yaml:"output,omitempty"`
	Size        int64             `yaml:"size,omitempty"`
	ExitCode    int               `yaml:"exit_code,omitempty"`
	DurationMS  int64             `yaml:"duration_ms,omitempty"`
	Deleted     bool              `yaml:"deleted,omitempty"`
	ErrorKind   string            `yaml:"error_kind,omitempty"`
	Error       string            `yaml:"error,omitempty"`
	SkipReason  string            `yaml:"skip_reason,omitempty"`
	Overwrote   string            `yaml:"overwrote,omitempty"`
	Diagnostics []string          `yaml:"diagnostics,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// BuildReport assembles the report for a finished run under a new run id.
func BuildReport(input, outputDir string, results []FileResult, stats RunStats) *Report {
	r := &Report{
		RunID:    uuid.NewString(),
		Input:    input,
		Output:   outputDir,
		Started:  stats.Started,
		Finished: stats.Finished,
		Stats: ReportStats{
			Total:       stats.Total,
			Converted:   stats.Converted,
			Skipped:     stats.Skipped,
			Failed:      stats.Failed,
			Interrupted: stats.Interrupted,
			InputBytes:  stats.TotalInputBytes,
			OutputBytes: stats.TotalOutputBytes,
		},
		Files: make([]ReportEntry, 0, len(results)),
	}

	for _, fr := range results {
		e := ReportEntry{Input: fr.Path, Overwrote: fr.Collision}
		switch {
		case fr.Result != nil:
			res := fr.Result
			e.Status = "converted"
			e.Tool = res.Tool
			e.Output = res.OutputPath
			e.Size = res.Size
			e.ExitCode = res.ExitCode
			e.DurationMS = res.Duration.Milliseconds()
			e.Deleted = res.Deleted
			e.Diagnostics = res.Diagnostics
			e.Metadata = res.Metadata
		case fr.Err != nil:
			e.Status = "failed"
			e.ErrorKind = domain.KindName(fr.Err)
			e.Error = fr.Err.Error()
		default:
			e.Status = "skipped"
			e.SkipReason = fr.SkipReason
		}
		r.Files = append(r.Files, e)
	}
	return r
}

// WriteReport marshals r as YAML to path, creating parent directories.
func WriteReport(path string, r *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
