package pipeline

import "time"

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int
	Converted        int
	Skipped          int
	Failed           int
	Interrupted      bool
	TotalInputBytes  int64
	TotalOutputBytes int64
	Started          time.Time
	Finished         time.Time
}

// Elapsed is the wall time of the run.
func (s *RunStats) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// SizeChange returns output bytes minus input bytes over converted files.
// PDF/A embeds fonts and color profiles, so positive values are normal.
func (s *RunStats) SizeChange() int64 {
	return s.TotalOutputBytes - s.TotalInputBytes
}
