package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/pdfaconvert/internal/display"
	"github.com/backmassage/pdfaconvert/internal/domain"
	"github.com/backmassage/pdfaconvert/internal/logging"
	"github.com/backmassage/pdfaconvert/internal/naming"
)

// Examiner converts one file; *convert.Converter is the real one.
type Examiner interface {
	Examine(ctx context.Context, req domain.Request) (*domain.Result, error)
}

// Options are per-run settings.
type Options struct {
	DeleteAfter bool
}

// FileResult is the outcome for one input entry, in discovery order.
// Exactly one of Result, Err and SkipReason is set.
type FileResult struct {
	Path       string
	Result     *domain.Result
	Err        error
	SkipReason string
	// Collision names the earlier input whose PDF this one overwrote.
	Collision string
}

// Run converts input (a file or a directory) and returns the per-file
// outcomes with aggregate stats. Only discovery errors are returned;
// failures of individual files are logged, recorded and the run goes on.
// Cancelling ctx stops the run before the next file.
func Run(ctx context.Context, input string, ex Examiner, opts Options, log *logging.Logger) ([]FileResult, RunStats, error) {
	stats := RunStats{Started: time.Now()}

	entries, err := Discover(input)
	if err != nil {
		stats.Finished = time.Now()
		return nil, stats, err
	}

	stats.Total = len(entries)
	log.Info("Found %d entries in %s", stats.Total, input)
	fmt.Println()

	collisions := naming.NewCollisionTracker()
	results := make([]FileResult, 0, len(entries))

	for i, e := range entries {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			stats.Interrupted = true
			break
		}
		stats.Current = i + 1
		results = append(results, processEntry(ctx, e, ex, opts, log, &stats, collisions))
	}

	stats.Finished = time.Now()
	logSummary(log, &stats)
	return results, stats, nil
}

// processEntry handles one entry: skip check → collision check → examine.
func processEntry(
	ctx context.Context,
	e Entry,
	ex Examiner,
	opts Options,
	log *logging.Logger,
	stats *RunStats,
	collisions *naming.CollisionTracker,
) FileResult {
	basename := filepath.Base(e.Path)
	fr := FileResult{Path: e.Path}
	flog := log.With("file", basename)

	if !e.Regular {
		fr.SkipReason = "not a regular file"
		flog.Warn("[%d/%d] Skip (not a regular file): %s", stats.Current, stats.Total, basename)
		stats.Skipped++
		return fr
	}

	flog.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	if !opts.DeleteAfter {
		output := naming.OutputName(e.Path)
		if prev, collided := collisions.Claim(e.Path, output); collided {
			fr.Collision = prev
			flog.Warn("%s overwrites the output of %s", output, filepath.Base(prev))
		}
	}

	res, err := ex.Examine(ctx, domain.Request{InputPath: e.Path, DeleteAfter: opts.DeleteAfter})
	if err != nil {
		fr.Err = err
		flog.Error("Conversion failed: %v", err)
		stats.Failed++
		fmt.Println()
		return fr
	}
	fr.Result = res

	if fi, err := os.Stat(e.Path); err == nil {
		stats.TotalInputBytes += fi.Size()
	}
	stats.TotalOutputBytes += res.Size
	stats.Converted++

	msg := fmt.Sprintf("%s -> %s (%s, %s)", res.Tool, filepath.Base(res.OutputPath),
		display.FormatBytes(res.Size), display.FormatDuration(res.Duration))
	if res.Deleted {
		msg += " [deleted]"
	}
	flog.Success("%s", msg)
	fmt.Println()
	return fr
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	if stats.Interrupted {
		log.Warn("Run interrupted after %d of %d entries", stats.Current, stats.Total)
	}
	log.Info("  Elapsed: %s", display.FormatDuration(stats.Elapsed()))
	if stats.Converted == 0 {
		return
	}
	log.Info("  Input %s -> output %s",
		display.FormatBytes(stats.TotalInputBytes),
		display.FormatBytes(stats.TotalOutputBytes))
}
