// Package orchestrator implements the scan orchestrator (C7): a bounded
// worker pool that dispatches per-file scan jobs in batches of
// 2×parallelism, drains each batch fully before starting the next, and
// appends results to the aggregated sink in input order.
package orchestrator

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/gscan/internal/debug"
	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
	"github.com/standardbeagle/gscan/internal/scanner"
	"github.com/standardbeagle/gscan/internal/types"
)

// ProgressFunc is invoked once per drained job (skipped entirely when
// Quiet is set) with the running completed/total count and elapsed
// time since the run started.
type ProgressFunc func(completed, total int, elapsed time.Duration)

// Sink is the minimal surface the orchestrator needs from the
// aggregated sink (C8); kept as an interface so tests can substitute an
// in-memory collector.
type Sink interface {
	WriteLine(line string) error
}

// DebugSink is the minimal surface the orchestrator needs from the
// debug sink; a nil DebugSink means debug mode is off.
type DebugSink interface {
	WriteLine(workerID int, line string) error
}

// Orchestrator runs the batched worker pool described in §4.6.
type Orchestrator struct {
	scanner *scanner.Scanner
}

// New builds an Orchestrator backed by the given per-file scanner.
func New(s *scanner.Scanner) *Orchestrator {
	return &Orchestrator{scanner: s}
}

// jobResult holds one file's outcome, kept in input order inside a
// batch so the sink receives records deterministically regardless of
// which worker finished first.
type jobResult struct {
	path    string
	records []types.MatchRecord
}

// Run scans every file in files against cfg, writing formatted match
// lines to out (and, if debugOut is non-nil, per-job notices to it),
// and returns the total number of matches emitted.
func (o *Orchestrator) Run(files []string, cfg *types.ScanConfig, out Sink, debugOut DebugSink, progress ProgressFunc) (int, error) {
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	batchSize := 2 * parallelism

	start := time.Now()
	totalMatches := 0
	completed := 0
	total := len(files)

	for batchStart := 0; batchStart < len(files); batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > len(files) {
			batchEnd = len(files)
		}
		batch := files[batchStart:batchEnd]
		results := make([]jobResult, len(batch))

		g := new(errgroup.Group)
		g.SetLimit(parallelism)

		for i, path := range batch {
			i, path := i, path
			g.Go(func() error {
				results[i] = o.runOne(cfg, path, i, debugOut)
				return nil
			})
		}
		// Worker functions never return an error themselves (panics are
		// recovered inside runOne), so g.Wait() only reports a
		// programming bug, not a per-file failure.
		if err := g.Wait(); err != nil {
			return totalMatches, err
		}

		// Drain this batch in submission order before starting the next.
		for _, res := range results {
			for _, rec := range res.records {
				if err := out.WriteLine(scanner.Format(rec)); err != nil {
					return totalMatches, err
				}
				totalMatches++
			}
			completed++
			if !cfg.Quiet && progress != nil {
				progress(completed, total, time.Since(start))
			}
		}
	}

	return totalMatches, nil
}

// runOne scans a single file, recovering from a worker panic so one
// bad file cannot take down the batch (§7 WorkerException).
func (o *Orchestrator) runOne(cfg *types.ScanConfig, path string, workerID int, debugOut DebugSink) (result jobResult) {
	result.path = path
	defer func() {
		if r := recover(); r != nil {
			werr := gscanerrors.NewWorkerError(workerID, path, fmt.Sprintf("%v", r))
			debug.LogOrchestrator("%v", werr)
			if debugOut != nil {
				_ = debugOut.WriteLine(workerID, werr.Error())
			}
			result.records = nil
		}
	}()

	records, err := o.scanner.Scan(cfg, path)
	if err != nil {
		debug.LogOrchestrator("scan error for %s: %v", path, err)
		if debugOut != nil {
			_ = debugOut.WriteLine(workerID, err.Error())
		}
		return result
	}
	result.records = records
	return result
}
