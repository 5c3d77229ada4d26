// Package sink implements the aggregated sink (C8): a thread-safe,
// append-only writer for the result artifact, with a background
// flush timer and an idempotent Close. A parallel DebugSink shares the
// contract and additionally stamps each line with a timestamp, pid, and
// worker id.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	gscanerrors "github.com/standardbeagle/gscan/internal/errors"
)

// DefaultFlushInterval is how often the background timer flushes,
// matching the specification's default of 30 seconds.
const DefaultFlushInterval = 30 * time.Second

// Sink is the main result-artifact writer. Only the orchestrator
// appends to it (always from a single goroutine, after draining a
// batch); the mutex exists solely to protect against the flush timer
// running concurrently with a write or close.
type Sink struct {
	mu        sync.Mutex
	w         *bufio.Writer
	f         *os.File
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// Open creates (or truncates) path and starts the periodic flush timer.
func Open(path string, flushInterval time.Duration) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, gscanerrors.NewSinkError("open", err)
	}
	if flushInterval <= 0 {
		flushInterval = DefaultFlushInterval
	}

	s := &Sink{
		w:      bufio.NewWriter(f),
		f:      f,
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

func (s *Sink) flushLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			_ = s.w.Flush() // flush failures are swallowed (§4.7)
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// WriteLine appends a single complete line (newline-terminated) to the
// artifact.
func (s *Sink) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line); err != nil {
		return gscanerrors.NewSinkError("write", err)
	}
	if _, err := io.WriteString(s.w, "\n"); err != nil {
		return gscanerrors.NewSinkError("write", err)
	}
	return nil
}

// WriteBlank appends a single blank line.
func (s *Sink) WriteBlank() error {
	return s.WriteLine("")
}

// Close stops the timer, does a final flush, and releases the
// underlying handle. Close is idempotent.
func (s *Sink) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)

		s.mu.Lock()
		ferr := s.w.Flush()
		cerr := s.f.Close()
		s.mu.Unlock()

		if ferr != nil {
			err = gscanerrors.NewSinkError("flush", ferr)
			return
		}
		if cerr != nil {
			err = gscanerrors.NewSinkError("close", cerr)
		}
	})
	return err
}

// TempName builds a collision-resistant temp file name from a monotonic
// counter and the process id, replacing what would otherwise need a
// UUID dependency (see DESIGN.md).
func TempName(counter uint64) string {
	return fmt.Sprintf("%x-%d", xxhashSeed(counter), os.Getpid())
}
