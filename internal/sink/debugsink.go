package sink

import (
	"fmt"
	"os"
	"time"
)

// DebugSink shares Sink's append/flush/close contract but additionally
// stamps every line with a timestamp, the process id, and a worker
// identifier. It is only active when debug mode is enabled; callers
// that don't enable it never open a file for it.
type DebugSink struct {
	sink *Sink
	pid  int
}

// OpenDebugSink opens the debug log at path. Callers should not call
// this when debug mode is disabled — §4.7 requires the file to exist
// only when debug is on.
func OpenDebugSink(path string, flushInterval time.Duration) (*DebugSink, error) {
	s, err := Open(path, flushInterval)
	if err != nil {
		return nil, err
	}
	return &DebugSink{sink: s, pid: os.Getpid()}, nil
}

// WriteLine stamps and appends one debug line.
func (d *DebugSink) WriteLine(workerID int, line string) error {
	stamped := fmt.Sprintf("%s pid=%d worker=%d %s", time.Now().Format(time.RFC3339Nano), d.pid, workerID, line)
	return d.sink.WriteLine(stamped)
}

// Close stops the timer, flushes, and releases the underlying handle.
// Idempotent.
func (d *DebugSink) Close() error {
	return d.sink.Close()
}
