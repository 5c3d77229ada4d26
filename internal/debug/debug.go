// Package debug provides an optional, mutex-guarded debug writer used by
// the classifier, encoding detector, and scanner to record per-file
// notices without affecting the main result artifact.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug is a build-time flag; override with
// -ldflags "-X github.com/standardbeagle/gscan/internal/debug.EnableDebug=true".
var EnableDebug = "false"

var (
	debugOutput io.Writer
	debugFile   *os.File
	debugMutex  sync.Mutex
)

// SetOutput sets a custom writer for debug output. Pass nil to disable
// debug output entirely.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitLogFile creates a timestamped debug log file under os.TempDir and
// routes debug output to it. Returns the file path.
func InitLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "gscan-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// Close closes the debug log file if one is open.
func Close() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// Enabled reports whether debug output is currently configured.
func Enabled() bool {
	return getWriter() != nil
}

func getWriter() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Log writes a component-tagged debug line; it is a no-op when no
// output has been configured.
func Log(component, format string, args ...interface{}) {
	w := getWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogClassify logs a binary-classifier notice (C2).
func LogClassify(format string, args ...interface{}) { Log("CLASSIFY", format, args...) }

// LogEncoding logs an encoding-detector or decode notice (C3/C4).
func LogEncoding(format string, args ...interface{}) { Log("ENCODING", format, args...) }

// LogScan logs a per-file scanner notice (C6).
func LogScan(format string, args ...interface{}) { Log("SCAN", format, args...) }

// LogOrchestrator logs a worker-pool or batching notice (C7).
func LogOrchestrator(format string, args ...interface{}) { Log("ORCHESTRATOR", format, args...) }
