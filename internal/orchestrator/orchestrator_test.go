package orchestrator

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/gscan/internal/encoding"
	"github.com/standardbeagle/gscan/internal/magic"
	"github.com/standardbeagle/gscan/internal/scanner"
	"github.com/standardbeagle/gscan/internal/types"
)

// collectingSink is an in-memory stand-in for sink.Sink, preserving
// the exact order WriteLine was called in.
type collectingSink struct {
	mu    sync.Mutex
	lines []string
}

func (c *collectingSink) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	return nil
}

func newConfig(re *regexp.Regexp, parallelism int) *types.ScanConfig {
	return &types.ScanConfig{
		Regex:       re,
		TextOnly:    true,
		Signatures:  magic.NewDefaultTable(),
		CodePage:    types.ASCII,
		Parallelism: parallelism,
	}
}

func TestOrchestratorRunPreservesSubmissionOrderAcrossBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var files []string
	for i := 0; i < 7; i++ {
		path := filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(path, []byte("needle\n"), 0644))
		files = append(files, path)
	}

	o := New(scanner.New(encoding.NewRegistry()))
	cfg := newConfig(regexp.MustCompile("needle"), 2) // batch size 4, forces two batches

	out := &collectingSink{}
	total, err := o.Run(files, cfg, out, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, out.lines, 7)

	for i, line := range out.lines {
		assert.Contains(t, line, files[i])
	}
}

func TestOrchestratorRunSkipsFilesWithoutMatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	matchPath := filepath.Join(dir, "match.txt")
	missPath := filepath.Join(dir, "miss.txt")
	require.NoError(t, os.WriteFile(matchPath, []byte("needle here\n"), 0644))
	require.NoError(t, os.WriteFile(missPath, []byte("nothing here\n"), 0644))

	o := New(scanner.New(encoding.NewRegistry()))
	cfg := newConfig(regexp.MustCompile("needle"), 4)

	out := &collectingSink{}
	total, err := o.Run([]string{matchPath, missPath}, cfg, out, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out.lines, 1)
	assert.Contains(t, out.lines[0], matchPath)
}

func TestOrchestratorRunReportsProgressForEveryJob(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var files []string
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, "f"+string(rune('0'+i))+".txt")
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
		files = append(files, path)
	}

	o := New(scanner.New(encoding.NewRegistry()))
	cfg := newConfig(regexp.MustCompile("x"), 8)

	var mu sync.Mutex
	var completedSeen []int
	progress := func(completed, total int, elapsed time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		completedSeen = append(completedSeen, completed)
		assert.Equal(t, 3, total)
	}

	out := &collectingSink{}
	_, err := o.Run(files, cfg, out, nil, progress)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, completedSeen)
}

func TestOrchestratorRunSuppressesProgressWhenQuiet(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	o := New(scanner.New(encoding.NewRegistry()))
	cfg := newConfig(regexp.MustCompile("x"), 4)
	cfg.Quiet = true

	called := false
	out := &collectingSink{}
	_, err := o.Run([]string{path}, cfg, out, nil, func(completed, total int, elapsed time.Duration) {
		called = true
	})
	require.NoError(t, err)
	assert.False(t, called)
}
