package sink

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkWriteAndCloseProducesExpectedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, time.Hour) // long interval: exercise explicit flush-on-close
	require.NoError(t, err)

	require.NoError(t, s.WriteBlank())
	require.NoError(t, s.WriteLine("match one"))
	require.NoError(t, s.WriteLine("match two"))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\nmatch one\nmatch two\n", string(data))
}

func TestSinkCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestTempNameDeterministicForSameCounter(t *testing.T) {
	a := TempName(1)
	b := TempName(1)
	assert.Equal(t, a, b)

	c := TempName(2)
	assert.NotEqual(t, a, c)
}

func TestDebugSinkStampsTimestampPidWorker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	d, err := OpenDebugSink(path, time.Hour)
	require.NoError(t, err)

	require.NoError(t, d.WriteLine(3, "skipped binary file c.zip"))
	require.NoError(t, d.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "pid=")
	assert.Contains(t, line, "worker=3")
	assert.Contains(t, line, "skipped binary file c.zip")
}
