package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestoreState() func() {
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestEnabledReflectsOutput(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	assert.False(t, Enabled())

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.True(t, Enabled())
}

func TestLogNoopWithoutOutput(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	LogScan("file %s", "a.txt") // must not panic, must not allocate a writer
}

func TestLogWritesComponentTag(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)

	LogClassify("skipped %s", "b.zip")
	LogEncoding("detected %s", "SJIS")
	LogOrchestrator("batch %d/%d", 1, 4)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG:CLASSIFY] skipped b.zip")
	assert.Contains(t, out, "[DEBUG:ENCODING] detected SJIS")
	assert.Contains(t, out, "[DEBUG:ORCHESTRATOR] batch 1/4")
}
