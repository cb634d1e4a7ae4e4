package testkit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsTitleNamesGoModule(t *testing.T) {
	dir := t.TempDir()
	gomod := "module example.com/widgets\n\ngo 1.22\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	reg := newEmptyRegistry(t)
	var stderr bytes.Buffer
	k := newTestKit(t, dir, reg, &stderr)

	title := k.resultsTitle("run-1", 1500*time.Millisecond)
	assert.Equal(t, "Test Results for example.com/widgets run-1 (1.5s)", title)
}

func TestResultsTitleWithoutGoModule(t *testing.T) {
	reg := newEmptyRegistry(t)
	var stderr bytes.Buffer
	k := newTestKit(t, t.TempDir(), reg, &stderr)

	title := k.resultsTitle("run-1", 2*time.Second)
	assert.Equal(t, "Test Results run-1 (2s)", title)
}
