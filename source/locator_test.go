package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `package sample

// TestOne checks one thing.

func TestOne(t *T) {}

type TestParser struct{}

func (p *TestParser) TestHeader(t *T) {}

func (p TestParser) TestFooter(t *T) {}
`

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveFunction(t *testing.T) {
	path := writeSource(t, "test_sample.go", sampleSource)
	loc := NewLocator()

	position, err := loc.Resolve(path, "TestOne")
	require.NoError(t, err)
	assert.Equal(t, path, position.File)
	assert.Equal(t, 5, position.Line)
}

func TestResolveMethod(t *testing.T) {
	path := writeSource(t, "test_sample.go", sampleSource)
	loc := NewLocator()

	position, err := loc.Resolve(path, "TestParser.TestHeader")
	require.NoError(t, err)
	assert.Equal(t, 9, position.Line)

	// Value receivers resolve the same way as pointer receivers.
	position, err = loc.Resolve(path, "TestParser.TestFooter")
	require.NoError(t, err)
	assert.Equal(t, 11, position.Line)
}

func TestResolveMissingSymbol(t *testing.T) {
	path := writeSource(t, "test_sample.go", sampleSource)
	loc := NewLocator()

	_, err := loc.Resolve(path, "TestMissing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))

	// A method name without its receiver does not match the declaration.
	_, err = loc.Resolve(path, "TestHeader")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolved))
}

func TestLoadBrokenSource(t *testing.T) {
	path := writeSource(t, "test_broken.go", "package {\n")
	loc := NewLocator()

	err := loc.Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnresolved))
}

func TestLoadCachesParsedFiles(t *testing.T) {
	path := writeSource(t, "test_sample.go", sampleSource)
	loc := NewLocator()
	require.NoError(t, loc.Load(path))

	// Rewriting the file on disk does not invalidate the cache.
	require.NoError(t, os.WriteFile(path, []byte("package {\n"), 0o644))
	require.NoError(t, loc.Load(path))

	position, err := loc.Resolve(path, "TestOne")
	require.NoError(t, err)
	assert.Equal(t, 5, position.Line)
}

func TestCompare(t *testing.T) {
	a := Location{File: "a_test.go", Line: 10}
	b := Location{File: "b_test.go", Line: 1}

	assert.Negative(t, Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(a, a))

	earlier := Location{File: "a_test.go", Line: 3}
	assert.Positive(t, Compare(a, earlier))
	assert.Negative(t, Compare(earlier, a))
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "test_a.go:5", Location{File: "test_a.go", Line: 5}.String())
	assert.True(t, Location{}.IsZero())
	assert.False(t, Location{File: "test_a.go", Line: 5}.IsZero())
}
