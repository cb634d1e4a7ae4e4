package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSkipSection(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Report{
		Skipped: []SkipEntry{{File: "test_a.go", Line: 12, Reason: "not ready"}},
	})

	out := buf.String()
	assert.Contains(t, out, "\n"+strings.Repeat("=", 70)+"\nSKIPPED:\n")
	assert.Contains(t, out, strings.Repeat("-", 70)+"\ntest_a.go:12\n    reason:\tnot ready\n")
	assert.NotContains(t, out, "ERRORS:")
	assert.NotContains(t, out, "FAILURES:")
}

func TestWriteSectionOrder(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Report{
		Skipped:  []SkipEntry{{File: "test_a.go", Line: 1, Reason: "r"}},
		Errors:   []TraceEntry{{File: "test_a.go", Line: 2, Trace: "boom"}},
		Failures: []TraceEntry{{File: "test_a.go", Line: 3, Trace: "nope"}},
	})

	out := buf.String()
	skipped := strings.Index(out, "SKIPPED:")
	errored := strings.Index(out, "ERRORS:")
	failed := strings.Index(out, "FAILURES:")

	assert.GreaterOrEqual(t, skipped, 0)
	assert.Greater(t, errored, skipped)
	assert.Greater(t, failed, errored)
}

func TestWriteTraceLayout(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Report{
		Failures: []TraceEntry{{File: "test_a.go", Line: 7, Trace: "want 1, got 2"}},
	})

	assert.Contains(t, buf.String(), "test_a.go:7\n\nwant 1, got 2\n")
}

func TestWriteStripsANSISequences(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Report{
		Errors: []TraceEntry{{File: "test_a.go", Line: 9, Trace: "\x1b[31mboom\x1b[0m"}},
	})

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteMultipleEntriesShareOneHeader(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Report{
		Failures: []TraceEntry{
			{File: "test_a.go", Line: 5, Trace: "first"},
			{File: "test_a.go", Line: 10, Trace: "second"},
		},
	})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "FAILURES:"))
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 70)))
}

func TestEmpty(t *testing.T) {
	assert.True(t, Report{}.Empty())
	assert.False(t, Report{Skipped: []SkipEntry{{}}}.Empty())

	var buf bytes.Buffer
	Write(&buf, Report{})
	assert.Empty(t, buf.String())
}
