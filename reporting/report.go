// Package reporting renders the categorized detail report written to the
// error stream after an unsuccessful or partially skipped run.
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
)

const separatorWidth = 70

// SkipEntry describes one skipped case.
type SkipEntry struct {
	File   string
	Line   int
	Reason string
}

// TraceEntry describes one failed or errored case together with its
// failure trace.
type TraceEntry struct {
	File  string
	Line  int
	Trace string
}

// Report is the categorized outcome detail of one run.
type Report struct {
	Skipped  []SkipEntry
	Errors   []TraceEntry
	Failures []TraceEntry
}

// Empty reports whether there is nothing to render.
func (r Report) Empty() bool {
	return len(r.Skipped) == 0 && len(r.Errors) == 0 && len(r.Failures) == 0
}

// Write renders the report. The section order is fixed: Skipped, Errors,
// Failures. Empty sections are omitted entirely. Traces are stripped of
// ANSI escape sequences so the report stays readable when redirected.
func Write(w io.Writer, r Report) {
	if len(r.Skipped) > 0 {
		writeHeader(w, "Skipped")
		for _, entry := range r.Skipped {
			writeDivider(w)
			fmt.Fprintf(w, "%s:%d\n    reason:\t%s\n", entry.File, entry.Line, entry.Reason)
		}
	}
	writeTraceSection(w, "Errors", r.Errors)
	writeTraceSection(w, "Failures", r.Failures)
}

func writeTraceSection(w io.Writer, title string, entries []TraceEntry) {
	if len(entries) == 0 {
		return
	}
	writeHeader(w, title)
	for _, entry := range entries {
		writeDivider(w)
		fmt.Fprintf(w, "%s:%d\n\n%s\n", entry.File, entry.Line, stripansi.Strip(entry.Trace))
	}
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", separatorWidth))
	fmt.Fprintf(w, "%s\n", strings.ToUpper(title)+":")
}

func writeDivider(w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", separatorWidth))
}
