// Package unit defines the normalized Case model every authoring style
// adapts to, and the execution scope test bodies run against.
package unit

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// T is the execution scope handed to test bodies and fixture hooks. It is
// deliberately close to testing.T, so assertion helpers written against
// that shape (including testify's assert and require packages) work
// unchanged.
type T struct {
	log    log.Logger
	failed bool
	msgs   []string
}

func newT(logger log.Logger) *T {
	return &T{log: logger}
}

// Errorf records a failure message and marks the scope failed without
// stopping the test body.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.msgs = append(t.msgs, fmt.Sprintf(format, args...))
}

// FailNow marks the scope failed and aborts the current phase
// immediately. The runner recovers the abort and records a failure, not
// an error.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Fatalf records a failure message and aborts the current phase.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.msgs = append(t.msgs, fmt.Sprintf(format, args...))
	t.FailNow()
}

// Failed reports whether the scope recorded any failure.
func (t *T) Failed() bool {
	return t.failed
}

// Logf writes a message to the engine's debug log.
func (t *T) Logf(format string, args ...interface{}) {
	if t.log != nil {
		t.log.Debug(fmt.Sprintf(format, args...))
	}
}

// failureTrace renders the recorded failure messages for the detail
// report.
func (t *T) failureTrace() string {
	if len(t.msgs) == 0 {
		return "test failed with no failure message"
	}
	trace := ""
	for i, msg := range t.msgs {
		if i > 0 {
			trace += "\n"
		}
		trace += msg
	}
	return trace
}
