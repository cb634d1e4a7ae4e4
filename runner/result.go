// Package runner executes suites and aggregates their outcomes.
package runner

import (
	"fmt"
	"time"

	"github.com/ethereum-optimism/infra/op-testkit/types"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// SkipEntry records one skipped case with its reason.
type SkipEntry struct {
	Case   *unit.Case
	Reason string
}

// TraceEntry records one failed or errored case with its trace.
type TraceEntry struct {
	Case  *unit.Case
	Trace string
}

// Outcome records the terminal state of one case.
type Outcome struct {
	Case     *unit.Case
	Status   types.Status
	Duration time.Duration
}

// Result aggregates the outcomes of one suite execution. It implements
// unit.Reporter: the suite pushes transitions in, and each terminal event
// is logged as a one-line status message at a severity matching the
// outcome.
type Result struct {
	log log.Logger

	testsRun int
	passed   int
	skipped  []SkipEntry
	failures []TraceEntry
	errors   []TraceEntry
	outcomes []Outcome

	caseStart time.Time
	caseStop  time.Time
}

// NewResult returns an empty result.
func NewResult(logger log.Logger) *Result {
	if logger == nil {
		logger = log.New()
	}
	return &Result{log: logger}
}

var _ unit.Reporter = (*Result)(nil)

// StartCase marks the beginning of a case execution. Skipped cases never
// reach it, so testsRun counts executed cases only.
func (r *Result) StartCase(c *unit.Case) {
	r.log.Debug("Starting case", "case", c.Name())
	r.testsRun++
	r.caseStart = time.Now()
}

// StopCase marks the end of a case execution.
func (r *Result) StopCase(c *unit.Case) {
	r.log.Debug("Finished case", "case", c.Name())
}

// AddSuccess records a passing case.
func (r *Result) AddSuccess(c *unit.Case) {
	r.caseStop = time.Now()
	r.passed++
	r.record(c, types.StatusPass)
	r.log.Info(r.statusMessage(c, types.StatusPass))
}

// AddFailure records an assertion failure.
func (r *Result) AddFailure(c *unit.Case, trace string) {
	r.caseStop = time.Now()
	r.failures = append(r.failures, TraceEntry{Case: c, Trace: trace})
	r.record(c, types.StatusFail)
	r.log.Warn(r.statusMessage(c, types.StatusFail))
}

// AddError records an unexpected runtime error.
func (r *Result) AddError(c *unit.Case, trace string) {
	r.caseStop = time.Now()
	r.errors = append(r.errors, TraceEntry{Case: c, Trace: trace})
	r.record(c, types.StatusError)
	r.log.Error(r.statusMessage(c, types.StatusError))
}

// AddSkip records a case skipped before execution.
func (r *Result) AddSkip(c *unit.Case, reason string) {
	r.caseStart = time.Now()
	r.caseStop = r.caseStart
	r.skipped = append(r.skipped, SkipEntry{Case: c, Reason: reason})
	r.record(c, types.StatusSkip)
	r.log.Info(r.statusMessage(c, types.StatusSkip))
}

func (r *Result) record(c *unit.Case, status types.Status) {
	r.outcomes = append(r.outcomes, Outcome{
		Case:     c,
		Status:   status,
		Duration: r.caseStop.Sub(r.caseStart),
	})
}

// statusMessage renders the fixed-layout per-case status line: elapsed
// seconds, status tag, source position, then class and method.
func (r *Result) statusMessage(c *unit.Case, status types.Status) string {
	elapsed := r.caseStop.Sub(r.caseStart).Seconds()
	loc := c.Location()
	return fmt.Sprintf("%3.3f %5s %s:%-10d %s.%s()",
		elapsed, status.Tag(), loc.File, loc.Line, c.ClassName(), c.MethodName())
}

// TestsRun returns the number of executed (not skipped) cases.
func (r *Result) TestsRun() int { return r.testsRun }

// Passed returns the number of passing cases.
func (r *Result) Passed() int { return r.passed }

// Skipped returns the skipped cases in occurrence order.
func (r *Result) Skipped() []SkipEntry { return r.skipped }

// Failures returns the failed cases in occurrence order.
func (r *Result) Failures() []TraceEntry { return r.failures }

// Errors returns the errored cases in occurrence order.
func (r *Result) Errors() []TraceEntry { return r.errors }

// Outcomes returns every terminal outcome, including skips, in suite
// order.
func (r *Result) Outcomes() []Outcome { return r.outcomes }

// String summarizes the run counts in one line.
func (r *Result) String() string {
	return fmt.Sprintf("ran %d, passed %d, failed %d, errored %d, skipped %d",
		r.testsRun, r.passed, len(r.failures), len(r.errors), len(r.skipped))
}

// WasSuccessful reports whether the run recorded no failures and no
// errors. Skips do not make a run unsuccessful.
func (r *Result) WasSuccessful() bool {
	return len(r.failures) == 0 && len(r.errors) == 0
}

// Status summarizes the run as a single status.
func (r *Result) Status() types.Status {
	switch {
	case len(r.errors) > 0:
		return types.StatusError
	case len(r.failures) > 0:
		return types.StatusFail
	case r.testsRun == 0 && len(r.skipped) > 0:
		return types.StatusSkip
	default:
		return types.StatusPass
	}
}
