package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum-optimism/infra/op-testkit/reporting"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config is the runner configuration.
type Config struct {
	Log log.Logger
	// Stderr receives the categorized detail report. Defaults to the
	// process error stream.
	Stderr io.Writer
}

// Runner executes suites sequentially, logs the aggregate summary and
// emits the detail report when a run had failures, errors or skips.
type Runner struct {
	log    log.Logger
	stderr io.Writer
	tracer trace.Tracer
}

// New creates a runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided to runner, using default")
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Runner{
		log:    cfg.Log,
		stderr: cfg.Stderr,
		tracer: otel.Tracer("op-testkit/runner"),
	}, nil
}

// Run executes the suite in its current order and returns the aggregated
// result. The summary line is always logged; the failure summary and the
// detail report appear only when the run was unsuccessful or had skips.
func (r *Runner) Run(ctx context.Context, runID string, suite *unit.Suite) *Result {
	_, span := r.tracer.Start(ctx, "suite run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("cases", suite.Len()),
	))
	defer span.End()

	r.log.Debug("Starting suite run", "run_id", runID, "cases", suite.Len())
	result := NewResult(r.log)
	start := time.Now()
	suite.Run(result)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.String("status", result.Status().String()))

	n := result.TestsRun()
	r.log.Info(fmt.Sprintf("Ran %d test%s in %s", n, plural(n), roundDuration(elapsed)))

	if report := buildReport(result); !report.Empty() {
		f := len(report.Failures)
		e := len(report.Errors)
		s := len(report.Skipped)
		r.log.Error(fmt.Sprintf("%d failure%s, %d error%s, %d skipped", f, plural(f), e, plural(e), s))
		reporting.Write(r.stderr, report)
	}
	return result
}

// buildReport converts the result's categorized entries into the render
// model.
func buildReport(result *Result) reporting.Report {
	report := reporting.Report{}
	for _, entry := range result.Skipped() {
		loc := entry.Case.Location()
		report.Skipped = append(report.Skipped, reporting.SkipEntry{
			File:   loc.File,
			Line:   loc.Line,
			Reason: entry.Reason,
		})
	}
	for _, entry := range result.Errors() {
		loc := entry.Case.Location()
		report.Errors = append(report.Errors, reporting.TraceEntry{
			File:  loc.File,
			Line:  loc.Line,
			Trace: entry.Trace,
		})
	}
	for _, entry := range result.Failures() {
		loc := entry.Case.Location()
		report.Failures = append(report.Failures, reporting.TraceEntry{
			File:  loc.File,
			Line:  loc.Line,
			Trace: entry.Trace,
		})
	}
	return report
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func roundDuration(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
