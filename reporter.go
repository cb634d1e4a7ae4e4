package testkit

import (
	"time"

	"github.com/ethereum-optimism/infra/op-testkit/metrics"
	"github.com/ethereum-optimism/infra/op-testkit/runner"
)

// recordMetrics pushes per-case and aggregate outcomes of one run into
// prometheus.
func (k *kit) recordMetrics(runID string, result *runner.Result, duration time.Duration) {
	for _, out := range result.Outcomes() {
		metrics.RecordCase(runID, out.Case.ClassName(), out.Case.MethodName(), out.Status, out.Duration)
	}
	metrics.RecordRun(runID, result.Status(),
		result.Passed(), len(result.Failures()), len(result.Errors()), len(result.Skipped()),
		duration)
}
