// Package metrics exposes prometheus metrics for suite runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/ethereum-optimism/infra/op-testkit/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsNamespace = "testkit"

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of engine errors by type",
	}, []string{"error"})

	casesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "cases_total",
		Help:      "Count of executed cases by class, method and result",
	}, []string{"run_id", "class", "method", "result"})

	caseDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "case_duration_seconds",
		Help:      "Duration of the last execution of each case",
	}, []string{"run_id", "class", "method"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "runs_total",
		Help:      "Count of suite runs by overall result",
	}, []string{"result"})

	runCases = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_cases",
		Help:      "Case counts of the last suite run by result",
	}, []string{"run_id", "result"})

	runDurationSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of the last suite run",
	}, []string{"run_id"})
)

// RecordError increments the error counter for a given error type.
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}

// RecordErrorDetails concatenates the error to the label and records it.
func RecordErrorDetails(label string, err error) {
	RecordError(fmt.Sprintf("%s.%s", label, err))
}

// RecordCase records the terminal outcome and duration of one case.
func RecordCase(runID, class, method string, status types.Status, duration time.Duration) {
	casesTotal.WithLabelValues(runID, class, method, status.String()).Inc()
	caseDurationSeconds.WithLabelValues(runID, class, method).Set(duration.Seconds())
}

// RecordRun records the aggregate outcome of one suite run.
func RecordRun(runID string, status types.Status, passed, failed, errored, skipped int, duration time.Duration) {
	runsTotal.WithLabelValues(status.String()).Inc()
	runCases.WithLabelValues(runID, types.StatusPass.String()).Set(float64(passed))
	runCases.WithLabelValues(runID, types.StatusFail.String()).Set(float64(failed))
	runCases.WithLabelValues(runID, types.StatusError.String()).Set(float64(errored))
	runCases.WithLabelValues(runID, types.StatusSkip.String()).Set(float64(skipped))
	runDurationSeconds.WithLabelValues(runID).Set(duration.Seconds())
}
