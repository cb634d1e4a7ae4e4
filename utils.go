package testkit

import (
	"time"

	"github.com/ethereum-optimism/infra/op-testkit/types"
)

// getResultString returns a short glyph string representing a case result
func getResultString(status types.Status) string {
	switch status {
	case types.StatusPass:
		return "✓ pass"
	case types.StatusSkip:
		return "- skip"
	case types.StatusError:
		return "! error"
	default:
		return "✗ fail"
	}
}

// formatDuration rounds a duration for display
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
