// Package exitcodes defines the process exit codes of the engine.
package exitcodes

const (
	// Success means every executed case passed.
	Success = 0
	// TestFailure means the run completed but had failing or erroring
	// cases.
	TestFailure = 1
	// RuntimeErr means the engine itself failed, for example a discovery
	// failure or bad configuration.
	RuntimeErr = 2
)
