// Package types contains shared types used across the testkit engine.
package types

// Status represents the possible states of a case execution
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// String implements the Stringer interface for Status
func (s Status) String() string {
	return string(s)
}

// Tag returns the short status tag used in per-case status lines.
func (s Status) Tag() string {
	if s == StatusPass {
		return "ok"
	}
	return string(s)
}
