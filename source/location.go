// Package source resolves the defining source positions of test
// artifacts and supplies the total order used to sort suites.
package source

import (
	"fmt"
	"strings"
)

// Location is the defining source position of a test artifact.
type Location struct {
	File string
	Line int
}

// String implements the Stringer interface for Location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// IsZero reports whether the location carries no position.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// Compare orders two locations for suite sorting. Files compare as plain
// strings, lines numerically within the same file. It returns a negative
// value when a sorts before b, zero when they are equal, and a positive
// value otherwise.
func Compare(a, b Location) int {
	if c := strings.Compare(a.File, b.File); c != 0 {
		return c
	}
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	}
	return 0
}
