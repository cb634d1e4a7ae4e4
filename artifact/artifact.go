// Package artifact normalizes the three test-authoring styles into engine
// cases. A bare function, a conventionally named plain class and a native
// test type are each wrapped by a tagged artifact whose Adapt method
// produces fully located, independently executable cases.
package artifact

import (
	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// Artifact is one raw, not-yet-normalized test-authoring unit.
type Artifact interface {
	// Adapt normalizes the artifact into engine cases, stamping each case
	// with its resolved declaration position in file. It fails with
	// source.ErrUnresolved when a registered symbol has no declaration in
	// the module source.
	Adapt(loc *source.Locator, file string, logger log.Logger) ([]*unit.Case, error)
}

// reservedNames are the members of the Case capability surface. A plain
// class member colliding with one of them is silently dropped instead of
// shadowing engine behavior.
var reservedNames = map[string]struct{}{
	"Run":        {},
	"SetUp":      {},
	"TearDown":   {},
	"Location":   {},
	"ClassName":  {},
	"MethodName": {},
	"Disabled":   {},
	"Name":       {},
}
