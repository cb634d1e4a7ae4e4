// Package example bundles small test modules in all three authoring
// styles. Point the binary at this directory to run them:
//
//	op-testkit ./example
//
// Discovery of the repository root would abort instead, because the
// engine's own _test.go files match the module naming conventions
// without being registered.
package example

import "github.com/ethereum-optimism/infra/op-testkit/registry"

// Register binds every bundled module into the registry.
func Register(reg *registry.Registry) {
	registerStrings(reg)
	registerParser(reg)
	registerCodec(reg)
}
