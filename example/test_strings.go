package example

import (
	"strings"

	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

// Bare test functions with module-level fixtures.
func registerStrings(reg *registry.Registry) {
	reg.Module().
		Setup(setupStrings).
		Teardown(teardownStrings).
		Func("TestUpper", TestUpper).
		Func("TestFields", TestFields).
		Func("TestReverse", TestReverse, registry.Disabled("reverse helper not implemented yet"))
}

var words []string

func setupStrings(t *unit.T) {
	words = []string{"unified", "test", "runner"}
}

func teardownStrings(t *unit.T) {
	words = nil
}

func TestUpper(t *unit.T) {
	if got := strings.ToUpper(words[0]); got != "UNIFIED" {
		t.Errorf("unexpected upper case form: %s", got)
	}
}

func TestFields(t *unit.T) {
	require.Equal(t, words, strings.Fields("unified test runner"))
}

func TestReverse(t *unit.T) {
	t.Fatalf("not implemented")
}
