package example

import (
	"strconv"

	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

// A plain test class: the conventional type name makes its prefixed
// methods cases, per-method fixtures come from the Setup/Teardown
// contracts.
func registerParser(reg *registry.Registry) {
	reg.Module().Class(&TestParser{})
}

type TestParser struct {
	inputs map[string]int
}

func (p *TestParser) SetupMethod(t *unit.T, method string) {
	t.Logf("setting up %s", method)
	p.inputs = map[string]int{"0": 0, "42": 42, "-7": -7}
}

func (p *TestParser) TeardownMethod(t *unit.T, method string) {
	p.inputs = nil
}

func (p *TestParser) TestParseInt(t *unit.T) {
	for s, want := range p.inputs {
		got, err := strconv.Atoi(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func (p *TestParser) TestParseIntRejectsWords(t *unit.T) {
	_, err := strconv.Atoi("forty-two")
	require.Error(t, err)
}
