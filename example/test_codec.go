package example

import (
	"encoding/json"

	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

// A native case: CodecCase owns its execution protocol, the engine only
// attaches source positions and the skip check before delegating.
func registerCodec(reg *registry.Registry) {
	reg.Module().Case(&CodecCase{})
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CodecCase struct {
	rounds int
}

func (c *CodecCase) RunTest(t *unit.T, method string) {
	c.rounds++
	t.Logf("codec protocol round %d: %s", c.rounds, method)
	switch method {
	case "TestEncode":
		c.TestEncode(t)
	case "TestDecode":
		c.TestDecode(t)
	default:
		t.Fatalf("unknown test method %s", method)
	}
}

func (c *CodecCase) TestEncode(t *unit.T) {
	data, err := json.Marshal(payload{Name: "kit", Count: 3})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"kit","count":3}`, string(data))
}

func (c *CodecCase) TestDecode(t *unit.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"kit","count":3}`), &p))
	require.Equal(t, payload{Name: "kit", Count: 3}, p)
}
