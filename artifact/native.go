package artifact

import (
	"reflect"
	"strings"

	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// Native wraps a test type that implements the NativeCase contract. The
// engine attaches only two things on top of the type's own protocol: a
// resolved source position per test method, and the skip check, which
// runs before RunTest is ever entered.
type Native struct {
	Value unit.NativeCase

	// Prefix selects test methods by name.
	Prefix string

	// Disabled is the case-level disable reason. Methods maps method
	// names to method-level reasons, which take precedence.
	Disabled string
	Methods  map[string]string
}

// Adapt produces one case per test method, each delegating execution to
// the value's own RunTest. Method signatures are the value's business,
// so only the name prefix is checked here.
func (n Native) Adapt(loc *source.Locator, file string, logger log.Logger) ([]*unit.Case, error) {
	rv := reflect.ValueOf(n.Value)
	className := indirectTypeName(rv.Type())
	logger.Debug("Adapting native case", "class", className, "file", file)

	disabled := n.Disabled
	if d, ok := n.Value.(unit.Disabler); ok && d.Disabled() != "" {
		disabled = d.Disabled()
	}

	var cases []*unit.Case
	for i := 0; i < rv.NumMethod(); i++ {
		name := rv.Type().Method(i).Name
		if !strings.HasPrefix(name, n.Prefix) || name == "RunTest" {
			continue
		}
		position, err := loc.Resolve(file, className+"."+name)
		if err != nil {
			return nil, err
		}
		method := name
		c, err := unit.NewCase(
			className+"."+name,
			position,
			className,
			name,
			func(t *unit.T) { n.Value.RunTest(t, method) },
			unit.WithDisabled(disabled),
			unit.WithMethodDisabled(n.Methods[name]),
			unit.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}
