package artifact

import (
	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// Func wraps a bare test function registered at module level. The module
// name stands in as the class name so reports stay uniform across styles.
type Func struct {
	Name       string
	Fn         unit.Func
	ModuleName string

	// Setup and Teardown are the module-level fixture hooks shared by all
	// functions of the module.
	Setup    unit.Func
	Teardown unit.Func

	// Disabled is the function's own disable marker. ModuleDisabled is
	// inherited from a module-wide rule and is overridden by Disabled.
	Disabled       string
	ModuleDisabled string
}

// Adapt wraps the function into a single case located at the function's
// declaration.
func (f Func) Adapt(loc *source.Locator, file string, logger log.Logger) ([]*unit.Case, error) {
	logger.Debug("Adapting test function", "function", f.Name, "file", file)
	position, err := loc.Resolve(file, f.Name)
	if err != nil {
		return nil, err
	}
	c, err := unit.NewCase(
		f.ModuleName+"."+f.Name,
		position,
		f.ModuleName,
		f.Name,
		f.Fn,
		unit.WithHooks(f.Setup, f.Teardown),
		unit.WithDisabled(f.ModuleDisabled),
		unit.WithMethodDisabled(f.Disabled),
		unit.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return []*unit.Case{c}, nil
}
