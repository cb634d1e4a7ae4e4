package artifact

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// Class wraps a plain test class: a registered value whose type name
// carries the class prefix. Its exported methods matching the function
// prefix become cases, per-method fixtures come from the MethodSetup and
// MethodTeardown contracts, and members colliding with the Case surface
// are dropped.
type Class struct {
	Value interface{}

	// Prefix selects test methods by name.
	Prefix string

	// ClassPrefix is the naming convention the type itself must carry.
	// Empty means unconstrained.
	ClassPrefix string

	// Disabled is the class-level disable reason. Methods maps method
	// names to method-level reasons, which take precedence.
	Disabled string
	Methods  map[string]string
}

// Adapt enumerates the class's test methods into cases, one per method,
// each located at the method's declaration. Methods share the receiver
// value but nothing else: fixtures run per case.
func (cl Class) Adapt(loc *source.Locator, file string, logger log.Logger) ([]*unit.Case, error) {
	rv := reflect.ValueOf(cl.Value)
	className := indirectTypeName(rv.Type())
	if cl.ClassPrefix != "" && !strings.HasPrefix(className, cl.ClassPrefix) {
		return nil, fmt.Errorf("test class %s does not carry the class prefix %q", className, cl.ClassPrefix)
	}
	logger.Debug("Adapting test class", "class", className, "file", file)

	disabled := cl.Disabled
	if d, ok := cl.Value.(unit.Disabler); ok && d.Disabled() != "" {
		disabled = d.Disabled()
	}

	var cases []*unit.Case
	for i := 0; i < rv.NumMethod(); i++ {
		name := rv.Type().Method(i).Name
		if _, reserved := reservedNames[name]; reserved {
			logger.Debug("Dropping reserved class member", "class", className, "member", name)
			continue
		}
		if !strings.HasPrefix(name, cl.Prefix) {
			continue
		}
		body, ok := rv.Method(i).Interface().(func(t *unit.T))
		if !ok {
			return nil, fmt.Errorf("test method %s.%s has unsupported signature %s", className, name, rv.Method(i).Type())
		}

		position, err := loc.Resolve(file, className+"."+name)
		if err != nil {
			return nil, err
		}
		c, err := unit.NewCase(
			className+"."+name,
			position,
			className,
			name,
			body,
			unit.WithHooks(methodHooks(cl.Value, name)),
			unit.WithDisabled(disabled),
			unit.WithMethodDisabled(cl.Methods[name]),
			unit.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// methodHooks binds the class's per-method fixtures, when present, to one
// method name.
func methodHooks(value interface{}, method string) (setUp, tearDown unit.Func) {
	if ms, ok := value.(unit.MethodSetup); ok {
		setUp = func(t *unit.T) { ms.SetupMethod(t, method) }
	}
	if mt, ok := value.(unit.MethodTeardown); ok {
		tearDown = func(t *unit.T) { mt.TeardownMethod(t, method) }
	}
	return setUp, tearDown
}

// TypeName returns the bare type name of a registered value, looking
// through pointers.
func TypeName(value interface{}) string {
	return indirectTypeName(reflect.TypeOf(value))
}

func indirectTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
