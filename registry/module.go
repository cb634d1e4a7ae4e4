package registry

import (
	"github.com/ethereum-optimism/infra/op-testkit/artifact"
	"github.com/ethereum-optimism/infra/op-testkit/types"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

// Module mirrors one candidate source file's namespace. Registrations
// keep their order within each kind; the cross-module execution order is
// decided solely by the suite sort.
type Module struct {
	name     string
	file     string
	registry *Registry

	funcs    []funcReg
	classes  []valueReg
	natives  []nativeReg
	setup    unit.Func
	teardown unit.Func
}

type funcReg struct {
	name     string
	fn       unit.Func
	disabled string
}

type valueReg struct {
	value    interface{}
	disabled string
	methods  map[string]string
}

type nativeReg struct {
	value    unit.NativeCase
	disabled string
	methods  map[string]string
}

// Option customizes a registration.
type Option func(*regOpts)

type regOpts struct {
	disabled string
	methods  map[string]string
}

// Disabled marks the registered artifact disabled with a reason. The
// artifact is still discovered and reported, but never executed.
func Disabled(reason string) Option {
	return func(o *regOpts) {
		o.disabled = reason
	}
}

// DisableMethod marks a single method of a class or native case disabled
// with a reason. Method-level markers win over artifact-level and
// module-wide ones.
func DisableMethod(name, reason string) Option {
	return func(o *regOpts) {
		if o.methods == nil {
			o.methods = make(map[string]string)
		}
		o.methods[name] = reason
	}
}

func applyOpts(opts []Option) regOpts {
	var o regOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// File returns the source file the module was registered from.
func (m *Module) File() string { return m.file }

// Func registers a bare test function under the given name. The name must
// match the function's declared name, since the declaration is what the
// locator resolves.
func (m *Module) Func(name string, fn unit.Func, opts ...Option) *Module {
	o := applyOpts(opts)
	m.funcs = append(m.funcs, funcReg{name: name, fn: fn, disabled: o.disabled})
	return m
}

// Setup registers the module-level fixture run before each bare test
// function.
func (m *Module) Setup(fn unit.Func) *Module {
	m.setup = fn
	return m
}

// Teardown registers the module-level fixture run after each bare test
// function.
func (m *Module) Teardown(fn unit.Func) *Module {
	m.teardown = fn
	return m
}

// Class registers a plain test class value. Its type name should carry
// the class prefix; its prefixed methods become cases.
func (m *Module) Class(value interface{}, opts ...Option) *Module {
	o := applyOpts(opts)
	m.classes = append(m.classes, valueReg{value: value, disabled: o.disabled, methods: o.methods})
	return m
}

// Case registers a native test case value, which keeps its own execution
// protocol.
func (m *Module) Case(value unit.NativeCase, opts ...Option) *Module {
	o := applyOpts(opts)
	m.natives = append(m.natives, nativeReg{value: value, disabled: o.disabled, methods: o.methods})
	return m
}

// Artifacts assembles the module's registrations into adapters, applying
// the engine config's disable rules on top of the in-code markers. Native
// cases come first, then plain classes, then bare functions; the final
// order across modules is still decided by the suite sort.
func (m *Module) Artifacts() []artifact.Artifact {
	conv := m.registry.Conventions()
	rules := m.registry.rulesFor(m.name)

	artifacts := make([]artifact.Artifact, 0, len(m.natives)+len(m.classes)+len(m.funcs))
	for _, reg := range m.natives {
		disabled, methods := overlayRules(rules, artifact.TypeName(reg.value), reg.disabled, reg.methods)
		artifacts = append(artifacts, artifact.Native{
			Value:    reg.value,
			Prefix:   conv.FuncPrefix,
			Disabled: disabled,
			Methods:  methods,
		})
	}
	for _, reg := range m.classes {
		disabled, methods := overlayRules(rules, artifact.TypeName(reg.value), reg.disabled, reg.methods)
		artifacts = append(artifacts, artifact.Class{
			Value:       reg.value,
			Prefix:      conv.FuncPrefix,
			ClassPrefix: conv.ClassPrefix,
			Disabled:    disabled,
			Methods:     methods,
		})
	}
	for _, reg := range m.funcs {
		disabled := reg.disabled
		moduleDisabled := ""
		for _, rule := range rules {
			switch {
			case rule.Case == "":
				moduleDisabled = rule.Reason
			case rule.Case == reg.name && rule.Method == "":
				disabled = rule.Reason
			}
		}
		artifacts = append(artifacts, artifact.Func{
			Name:           reg.name,
			Fn:             reg.fn,
			ModuleName:     m.name,
			Setup:          m.setup,
			Teardown:       m.teardown,
			Disabled:       disabled,
			ModuleDisabled: moduleDisabled,
		})
	}
	return artifacts
}

// overlayRules folds matching config rules into a class or native
// registration's disable markers.
func overlayRules(rules []types.DisableRule, className, disabled string, methods map[string]string) (string, map[string]string) {
	for _, rule := range rules {
		switch {
		case rule.Case == "":
			if disabled == "" {
				disabled = rule.Reason
			}
		case rule.Case == className && rule.Method == "":
			disabled = rule.Reason
		case rule.Case == className:
			if methods == nil {
				methods = make(map[string]string)
			}
			methods[rule.Method] = rule.Reason
		}
	}
	return disabled, methods
}
