package types

// EngineConfig is the YAML shape of the optional engine config file. It
// carries convention overrides plus declarative disable rules applied on
// top of the markers registered in code.
type EngineConfig struct {
	Conventions Conventions   `yaml:"conventions"`
	Disabled    []DisableRule `yaml:"disabled"`
}

// DisableRule disables a module, class, function or single method with a
// reason. Case names a test function or a test class; Method narrows a
// class rule to one method. An empty Case disables the whole module.
type DisableRule struct {
	Module string `yaml:"module"`
	Case   string `yaml:"case,omitempty"`
	Method string `yaml:"method,omitempty"`
	Reason string `yaml:"reason"`
}
