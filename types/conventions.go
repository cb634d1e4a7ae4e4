package types

// Conventions holds the name patterns that drive module and case
// discovery. Every field can be overridden from the engine config file;
// empty fields fall back to the defaults.
type Conventions struct {
	// IgnorePrefix marks directories that are pruned from the walk.
	IgnorePrefix string `yaml:"ignore_prefix"`
	// ModuleExtension is the file extension candidate modules must carry.
	ModuleExtension string `yaml:"module_extension"`
	// ModulePrefix and ModuleSuffix select candidate files by base name.
	// A file qualifies when its base name matches either one.
	ModulePrefix string `yaml:"module_prefix"`
	ModuleSuffix string `yaml:"module_suffix"`
	// FuncPrefix selects test functions and test methods by name.
	FuncPrefix string `yaml:"func_prefix"`
	// ClassPrefix selects test classes by type name.
	ClassPrefix string `yaml:"class_prefix"`
}

// DefaultConventions returns the built-in discovery conventions.
func DefaultConventions() Conventions {
	return Conventions{
		IgnorePrefix:    ".",
		ModuleExtension: ".go",
		ModulePrefix:    "test_",
		ModuleSuffix:    "_test",
		FuncPrefix:      "Test",
		ClassPrefix:     "Test",
	}
}

// WithDefaults fills any empty field from the defaults and returns the
// completed set.
func (c Conventions) WithDefaults() Conventions {
	d := DefaultConventions()
	if c.IgnorePrefix == "" {
		c.IgnorePrefix = d.IgnorePrefix
	}
	if c.ModuleExtension == "" {
		c.ModuleExtension = d.ModuleExtension
	}
	if c.ModulePrefix == "" {
		c.ModulePrefix = d.ModulePrefix
	}
	if c.ModuleSuffix == "" {
		c.ModuleSuffix = d.ModuleSuffix
	}
	if c.FuncPrefix == "" {
		c.FuncPrefix = d.FuncPrefix
	}
	if c.ClassPrefix == "" {
		c.ClassPrefix = d.ClassPrefix
	}
	return c
}
