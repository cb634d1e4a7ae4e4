// Package registry holds the test artifacts linked into a binary, keyed
// by module name. A module mirrors one candidate source file: test files
// register their functions, classes and native cases against the module
// for their own file, and discovery later binds candidate files back to
// these registrations.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ethereum-optimism/infra/op-testkit/types"
	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"
)

// Config is the registry configuration.
type Config struct {
	Log log.Logger
	// ConfigFile optionally points at an engine config file carrying
	// convention overrides and declarative disable rules.
	ConfigFile string
	// Conventions overrides individual conventions programmatically.
	// The config file wins over this, and both fall back to defaults.
	Conventions types.Conventions
}

// Registry is a collection of registered test modules.
type Registry struct {
	config      Config
	log         log.Logger
	conventions types.Conventions
	disables    []types.DisableRule

	modules    map[string]*Module
	searchPath []string
	mu         sync.RWMutex
}

// New creates a registry, loading the engine config file when one is
// configured.
func New(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided to registry, using default")
	}
	r := &Registry{
		config:      cfg,
		log:         cfg.Log,
		conventions: cfg.Conventions.WithDefaults(),
		modules:     make(map[string]*Module),
	}
	if cfg.ConfigFile != "" {
		if err := r.loadConfig(cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to load engine config: %w", err)
		}
	}
	return r, nil
}

func (r *Registry) loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg types.EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	r.conventions = mergeConventions(r.conventions, cfg.Conventions)
	r.disables = cfg.Disabled
	r.log.Debug("Loaded engine config", "path", path, "disable_rules", len(cfg.Disabled))
	return nil
}

// mergeConventions overlays non-empty fields of over onto base.
func mergeConventions(base, over types.Conventions) types.Conventions {
	if over.IgnorePrefix != "" {
		base.IgnorePrefix = over.IgnorePrefix
	}
	if over.ModuleExtension != "" {
		base.ModuleExtension = over.ModuleExtension
	}
	if over.ModulePrefix != "" {
		base.ModulePrefix = over.ModulePrefix
	}
	if over.ModuleSuffix != "" {
		base.ModuleSuffix = over.ModuleSuffix
	}
	if over.FuncPrefix != "" {
		base.FuncPrefix = over.FuncPrefix
	}
	if over.ClassPrefix != "" {
		base.ClassPrefix = over.ClassPrefix
	}
	return base
}

// Conventions returns the effective discovery conventions.
func (r *Registry) Conventions() types.Conventions {
	return r.conventions
}

// Module registers (or returns) the module for the calling source file.
// The module name is the file's base name without the module extension,
// so a registration placed inside test_parser.go binds the candidate file
// test_parser.go.
func (r *Registry) Module() *Module {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		panic("registry: unable to determine calling source file")
	}
	return r.ModuleFor(file)
}

// ModuleFor registers (or returns) the module for an explicit source file
// path. Most callers should use Module instead and let the file be
// captured automatically.
func (r *Registry) ModuleFor(file string) *Module {
	name := strings.TrimSuffix(filepath.Base(file), r.conventions.ModuleExtension)

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[name]; ok {
		return m
	}
	r.log.Debug("Registering test module", "module", name, "file", file)
	m := &Module{name: name, file: file, registry: r}
	r.modules[name] = m
	return m
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Modules returns the number of registered modules.
func (r *Registry) Modules() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// PrependSearchPath records dir at the front of the module search path.
// The path is deliberately never rewound: repeated discovery passes
// observe the entries of earlier passes, matching the engine's
// process-wide resolution model.
func (r *Registry) PrependSearchPath(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.searchPath {
		if existing == dir {
			return
		}
	}
	r.searchPath = append([]string{dir}, r.searchPath...)
}

// SearchPath returns the current module search path, most recent first.
func (r *Registry) SearchPath() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.searchPath...)
}

// rulesFor returns the config-file disable rules targeting the module.
func (r *Registry) rulesFor(module string) []types.DisableRule {
	var rules []types.DisableRule
	for _, rule := range r.disables {
		if rule.Module == module {
			rules = append(rules, rule)
		}
	}
	return rules
}
