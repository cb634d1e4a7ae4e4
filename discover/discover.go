// Package discover walks directory trees for candidate test modules and
// binds them to their registered artifacts, producing a deterministically
// ordered suite.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/types"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
	"github.com/ethereum/go-ethereum/log"
)

// Config is the discoverer configuration.
type Config struct {
	Registry *registry.Registry
	Log      log.Logger
}

// Discoverer walks directories and assembles suites. One discoverer keeps
// one locator, so repeated passes share parsed sources.
type Discoverer struct {
	registry *registry.Registry
	locator  *source.Locator
	conv     types.Conventions
	log      log.Logger
}

// New creates a discoverer bound to a registry.
func New(cfg Config) (*Discoverer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided to discoverer, using default")
	}
	return &Discoverer{
		registry: cfg.Registry,
		locator:  source.NewLocator(),
		conv:     cfg.Registry.Conventions(),
		log:      cfg.Log,
	}, nil
}

// FromDirectory walks dir recursively, pruning ignored directories, and
// returns the suite of every case found in candidate modules, sorted by
// source position. Any candidate that cannot be bound or adapted aborts
// the whole pass: a partially discovered suite would silently change the
// meaning of a run.
func (d *Discoverer) FromDirectory(dir string) (*unit.Suite, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("examining %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	d.log.Debug("Discovering tests", "dir", root, "go_module", ModulePath(root))

	suite := unit.NewSuite()
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), d.conv.IgnorePrefix) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.isCandidate(entry.Name()) {
			return nil
		}
		moduleSuite, err := d.loadModule(path)
		if err != nil {
			return err
		}
		suite.AddSuite(moduleSuite)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering tests in %s: %w", dir, err)
	}

	suite.Sort()
	d.log.Debug("Discovery complete", "dir", root, "cases", suite.Len())
	return suite, nil
}

// isCandidate applies the module naming conventions to a file name: the
// extension must match, and the remaining base name must carry the module
// prefix or the module suffix.
func (d *Discoverer) isCandidate(name string) bool {
	if !strings.HasSuffix(name, d.conv.ModuleExtension) {
		return false
	}
	base := strings.TrimSuffix(name, d.conv.ModuleExtension)
	if base == "" {
		return false
	}
	return strings.HasPrefix(base, d.conv.ModulePrefix) || strings.HasSuffix(base, d.conv.ModuleSuffix)
}

// loadModule binds one candidate file to its registration and adapts its
// artifacts into cases. Native cases adapt first, then plain classes,
// then bare functions; the global sort has the final say on order.
func (d *Discoverer) loadModule(path string) (*unit.Suite, error) {
	d.registry.PrependSearchPath(filepath.Dir(path))

	name := strings.TrimSuffix(filepath.Base(path), d.conv.ModuleExtension)
	d.log.Debug("Loading candidate module", "module", name, "file", path)

	module, ok := d.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("module %s (%s) is not registered in this binary", name, path)
	}
	if err := d.locator.Load(path); err != nil {
		return nil, fmt.Errorf("loading module %s: %w", name, err)
	}

	suite := unit.NewSuite()
	for _, art := range module.Artifacts() {
		cases, err := art.Adapt(d.locator, path, d.log)
		if err != nil {
			return nil, fmt.Errorf("adapting module %s: %w", name, err)
		}
		suite.Add(cases...)
	}
	return suite, nil
}
