// Package testkit is a unified test discovery and execution engine. It
// discovers test modules registered against conventionally named source
// files, normalizes bare functions, plain test classes and native test
// cases into one Case model, executes them in deterministic source order
// and reports categorized results.
package testkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/op-testkit/discover"
	"github.com/ethereum-optimism/infra/op-testkit/exitcodes"
	"github.com/ethereum-optimism/infra/op-testkit/metrics"
	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/runner"
	"github.com/ethereum-optimism/infra/op-testkit/ui"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// kit implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &kit{}

// kit is the test engine service: it discovers, runs and reports tests,
// once or periodically.
type kit struct {
	ctx        context.Context
	config     *Config
	version    string
	registry   *registry.Registry
	discoverer *discover.Discoverer
	runner     *runner.Runner
	result     *runner.Result

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

// New creates the engine service from a populated config.
func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*kit, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating testkit with config",
		"testDir", config.TestDir,
		"engineConfig", config.EngineConfig,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce,
		"listOnly", config.ListOnly,
		"modules", config.Registry.Modules())

	discoverer, err := discover.New(discover.Config{
		Registry: config.Registry,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discoverer: %w", err)
	}

	testRunner, err := runner.New(runner.Config{
		Log:    config.Log,
		Stderr: config.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &kit{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         config.Registry,
		discoverer:       discoverer,
		runner:           testRunner,
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the tests once, then either exits or keeps re-running them
// at the configured interval.
// Start implements the cliapp.Lifecycle interface.
func (k *kit) Start(ctx context.Context) error {
	// Panics outside case execution are engine bugs, exit code 2
	defer func() {
		if r := recover(); r != nil {
			k.config.Log.Error("Runtime error occurred", "error", r)
			os.Exit(exitcodes.RuntimeErr)
		}
	}()

	k.ctx = ctx
	k.done = make(chan struct{})
	k.running.Store(true)

	if k.config.ListOnly {
		return k.listTests()
	}

	if k.config.RunOnce {
		k.config.Log.Info("Starting op-testkit in run-once mode")
	} else {
		k.config.Log.Info("Starting op-testkit in continuous mode", "interval", k.config.RunInterval)
	}

	// Run tests immediately on startup
	if err := k.runTests(); err != nil {
		k.config.Log.Error("Runtime error running tests", "error", err)
		return cli.Exit(err.Error(), exitcodes.RuntimeErr)
	}

	if k.config.RunOnce {
		k.config.Log.Info("Tests completed, exiting (run-once mode)")

		if k.result != nil && !k.result.WasSuccessful() {
			k.config.Log.Warn("Run-once test run completed with failures, returning exit code 1")
			return NewTestFailureError(k.result.String())
		}

		go func() {
			k.shutdownCallback(nil)
		}()
		return nil
	}

	// Periodic execution until stopped
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		k.config.Log.Debug("Starting periodic test runner goroutine", "interval", k.config.RunInterval)

		for {
			select {
			case <-time.After(k.config.RunInterval):
				if !k.running.Load() {
					k.config.Log.Debug("Service stopped, exiting periodic test runner")
					return
				}
				k.config.Log.Info("Running periodic tests")
				if err := k.runTests(); err != nil {
					k.config.Log.Error("Error running periodic tests", "error", err)
				}

			case <-k.done:
				k.config.Log.Debug("Done signal received, stopping periodic test runner")
				return

			case <-ctx.Done():
				k.config.Log.Debug("Context canceled, stopping periodic test runner")
				k.running.Store(false)
				return
			}
		}
	}()
	k.config.Log.Debug("op-testkit started successfully")
	return nil
}

// listTests discovers the suite and prints it in execution order without
// running anything.
func (k *kit) listTests() error {
	suite, err := k.discoverer.FromDirectory(k.config.TestDir)
	if err != nil {
		return cli.Exit(NewRuntimeError(err).Error(), exitcodes.RuntimeErr)
	}
	if mod := discover.ModulePath(k.config.TestDir); mod != "" {
		fmt.Printf("Module: %s\n", mod)
	}
	fmt.Print(ui.RenderSuite(suite))
	go func() {
		k.shutdownCallback(nil)
	}()
	return nil
}

// runTests discovers and runs all tests, then processes the results.
func (k *kit) runTests() error {
	k.config.Log.Info("Running all tests...", "dir", k.config.TestDir)
	suite, err := k.discoverer.FromDirectory(k.config.TestDir)
	if err != nil {
		metrics.RecordErrorDetails("discovery failure", err)
		return NewRuntimeError(err)
	}

	runID := uuid.New().String()
	start := time.Now()
	result := k.runner.Run(k.ctx, runID, suite)
	duration := time.Since(start)
	k.result = result

	k.recordMetrics(runID, result, duration)
	k.printResultsTable(runID, duration)
	if k.config.OnResult != nil {
		k.config.OnResult(result.Status().String())
	}

	k.config.Log.Info("Test run completed", "run_id", runID, "status", result.Status())
	return nil
}

// Stop stops the op-testkit service.
// Stop implements the cliapp.Lifecycle interface.
func (k *kit) Stop(ctx context.Context) error {
	k.config.Log.Info("Stopping op-testkit")

	if !k.running.Load() {
		k.config.Log.Debug("Service already stopped, nothing to do")
		return nil
	}

	k.running.Store(false)

	k.config.Log.Debug("Sending done signal to goroutines")
	close(k.done)

	k.config.Log.Info("op-testkit stopped successfully")
	return nil
}

// Stopped returns true if the op-testkit service is stopped.
// Stopped implements the cliapp.Lifecycle interface.
func (k *kit) Stopped() bool {
	return !k.running.Load()
}
