package testkit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/op-testkit/flags"
	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum/go-ethereum/log"
)

// Config holds the application configuration
type Config struct {
	TestDir      string        // Directory walked for candidate test modules
	EngineConfig string        // Path to the engine config file, may be empty
	RunInterval  time.Duration // Interval between test runs
	RunOnce      bool          // Indicates if the service should exit after one test run
	ListOnly     bool          // List discovered cases instead of running them

	Registry *registry.Registry
	Stderr   io.Writer      // Error stream for the detail report
	OnResult func(string)   // Optional sink for the overall status of each run
	Log      log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger, reg *registry.Registry, testDir string) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}
	if testDir == "" {
		return nil, errors.New("test directory is required")
	}
	if reg == nil {
		return nil, errors.New("registry is required")
	}

	absTestDir, err := filepath.Abs(testDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for test directory '%s': %w", testDir, err)
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		TestDir:      absTestDir,
		EngineConfig: ctx.String(flags.EngineConfig.Name),
		RunInterval:  runInterval,
		RunOnce:      runInterval == 0,
		ListOnly:     ctx.Bool(flags.List.Name),
		Registry:     reg,
		Stderr:       os.Stderr,
		Log:          logger,
	}, nil
}
