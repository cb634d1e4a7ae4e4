package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	testkit "github.com/ethereum-optimism/infra/op-testkit"
	"github.com/ethereum-optimism/infra/op-testkit/example"
	"github.com/ethereum-optimism/infra/op-testkit/exitcodes"
	"github.com/ethereum-optimism/infra/op-testkit/flags"
	"github.com/ethereum-optimism/infra/op-testkit/registry"
	"github.com/ethereum-optimism/infra/op-testkit/service"
	"github.com/ethereum-optimism/optimism/devnet-sdk/telemetry"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

var svc *service.Service

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "op-testkit"
	app.Usage = "Unified Test Discovery and Execution Engine"
	app.Description = "op-testkit discovers tests authored as bare functions, plain classes or native cases and runs them in deterministic source order"
	app.ArgsUsage = "[directory]"
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = cliapp.LifecycleCmd(run)
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if testkit.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else {
				// Test failures and unspecified errors both map to exit code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Start telemetry
	ctx, shutdown, err := telemetry.SetupOpenTelemetry(
		context.Background(),
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	// Start sidecar servers
	svc = service.New()
	svc.Start(ctx)
	defer svc.Shutdown()

	// Start CLI
	ctx = ctxinterrupt.WithSignalWaiterMain(ctx)
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context, closeApp context.CancelCauseFunc) (cliapp.Lifecycle, error) {
	logCfg := oplog.ReadCLIConfig(ctx)
	log := oplog.NewLogger(oplog.AppOut(ctx), logCfg)
	oplog.SetGlobalLogHandler(log.Handler())
	oplog.SetupDefaults()

	reg, err := registry.New(registry.Config{
		Log:        log,
		ConfigFile: ctx.String(flags.EngineConfig.Name),
	})
	if err != nil {
		return nil, testkit.NewRuntimeError(fmt.Errorf("failed to create registry: %w", err))
	}
	example.Register(reg)

	// A positional directory argument takes precedence over the flag
	testDir := ctx.Args().First()
	if testDir == "" {
		testDir = ctx.String(flags.TestDir.Name)
	}

	cfg, err := testkit.NewConfig(ctx, log, reg, testDir)
	if err != nil {
		return nil, testkit.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	cfg.OnResult = svc.Healthz.SetLastRunStatus

	cfg.Log.Debug("Config", "config", cfg)

	kitService, err := testkit.New(ctx.Context, cfg, Version, closeApp)
	if err != nil {
		return nil, testkit.NewRuntimeError(fmt.Errorf("failed to create testkit: %w", err))
	}

	return kitService, nil
}
