package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

const EnvVarPrefix = "OP_TESTKIT"

var (
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   ".",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "TESTDIR"),
		Usage:   "Path to the directory from which to discover tests. A positional directory argument takes precedence. Use ./example for the bundled modules.",
	}
	EngineConfig = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "CONFIG"),
		Usage:   "Path to engine config file (eg. 'testkit.yaml') with convention overrides and disable rules",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "RUN_INTERVAL"),
		Usage:   "Interval between test runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	List = &cli.BoolFlag{
		Name:    "list",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "LIST"),
		Usage:   "List discovered cases in execution order without running them",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	TestDir,
	EngineConfig,
	RunInterval,
	List,
}

var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
