// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/bvk/bandbot/server"
	"github.com/google/subcommands"
)

// Once performs a single invocation and prints the report to stdout.
type Once struct {
	dbFlags
	configFlags
}

func (c *Once) Name() string     { return "once" }
func (c *Once) Synopsis() string { return "Performs one invocation and prints the report" }
func (c *Once) Usage() string {
	return `once [options]:
  Evaluates all configured assets for a buy, promotes settled buys into
  stop-limit sells and prints the JSON report.
`
}

func (c *Once) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
	c.configFlags.SetFlags(fset)
}

func (c *Once) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		slog.Error("once has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Once) run(ctx context.Context) error {
	dataDir, err := c.resolveDataDir()
	if err != nil {
		return err
	}
	secrets, err := c.getSecrets(dataDir)
	if err != nil {
		return err
	}
	cfg, err := c.getConfig()
	if err != nil {
		return err
	}

	db, closer, err := c.getDatabase()
	if err != nil {
		return err
	}
	defer closer()

	bot, err := server.New(ctx, db, cfg, secrets)
	if err != nil {
		return err
	}
	defer bot.Close()

	report, err := bot.RunOnce(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
