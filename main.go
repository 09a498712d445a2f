// Copyright (c) 2025 BVK Chaitanya

// Command bandbot buys assets dipping below their lower daily Bollinger
// band and sells them back at a configured margin through stop-limit
// orders.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/bvk/bandbot/subcmds"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(new(subcmds.Run), "")
	subcommands.Register(new(subcmds.Once), "")
	subcommands.Register(new(subcmds.Setup), "")
	subcommands.Register(new(subcmds.Orders), "")
	subcommands.Register(new(subcmds.Backup), "db")
	subcommands.Register(new(subcmds.Restore), "db")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
