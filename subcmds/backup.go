// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bvk/bandbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/subcommands"
)

// Backup exports the order database into a file.
type Backup struct {
	dbFlags
}

func (c *Backup) Name() string     { return "backup" }
func (c *Backup) Synopsis() string { return "Saves the order database into a file" }
func (c *Backup) Usage() string {
	return `backup file:
  Exports all order records into the given file.
`
}

func (c *Backup) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
}

func (c *Backup) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, fset.Args()); err != nil {
		slog.Error("backup has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Backup) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("backup needs one file argument")
	}
	db, closer, err := c.getDatabase()
	if err != nil {
		return err
	}
	defer closer()
	return kvutil.BackupDB(ctx, db, args[0])
}

// Restore imports a backup file into the order database.
type Restore struct {
	dbFlags
}

func (c *Restore) Name() string     { return "restore" }
func (c *Restore) Synopsis() string { return "Loads the order database from a backup file" }
func (c *Restore) Usage() string {
	return `restore file:
  Imports order records from the given backup file.
`
}

func (c *Restore) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
}

func (c *Restore) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, fset.Args()); err != nil {
		slog.Error("restore has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Restore) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("restore needs one file argument")
	}
	fp, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer fp.Close()

	db, closer, err := c.getDatabase()
	if err != nil {
		return err
	}
	defer closer()

	return kv.WithReadWriter(ctx, db, func(ctx context.Context, rw kv.ReadWriter) error {
		return kvutil.Import(ctx, bufio.NewReader(fp), rw)
	})
}
