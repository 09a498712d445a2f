// Copyright (c) 2025 BVK Chaitanya

// Package subcmds implements the bandbot command line.
package subcmds

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bvkgo/kv"
	"github.com/bvkgo/kvbadger"
	"github.com/dgraph-io/badger/v4"
)

// dbFlags holds the data directory flag shared by all commands that open
// the order database.
type dbFlags struct {
	dataDir string
}

func (f *dbFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.dataDir, "data-dir", "", "path to the data directory")
}

func isGoodKey(k string) bool {
	return path.IsAbs(k) && k == path.Clean(k)
}

// resolveDataDir defaults the data directory to ~/.bandbot and creates it
// when missing.
func (f *dbFlags) resolveDataDir() (string, error) {
	dir := f.dataDir
	if len(dir) == 0 {
		dir = filepath.Join(os.Getenv("HOME"), ".bandbot")
	}
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("could not stat data directory %q: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("could not create data directory %q: %w", dir, err)
		}
	}
	return filepath.Abs(dir)
}

// getDatabase opens the badger backed kv database under the data
// directory.
func (f *dbFlags) getDatabase() (kv.Database, func(), error) {
	dir, err := f.resolveDataDir()
	if err != nil {
		return nil, nil, err
	}
	bopts := badger.DefaultOptions(filepath.Join(dir, "db"))
	bopts = bopts.WithLogger(nil)
	bdb, err := badger.Open(bopts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the database: %w", err)
	}
	db := kvbadger.New(bdb, isGoodKey)
	return db, func() { bdb.Close() }, nil
}
