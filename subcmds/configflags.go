// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bvk/bandbot/envfile"
	"github.com/bvk/bandbot/server"
	"github.com/bvk/bandbot/trader"
)

// configFlags holds the config and secrets file flags shared by commands
// that perform trading operations.
type configFlags struct {
	configPath  string
	secretsPath string
	envFile     string
}

func (f *configFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.configPath, "config", "", "path to a trading config file; empty reads the environment")
	fset.StringVar(&f.secretsPath, "secrets-file", "", "path to the credentials file")
	fset.StringVar(&f.envFile, "env-file", "bandbot.env", "name of an optional env file with trading variables")
}

// getConfig reads the trading configuration from the -config file or, when
// the flag is empty, from the environment. Environment values may come from
// an env file in the current directory, its parents or the home directory.
func (f *configFlags) getConfig() (*trader.Config, error) {
	if len(f.configPath) == 0 {
		if len(f.envFile) > 0 {
			if err := envfile.UpdateEnv(f.envFile); err != nil {
				return nil, fmt.Errorf("could not read env file %q: %w", f.envFile, err)
			}
		}
		return trader.ConfigFromEnv()
	}
	data, err := os.ReadFile(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", f.configPath, err)
	}
	cfg := new(trader.Config)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", f.configPath, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getSecrets reads the credentials file, defaulting to secrets.json in the
// data directory.
func (f *configFlags) getSecrets(dataDir string) (*server.Secrets, error) {
	fpath := f.secretsPath
	if len(fpath) == 0 {
		fpath = filepath.Join(dataDir, "secrets.json")
	}
	return server.SecretsFromFile(fpath)
}
