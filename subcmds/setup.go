// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/server"
	"github.com/bvk/bandbot/telegram"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Setup writes the credentials file used by the other commands.
type Setup struct {
	dbFlags

	key    string
	secret string

	telegramToken  string
	telegramChatID int64

	skipTesting bool
}

func (c *Setup) Name() string     { return "setup" }
func (c *Setup) Synopsis() string { return "Configures exchange and telegram credentials" }
func (c *Setup) Usage() string {
	return `setup [options]:
  Writes the secrets.json file into the data directory. The coinbase api
  secret is prompted for when not passed as a flag.
`
}

func (c *Setup) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
	fset.StringVar(&c.key, "key", "", "coinbase api key")
	fset.StringVar(&c.secret, "secret", "", "coinbase api secret; prompted for when empty")
	fset.StringVar(&c.telegramToken, "telegram-token", "", "telegram bot token (optional)")
	fset.Int64Var(&c.telegramChatID, "telegram-chat-id", 0, "telegram chat id receiving notifications")
	fset.BoolVar(&c.skipTesting, "skip-testing", false, "don't test the credentials")
}

func (c *Setup) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		slog.Error("setup has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Setup) run(ctx context.Context) error {
	dataDir, err := c.resolveDataDir()
	if err != nil {
		return err
	}

	if len(c.key) == 0 {
		return fmt.Errorf("-key flag is required")
	}
	if len(c.secret) == 0 {
		fmt.Print("Coinbase API secret: ")
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("could not read the api secret: %w", err)
		}
		c.secret = string(data)
	}
	if len(c.secret) == 0 {
		return fmt.Errorf("api secret cannot be empty")
	}

	secretsPath := filepath.Join(dataDir, "secrets.json")
	secrets, err := server.SecretsFromFile(secretsPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		secrets = nil
	}
	if secrets == nil {
		secrets = &server.Secrets{}
	}

	secrets.Coinbase = &coinbase.Credentials{
		Key:    c.key,
		Secret: c.secret,
	}
	if len(c.telegramToken) > 0 {
		secrets.Telegram = &telegram.Secrets{
			BotToken: c.telegramToken,
			ChatID:   c.telegramChatID,
		}
	}
	if err := secrets.Check(); err != nil {
		return err
	}

	if !c.skipTesting {
		client, err := coinbase.New(secrets.Coinbase.Key, secrets.Coinbase.Secret, nil)
		if err != nil {
			return err
		}
		defer client.Close()
		if _, err := client.ListFills(ctx, "", ""); err != nil {
			return fmt.Errorf("could not authenticate with coinbase: %w", err)
		}
		if secrets.Telegram != nil {
			notifier, err := telegram.New(ctx, secrets.Telegram)
			if err != nil {
				return fmt.Errorf("could not authenticate with telegram: %w", err)
			}
			notifier.Close()
		}
	}

	js, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(secretsPath, js, os.FileMode(0600)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", secretsPath)
	return nil
}
