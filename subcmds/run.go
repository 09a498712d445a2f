// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bvk/bandbot/daemonize"
	"github.com/bvk/bandbot/httputil"
	"github.com/bvk/bandbot/server"
	"github.com/google/subcommands"
	"github.com/nightlyone/lockfile"
	"github.com/visvasity/sglog"
)

// Run starts the bot as an http daemon. Every "/run" request and, when an
// interval is configured, every tick performs one full invocation.
type Run struct {
	dbFlags
	configFlags

	ip   string
	port int

	background bool

	interval time.Duration

	noPprof bool
	logDir  string
}

func (c *Run) Name() string     { return "run" }
func (c *Run) Synopsis() string { return "Runs the trading bot as an http service" }
func (c *Run) Usage() string {
	return `run [options]:
  Serves the invocation endpoint at "/run". Each invocation evaluates all
  configured assets for a buy and promotes settled buys into stop-limit
  sells. With -interval the service also self-triggers periodically.
`
}

func (c *Run) SetFlags(fset *flag.FlagSet) {
	c.dbFlags.SetFlags(fset)
	c.configFlags.SetFlags(fset)
	fset.StringVar(&c.ip, "ip", "127.0.0.1", "TCP ip address for the service")
	fset.IntVar(&c.port, "port", 10100, "TCP port number for the service")
	fset.BoolVar(&c.background, "background", false, "runs the service in background")
	fset.DurationVar(&c.interval, "interval", 0, "self-trigger interval; zero disables self-triggering")
	fset.BoolVar(&c.noPprof, "no-pprof", false, "when true net/http/pprof handlers are not registered")
	fset.StringVar(&c.logDir, "log-dir", "", "directory for log files; empty logs to the data directory")
}

func (c *Run) Execute(ctx context.Context, fset *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		slog.Error("run has failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Run) run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir, err := c.resolveDataDir()
	if err != nil {
		return err
	}

	if ip := net.ParseIP(c.ip); ip == nil {
		return fmt.Errorf("invalid ip address")
	}
	if c.port <= 0 {
		return fmt.Errorf("invalid port number")
	}
	addr := &net.TCPAddr{
		IP:   net.ParseIP(c.ip),
		Port: c.port,
	}

	if c.background {
		// The responding server must be our own child and not an older
		// instance, so the parent pid is compared.
		check := func(ctx context.Context) error {
			client := http.Client{Timeout: time.Second}
			resp, err := client.Get(fmt.Sprintf("http://%s/ppid", addr.String()))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("http status: %d", resp.StatusCode)
			}
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if ppid := string(data); ppid != fmt.Sprintf("%d", os.Getpid()) {
				return fmt.Errorf("is another instance already running? ppid mismatch: want %d got %s", os.Getpid(), ppid)
			}
			return nil
		}
		if err := daemonize.Daemonize(ctx, check); err != nil {
			return err
		}
	}

	logDir := c.logDir
	if len(logDir) == 0 {
		logDir = filepath.Join(dataDir, "logs")
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("could not create log directory %q: %w", logDir, err)
		}
	}
	backend := sglog.NewBackend(&sglog.Options{LogDirs: []string{logDir}})
	defer backend.Close()
	slog.SetDefault(slog.New(backend.Handler()))

	lockPath := filepath.Join(dataDir, "bandbot.lock")
	flock, err := lockfile.New(lockPath)
	if err != nil {
		return fmt.Errorf("could not create lock file %q: %w", lockPath, err)
	}
	if err := flock.TryLock(); err != nil {
		return fmt.Errorf("could not get lock on file %q: %w", lockPath, err)
	}
	defer flock.Unlock()

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

	s, err := httputil.New(nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if !c.noPprof {
		s.AddHandler("/debug/pprof/heap", pprof.Handler("heap"))
		s.AddHandler("/debug/pprof/goroutine", pprof.Handler("goroutine"))
		s.AddHandler("/debug/pprof/allocs", pprof.Handler("allocs"))
	}

	bot, err := server.New(ctx, db, cfg, secrets)
	if err != nil {
		return err
	}
	defer bot.Close()

	for k, v := range bot.HandlerMap() {
		s.AddHandler(k, v)
	}

	if err := s.StartTCP(ctx, addr); err != nil {
		return fmt.Errorf("could not start http server on %s: %w", addr, err)
	}
	slog.Info("started bandbot server", "addr", addr, "dataDir", dataDir)

	if c.interval > 0 {
		go c.selfTrigger(ctx, bot)
	}

	<-ctx.Done()
	slog.Info("bandbot server is shutting down")
	return nil
}

func (c *Run) selfTrigger(ctx context.Context, bot *server.Server) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bot.RunOnce(ctx); err != nil {
				slog.Error("scheduled invocation has failed", "error", err)
			}
		}
	}
}
