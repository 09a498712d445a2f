// Copyright (c) 2025 BVK Chaitanya

// Package server wires the exchange client, the signal client, the order
// ledger and the trading logic behind an http invocation surface.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/ledger"
	"github.com/bvk/bandbot/telegram"
	"github.com/bvk/bandbot/trader"
	"github.com/bvk/bandbot/tradingview"
	"github.com/bvkgo/kv"
)

type Server struct {
	cfg *trader.Config

	exchange *coinbase.Client
	signals  *tradingview.Client
	store    *ledger.Store
	trader   *trader.Trader

	// notifier is nil when no telegram secrets are configured.
	notifier *telegram.Client

	// runMu serializes invocations; an overlapping trigger waits instead of
	// racing the one in flight.
	runMu sync.Mutex
}

func New(ctx context.Context, db kv.Database, cfg *trader.Config, secrets *Secrets) (*Server, error) {
	if err := secrets.Check(); err != nil {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	exchange, err := coinbase.New(secrets.Coinbase.Key, secrets.Coinbase.Secret, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create coinbase client: %w", err)
	}
	signals := tradingview.New(nil)
	store := ledger.NewStore(db)

	t, err := trader.New(cfg, exchange, signals, store)
	if err != nil {
		exchange.Close()
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		exchange: exchange,
		signals:  signals,
		store:    store,
		trader:   t,
	}

	if secrets.Telegram != nil {
		notifier, err := telegram.New(ctx, secrets.Telegram)
		if err != nil {
			exchange.Close()
			return nil, fmt.Errorf("could not create telegram client: %w", err)
		}
		s.notifier = notifier
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.notifier != nil {
		s.notifier.Close()
	}
	return s.exchange.Close()
}

// Ledger exposes the order record store for read-only tooling.
func (s *Server) Ledger() *ledger.Store {
	return s.store
}

// RunOnce performs one full invocation and returns its report. Telegram
// delivery failures are logged and never fail the run.
func (s *Server) RunOnce(ctx context.Context) (*trader.Report, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.trader.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, report)
	return report, nil
}

// notify sends one telegram message summarizing the orders created in this
// run. Runs without any order stay silent.
func (s *Server) notify(ctx context.Context, report *trader.Report) {
	if s.notifier == nil {
		return
	}

	var lines []string
	for _, d := range report.BuyDecisions {
		if d.Bought {
			lines = append(lines, d.String())
		}
	}
	for _, p := range report.SellPromotions {
		if len(p.SellOrderID) > 0 {
			lines = append(lines, p.String())
		}
	}
	if len(lines) == 0 {
		return
	}
	if err := s.notifier.SendMessage(ctx, time.Now(), strings.Join(lines, "\n")); err != nil {
		slog.Warn("could not send telegram notification (ignored)", "error", err)
	}
}

// HandlerMap returns the http handlers of the invocation surface.
func (s *Server) HandlerMap() map[string]http.Handler {
	return map[string]http.Handler{
		"/run":  http.HandlerFunc(s.handleRun),
		"/pid":  http.HandlerFunc(s.handlePid),
		"/ppid": http.HandlerFunc(s.handlePpid),
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.RunOnce(r.Context())
	if err != nil {
		slog.Error("invocation has failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (s *Server) handlePid(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "%d", os.Getpid())
}

func (s *Server) handlePpid(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "%d", os.Getppid())
}
