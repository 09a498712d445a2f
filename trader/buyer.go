// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bvk/bandbot/bollinger"
	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/ledger"
)

// historyDays is the daily-candle lookback used to compute the Bollinger
// bands. Anything comfortably above the 20 day window works; 90 keeps one
// request per asset.
const historyDays = 90

// Buyer evaluates every candidate asset once and submits a market buy for
// each asset that satisfies all three conditions: the current price is below
// the lower daily Bollinger band, the advisory signal is BUY or STRONG_BUY
// and no settled buy exists within the idle window.
type Buyer struct {
	cfg     *Config
	gateway Gateway
	signals Signals
	ledger  Ledger
}

func NewBuyer(cfg *Config, gateway Gateway, signals Signals, ldg Ledger) (*Buyer, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &Buyer{cfg: cfg, gateway: gateway, signals: signals, ledger: ldg}, nil
}

// Run evaluates all configured assets independently. A failure on one asset
// is reported in its decision row and never aborts the others. Only the
// server time fetch is fatal because every idle-window comparison depends
// on it.
func (b *Buyer) Run(ctx context.Context) ([]*BuyDecision, error) {
	now, err := b.gateway.ServerTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch exchange server time: %w", err)
	}

	var decisions []*BuyDecision
	for _, currency := range b.cfg.BaseCurrencies {
		d := b.evaluate(ctx, now, currency)
		if len(d.Error) > 0 {
			slog.Warn("could not evaluate asset", "currency", currency, "error", d.Error)
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func (b *Buyer) evaluate(ctx context.Context, now time.Time, currency string) *BuyDecision {
	productID := b.cfg.productID(currency)
	d := &BuyDecision{
		Currency:         currency,
		ProductID:        productID,
		QuoteCurrency:    b.cfg.QuoteCurrency,
		IdleHoursReached: true,
	}

	stats, err := b.gateway.ProductStats(ctx, productID)
	if err != nil {
		d.Error = fmt.Sprintf("could not fetch 24h stats: %v", err)
		return d
	}
	if stats.Last.Decimal.IsZero() {
		d.Error = fmt.Sprintf("no last trade price in 24h stats for %q", productID)
		return d
	}
	d.Price = stats.Last.Decimal.InexactFloat64()

	bbLow, err := b.lowerBand(ctx, productID, now)
	if err != nil {
		d.Error = fmt.Sprintf("could not compute lower bollinger band: %v", err)
		return d
	}
	d.BollingerLow = bbLow

	symbol, ok := b.cfg.signalSymbol(currency)
	if !ok {
		d.Error = fmt.Sprintf("no signal symbol configured for %q", currency)
		return d
	}
	signal, err := b.signals.Recommendation(ctx, symbol.Exchange, symbol.Symbol)
	if err != nil {
		d.Error = fmt.Sprintf("could not fetch advisory signal: %v", err)
		return d
	}
	d.Signal = string(signal)

	fills, err := b.gateway.AggregatedFills(ctx, productID, "")
	if err != nil {
		d.Error = fmt.Sprintf("could not fetch fill history: %v", err)
		return d
	}
	if last, ok := coinbase.LastBuyFill(fills); ok {
		d.LastBuyFill = &last
		if idleHours(now, last) < b.cfg.IdleHours {
			d.IdleHoursReached = false
		}
	}

	if d.Price >= bbLow || !signal.IsBuy() || !d.IdleHoursReached {
		return d
	}

	clientOrderID := buyClientOrderID(productID, now)
	orderID, err := b.gateway.CreateMarketBuy(ctx, clientOrderID, productID, b.cfg.InvestAmount)
	if err != nil {
		d.Error = fmt.Sprintf("could not create market buy order: %v", err)
		return d
	}
	d.Bought = true
	d.BuyOrderID = orderID
	d.InvestAmount = b.cfg.InvestAmount

	rec := &ledger.OrderRecord{
		BuyOrderID:    orderID,
		ProductID:     productID,
		BaseCurrency:  currency,
		QuoteCurrency: b.cfg.QuoteCurrency,
		BollingerLow:  bbLow,
		Signal:        string(signal),
	}
	if err := b.ledger.Merge(ctx, rec); err != nil {
		// The order exists on the exchange. A later run cannot recover this
		// record, so the operator must reconcile it from the report.
		d.Error = fmt.Sprintf("order %s created, but ledger record could not be saved: %v", orderID, err)
	}
	return d
}

// lowerBand fetches daily candles and returns the latest lower Bollinger
// band value.
func (b *Buyer) lowerBand(ctx context.Context, productID string, now time.Time) (float64, error) {
	start := now.AddDate(0, 0, -historyDays)
	candles, err := b.gateway.Candles(ctx, productID, coinbase.Daily, start, now)
	if err != nil {
		return 0, err
	}
	low, ok := bollinger.Lower(coinbase.Closes(candles))
	if !ok {
		return 0, fmt.Errorf("not enough daily candles (%d) for a %d period band", len(candles), bollinger.Period)
	}
	return low, nil
}

// idleHours returns the hours elapsed between a fill and now, truncated to
// whole seconds before the division.
func idleHours(now, fill time.Time) float64 {
	return float64(int64(now.Sub(fill)/time.Second)) / 3600
}
