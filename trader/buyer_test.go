// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"context"
	"testing"
	"time"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/ledger"
	"github.com/bvk/bandbot/tradingview"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		QuoteCurrency:   "EUR",
		BaseCurrencies:  []string{"BTC"},
		IdleHours:       24,
		InvestAmount:    decimal.NewFromInt(50),
		TargetMarginPct: decimal.RequireFromString("2.5"),
		Symbols: []SignalSymbol{
			{Currency: "BTC", Exchange: "COINBASE", Symbol: "BTCEUR"},
		},
	}
}

func buySignals(sig tradingview.Signal) *fakeSignals {
	return &fakeSignals{signals: map[string]tradingview.Signal{"BTCEUR": sig}}
}

func TestBuySubmittedWhenAllConditionsHold(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

	store := ledger.NewStore(kvmemdb.New())
	buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), store)
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.Empty(t, d.Error)
	assert.True(t, d.Bought)
	assert.True(t, d.IdleHoursReached)
	assert.Equal(t, 24500.0, d.BollingerLow)
	assert.Equal(t, "STRONG_BUY", d.Signal)

	require.Len(t, gw.buys, 1)
	assert.Equal(t, "BTC-EUR", gw.buys[0].productID)
	assert.True(t, gw.buys[0].quoteSize.Equal(decimal.NewFromInt(50)))

	rec, err := store.Get(ctx, d.BuyOrderID)
	require.NoError(t, err)
	assert.Equal(t, "BTC", rec.BaseCurrency)
	assert.Equal(t, "EUR", rec.QuoteCurrency)
	assert.Equal(t, 24500.0, rec.BollingerLow)
	assert.Equal(t, "STRONG_BUY", rec.Signal)
	assert.Empty(t, rec.SellOrderID)
}

func TestNoBuyWhenPriceAboveBand(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24500")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

	buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	// Equal price must not trigger; the comparison is strict.
	assert.False(t, decisions[0].Bought)
	assert.Empty(t, decisions[0].Error)
	assert.Empty(t, gw.buys)
}

func TestMissingLastPriceFailsEvaluation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	// A stats row without a last trade price decodes to a zero decimal.
	// It must fail the asset, never compare as a price below the band.
	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

	buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.NotEmpty(t, d.Error)
	assert.False(t, d.Bought)
	assert.Zero(t, d.Price)
	assert.Empty(t, gw.buys)
}

func TestNoBuyWithoutBuySignal(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

	for _, sig := range []tradingview.Signal{tradingview.Neutral, tradingview.Sell, tradingview.StrongSell} {
		buyer, err := NewBuyer(testConfig(), gw, buySignals(sig), ledger.NewStore(kvmemdb.New()))
		require.NoError(t, err)

		decisions, err := buyer.Run(ctx)
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.False(t, decisions[0].Bought, "signal %s must not buy", sig)
	}
	assert.Empty(t, gw.buys)
}

func TestIdleWindowBlocksRecentBuy(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)
	gw.productFills["BTC-EUR"] = []*coinbase.FillSummary{
		{OrderID: "old", Side: "BUY", TradeType: "FILL", Minute: now.Add(-2 * time.Hour)},
	}

	buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.False(t, d.Bought)
	assert.False(t, d.IdleHoursReached)
	assert.Empty(t, gw.buys)
}

func TestIdleWindowBoundaryAllowsBuy(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)
	gw.productFills["BTC-EUR"] = []*coinbase.FillSummary{
		{OrderID: "old", Side: "BUY", TradeType: "FILL", Minute: now.Add(-24 * time.Hour)},
	}

	buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	// Exactly at the threshold the buy is allowed; only strictly fewer
	// elapsed hours block it.
	assert.True(t, decisions[0].IdleHoursReached)
	assert.True(t, decisions[0].Bought)
	require.Len(t, gw.buys, 1)
}

func TestAssetFailuresAreIsolated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	cfg := testConfig()
	cfg.BaseCurrencies = []string{"DOGE", "BTC"}
	cfg.Symbols = append(cfg.Symbols, SignalSymbol{Currency: "DOGE", Exchange: "COINBASE", Symbol: "DOGEEUR"})

	// No stats for DOGE-EUR, so its evaluation fails.
	gw := newFakeGateway(now)
	gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
	gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

	buyer, err := NewBuyer(cfg, gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
	require.NoError(t, err)

	decisions, err := buyer.Run(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	assert.NotEmpty(t, decisions[0].Error)
	assert.False(t, decisions[0].Bought)

	assert.Empty(t, decisions[1].Error)
	assert.True(t, decisions[1].Bought)
	require.Len(t, gw.buys, 1)
}

func TestBuyClientOrderIDIsDeterministic(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	run := func() string {
		gw := newFakeGateway(now)
		gw.statsMap["BTC-EUR"] = &coinbase.ProductStats{Last: nd("24000")}
		gw.candlesMap["BTC-EUR"] = dailyCandles(now, 30, 24500)

		buyer, err := NewBuyer(testConfig(), gw, buySignals(tradingview.StrongBuy), ledger.NewStore(kvmemdb.New()))
		require.NoError(t, err)
		_, err = buyer.Run(ctx)
		require.NoError(t, err)
		require.Len(t, gw.buys, 1)
		return gw.buys[0].clientOrderID
	}

	// A re-invocation within the same hour reuses the idempotency key.
	assert.Equal(t, run(), run())
}
