// Copyright (c) 2025 BVK Chaitanya

// Package trader implements the investment decision loop and the follow-up
// promotion of settled buys into stop-limit sell orders.
package trader

import (
	"context"
	"time"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/ledger"
	"github.com/bvk/bandbot/tradingview"
	"github.com/shopspring/decimal"
)

// Gateway is the exchange surface used by the decision loop and the sell
// promoter. *coinbase.Client implements it.
type Gateway interface {
	ServerTime(ctx context.Context) (time.Time, error)
	ProductInfo(ctx context.Context, productID string) (*coinbase.ProductInfo, error)
	ProductStats(ctx context.Context, productID string) (*coinbase.ProductStats, error)
	Candles(ctx context.Context, productID string, g coinbase.Granularity, start, end time.Time) ([]*coinbase.Candle, error)
	AggregatedFills(ctx context.Context, productID, orderID string) ([]*coinbase.FillSummary, error)
	CreateMarketBuy(ctx context.Context, clientOrderID, productID string, quoteSize decimal.Decimal) (string, error)
	CreateStopLimitSell(ctx context.Context, clientOrderID, productID string, baseSize, stopPrice, limitPrice decimal.Decimal) (string, error)
}

// Signals resolves the advisory recommendation for one symbol.
// *tradingview.Client implements it.
type Signals interface {
	Recommendation(ctx context.Context, exchange, symbol string) (tradingview.Signal, error)
}

// Ledger is the order record store. *ledger.Store implements it.
type Ledger interface {
	Merge(ctx context.Context, rec *ledger.OrderRecord) error
	Pending(ctx context.Context) ([]*ledger.OrderRecord, error)
}
