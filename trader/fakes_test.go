// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"context"
	"fmt"
	"time"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/tradingview"
	"github.com/shopspring/decimal"
)

type buyCall struct {
	clientOrderID string
	productID     string
	quoteSize     decimal.Decimal
}

type sellCall struct {
	clientOrderID string
	productID     string
	baseSize      decimal.Decimal
	stopPrice     decimal.Decimal
	limitPrice    decimal.Decimal
}

// fakeGateway serves canned exchange responses and records the orders it
// receives.
type fakeGateway struct {
	serverTime time.Time

	statsMap   map[string]*coinbase.ProductStats
	candlesMap map[string][]*coinbase.Candle
	infoMap    map[string]*coinbase.ProductInfo

	// productFills is keyed by product id, orderFills by order id.
	productFills map[string][]*coinbase.FillSummary
	orderFills   map[string][]*coinbase.FillSummary

	buys  []buyCall
	sells []sellCall

	buyErr  error
	sellErr error

	nextOrder int
}

func newFakeGateway(serverTime time.Time) *fakeGateway {
	return &fakeGateway{
		serverTime:   serverTime,
		statsMap:     make(map[string]*coinbase.ProductStats),
		candlesMap:   make(map[string][]*coinbase.Candle),
		infoMap:      make(map[string]*coinbase.ProductInfo),
		productFills: make(map[string][]*coinbase.FillSummary),
		orderFills:   make(map[string][]*coinbase.FillSummary),
	}
}

func (g *fakeGateway) ServerTime(ctx context.Context) (time.Time, error) {
	return g.serverTime, nil
}

func (g *fakeGateway) ProductStats(ctx context.Context, productID string) (*coinbase.ProductStats, error) {
	stats, ok := g.statsMap[productID]
	if !ok {
		return nil, fmt.Errorf("no stats for product %q", productID)
	}
	return stats, nil
}

func (g *fakeGateway) ProductInfo(ctx context.Context, productID string) (*coinbase.ProductInfo, error) {
	info, ok := g.infoMap[productID]
	if !ok {
		return nil, fmt.Errorf("no info for product %q", productID)
	}
	return info, nil
}

func (g *fakeGateway) Candles(ctx context.Context, productID string, _ coinbase.Granularity, _, _ time.Time) ([]*coinbase.Candle, error) {
	cs, ok := g.candlesMap[productID]
	if !ok {
		return nil, fmt.Errorf("no candles for product %q", productID)
	}
	return cs, nil
}

func (g *fakeGateway) AggregatedFills(ctx context.Context, productID, orderID string) ([]*coinbase.FillSummary, error) {
	if len(orderID) > 0 {
		return g.orderFills[orderID], nil
	}
	return g.productFills[productID], nil
}

func (g *fakeGateway) CreateMarketBuy(ctx context.Context, clientOrderID, productID string, quoteSize decimal.Decimal) (string, error) {
	if g.buyErr != nil {
		return "", g.buyErr
	}
	g.buys = append(g.buys, buyCall{clientOrderID: clientOrderID, productID: productID, quoteSize: quoteSize})
	g.nextOrder++
	return fmt.Sprintf("buy-order-%d", g.nextOrder), nil
}

func (g *fakeGateway) CreateStopLimitSell(ctx context.Context, clientOrderID, productID string, baseSize, stopPrice, limitPrice decimal.Decimal) (string, error) {
	if g.sellErr != nil {
		return "", g.sellErr
	}
	g.sells = append(g.sells, sellCall{
		clientOrderID: clientOrderID,
		productID:     productID,
		baseSize:      baseSize,
		stopPrice:     stopPrice,
		limitPrice:    limitPrice,
	})
	g.nextOrder++
	return fmt.Sprintf("sell-order-%d", g.nextOrder), nil
}

// fakeSignals returns a fixed recommendation per ticker.
type fakeSignals struct {
	signals map[string]tradingview.Signal
}

func (s *fakeSignals) Recommendation(ctx context.Context, exchange, symbol string) (tradingview.Signal, error) {
	sig, ok := s.signals[symbol]
	if !ok {
		return "", fmt.Errorf("no signal for symbol %q", symbol)
	}
	return sig, nil
}

// dailyCandles returns count daily candles ending now, all closing at the
// given price.
func dailyCandles(now time.Time, count int, close float64) []*coinbase.Candle {
	var cs []*coinbase.Candle
	for i := count; i > 0; i-- {
		cs = append(cs, &coinbase.Candle{
			Start: now.AddDate(0, 0, -i),
			Close: close,
		})
	}
	return cs
}

func nd(s string) coinbase.NullDecimal {
	return coinbase.NullDecimal{Decimal: decimal.RequireFromString(s)}
}
