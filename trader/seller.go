// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bvk/bandbot/coinbase"
	"github.com/bvk/bandbot/ledger"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Seller promotes ledger records without a sell order into stop-limit sell
// orders at the configured target margin.
type Seller struct {
	cfg     *Config
	gateway Gateway
	ledger  Ledger
}

func NewSeller(cfg *Config, gateway Gateway, ldg Ledger) (*Seller, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &Seller{cfg: cfg, gateway: gateway, ledger: ldg}, nil
}

// Run promotes every pending record independently. A failed promotion
// leaves its record pending for a later run and never aborts the others.
// Records that already carry a sell order id are never revisited.
func (s *Seller) Run(ctx context.Context) ([]*SellPromotion, error) {
	pending, err := s.ledger.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not query pending order records: %w", err)
	}

	var promotions []*SellPromotion
	for _, rec := range pending {
		p := s.promote(ctx, rec)
		if len(p.Error) > 0 {
			slog.Warn("could not promote order record", "buyOrderID", rec.BuyOrderID, "error", p.Error)
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (s *Seller) promote(ctx context.Context, rec *ledger.OrderRecord) *SellPromotion {
	p := &SellPromotion{BuyOrderID: rec.BuyOrderID}

	summaries, err := s.gateway.AggregatedFills(ctx, "", rec.BuyOrderID)
	if err != nil {
		p.Error = fmt.Sprintf("could not fetch fills: %v", err)
		return p
	}
	fill := authoritativeFill(summaries)
	if fill == nil {
		p.Error = "buy order has no settled fill yet"
		return p
	}

	productID := fill.ProductID
	base, quote, ok := strings.Cut(productID, "-")
	if !ok {
		p.Error = fmt.Sprintf("malformed product id %q", productID)
		return p
	}
	p.ProductID = productID
	p.QuoteCurrency = quote

	buyBasePrice := fill.Price
	buyBaseSize := fill.Size.Div(fill.Price)

	enriched := &ledger.OrderRecord{
		BuyOrderID:         rec.BuyOrderID,
		ProductID:          productID,
		BaseCurrency:       base,
		QuoteCurrency:      quote,
		BuyDate:            fill.Minute,
		BuyBasePrice:       buyBasePrice,
		BuyBaseSize:        buyBaseSize,
		BuyQuoteSize:       fill.Size,
		BuyQuoteCommission: fill.Commission,
		BuyQuoteTotalSize:  fill.Total,
	}
	if err := s.ledger.Merge(ctx, enriched); err != nil {
		p.Error = fmt.Sprintf("could not save settlement data: %v", err)
		return p
	}

	info, err := s.gateway.ProductInfo(ctx, productID)
	if err != nil {
		p.Error = fmt.Sprintf("could not fetch product increments: %v", err)
		return p
	}
	baseDecimals := coinbase.DecimalPlaces(info.BaseIncrement.Decimal)
	quoteDecimals := coinbase.DecimalPlaces(info.QuoteIncrement.Decimal)

	margin := s.cfg.TargetMarginPct.Div(oneHundred)
	targetPrice := buyBasePrice.Mul(decimal.NewFromInt(1).Add(margin)).Round(quoteDecimals)
	sellBaseSize := buyBaseSize.Round(baseDecimals)

	sellOrderID, err := s.gateway.CreateStopLimitSell(ctx, sellClientOrderID(rec.BuyOrderID), productID, sellBaseSize, targetPrice, targetPrice)
	if err != nil {
		p.Error = fmt.Sprintf("could not create stop limit sell order: %v", err)
		return p
	}

	// The record is marked sold only with a confirmed order id.
	sold := &ledger.OrderRecord{
		BuyOrderID:      rec.BuyOrderID,
		SellOrderID:     sellOrderID,
		SellTargetPrice: targetPrice,
		SellCreatedAt:   time.Now().UTC(),
		TargetMargin:    margin,
	}
	if err := s.ledger.Merge(ctx, sold); err != nil {
		p.Error = fmt.Sprintf("sell order %s created, but ledger record could not be saved: %v", sellOrderID, err)
		return p
	}

	p.SellOrderID = sellOrderID
	p.TargetPrice = targetPrice
	p.MarginPct = s.cfg.TargetMarginPct
	return p
}

// authoritativeFill picks the aggregate row covering the largest quote
// size. Market IOC buys normally settle as one row; when partial fills
// straddle a minute or price boundary the dominant row decides the sell
// parameters.
func authoritativeFill(summaries []*coinbase.FillSummary) *coinbase.FillSummary {
	var best *coinbase.FillSummary
	for _, s := range summaries {
		if s.Side != "BUY" || s.TradeType != "FILL" {
			continue
		}
		if best == nil || s.Size.GreaterThan(best.Size) {
			best = s
		}
	}
	return best
}
