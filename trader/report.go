// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BuyDecision records the outcome of evaluating one asset, whether or not a
// buy was submitted. One row per candidate currency per run.
type BuyDecision struct {
	Currency      string `json:"currency"`
	ProductID     string `json:"product_id"`
	QuoteCurrency string `json:"quote_currency,omitempty"`

	Price        float64 `json:"price,omitempty"`
	BollingerLow float64 `json:"bb_low,omitempty"`
	Signal       string  `json:"signal,omitempty"`

	LastBuyFill      *time.Time `json:"last_buy_fill,omitempty"`
	IdleHoursReached bool       `json:"idle_hours_reached"`

	Bought       bool            `json:"bought"`
	BuyOrderID   string          `json:"buy_order_id,omitempty"`
	InvestAmount decimal.Decimal `json:"invest_amount,omitempty"`

	// Error is set when the asset could not be evaluated. It never aborts
	// the other assets.
	Error string `json:"error,omitempty"`
}

func (v *BuyDecision) String() string {
	if len(v.Error) > 0 {
		return fmt.Sprintf("no order placed for %s: %s", v.Currency, v.Error)
	}
	if v.Bought {
		return fmt.Sprintf("order now: %s, price: %g%s, amount: %s%s and order id %s",
			v.ProductID, v.Price, v.QuoteCurrency, v.InvestAmount, v.QuoteCurrency, v.BuyOrderID)
	}
	last := "never"
	if v.LastBuyFill != nil {
		last = v.LastBuyFill.Format(time.RFC3339)
	}
	return fmt.Sprintf("no order placed for %s; current value: %g%s; bb low: %g%s; signal: %s; last trade was on %s (%t)",
		v.Currency, v.Price, v.QuoteCurrency, v.BollingerLow, v.QuoteCurrency, v.Signal, last, v.IdleHoursReached)
}

// SellPromotion records the outcome of promoting one pending ledger record
// into a stop-limit sell order.
type SellPromotion struct {
	BuyOrderID  string `json:"buy_order_id"`
	SellOrderID string `json:"sell_order_id,omitempty"`

	ProductID     string          `json:"product_id,omitempty"`
	QuoteCurrency string          `json:"quote_currency,omitempty"`
	TargetPrice   decimal.Decimal `json:"target_price,omitempty"`
	MarginPct     decimal.Decimal `json:"margin_pct,omitempty"`

	// Error is set when this record's promotion was abandoned. The record
	// stays pending and is retried on a later run.
	Error string `json:"error,omitempty"`
}

func (v *SellPromotion) String() string {
	if len(v.Error) > 0 {
		return fmt.Sprintf("sell order for buy order %s not created: %s", v.BuyOrderID, v.Error)
	}
	return fmt.Sprintf("stop limit sell order %s for equivalent market buy order %s created with target price %s%s (target margin: %s%%)",
		v.SellOrderID, v.BuyOrderID, v.TargetPrice, v.QuoteCurrency, v.MarginPct)
}

// Report is the JSON result of one invocation.
type Report struct {
	Status         string           `json:"status"`
	BuyDecisions   []*BuyDecision   `json:"buy_decisions"`
	SellPromotions []*SellPromotion `json:"sell_promotions"`
}
