// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"context"
	"fmt"
)

// Trader runs one full invocation: the buy decision loop over all
// configured assets followed by the sell promotion pass over all pending
// ledger records.
type Trader struct {
	buyer  *Buyer
	seller *Seller
}

func New(cfg *Config, gateway Gateway, signals Signals, ldg Ledger) (*Trader, error) {
	buyer, err := NewBuyer(cfg, gateway, signals, ldg)
	if err != nil {
		return nil, fmt.Errorf("could not create buyer: %w", err)
	}
	seller, err := NewSeller(cfg, gateway, ldg)
	if err != nil {
		return nil, fmt.Errorf("could not create seller: %w", err)
	}
	return &Trader{buyer: buyer, seller: seller}, nil
}

// Run performs the two phases sequentially and returns their combined
// report. Phase errors returned here are invocation-level failures;
// per-asset and per-record failures appear inside the report rows.
func (t *Trader) Run(ctx context.Context) (*Report, error) {
	decisions, err := t.buyer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("buy decision phase has failed: %w", err)
	}
	promotions, err := t.seller.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("sell promotion phase has failed: %w", err)
	}
	return &Report{
		Status:         "ok",
		BuyDecisions:   decisions,
		SellPromotions: promotions,
	}, nil
}
