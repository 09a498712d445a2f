// Copyright (c) 2025 BVK Chaitanya

// Package ledger persists one record per market buy order and tracks
// whether its matching sell order has been created.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the persisted state of one buy order and its (eventual)
// sell leg. Records are created sparse right after the buy is submitted and
// enriched through merges as the buy settles and the sell is placed.
type OrderRecord struct {
	// BuyOrderID is the record key. Never empty.
	BuyOrderID string

	ProductID     string
	BaseCurrency  string
	QuoteCurrency string

	BuyDate            time.Time
	BuyBasePrice       decimal.Decimal
	BuyBaseSize        decimal.Decimal
	BuyQuoteSize       decimal.Decimal
	BuyQuoteCommission decimal.Decimal
	BuyQuoteTotalSize  decimal.Decimal

	// SellOrderID is empty while the sell leg is still pending.
	SellOrderID     string
	SellTargetPrice decimal.Decimal
	SellCreatedAt   time.Time

	// TargetMargin is the applied margin as a fraction (0.025 for 2.5%).
	TargetMargin decimal.Decimal

	// Decision-time context.
	BollingerLow float64
	Signal       string
}

// mergeFrom overlays every non-zero field of src. Unset fields of src never
// clear existing values, which makes repeated merges of the same partial
// record idempotent.
func (v *OrderRecord) mergeFrom(src *OrderRecord) {
	if len(src.BuyOrderID) > 0 {
		v.BuyOrderID = src.BuyOrderID
	}
	if len(src.ProductID) > 0 {
		v.ProductID = src.ProductID
	}
	if len(src.BaseCurrency) > 0 {
		v.BaseCurrency = src.BaseCurrency
	}
	if len(src.QuoteCurrency) > 0 {
		v.QuoteCurrency = src.QuoteCurrency
	}
	if !src.BuyDate.IsZero() {
		v.BuyDate = src.BuyDate
	}
	if !src.BuyBasePrice.IsZero() {
		v.BuyBasePrice = src.BuyBasePrice
	}
	if !src.BuyBaseSize.IsZero() {
		v.BuyBaseSize = src.BuyBaseSize
	}
	if !src.BuyQuoteSize.IsZero() {
		v.BuyQuoteSize = src.BuyQuoteSize
	}
	if !src.BuyQuoteCommission.IsZero() {
		v.BuyQuoteCommission = src.BuyQuoteCommission
	}
	if !src.BuyQuoteTotalSize.IsZero() {
		v.BuyQuoteTotalSize = src.BuyQuoteTotalSize
	}
	if len(src.SellOrderID) > 0 {
		v.SellOrderID = src.SellOrderID
	}
	if !src.SellTargetPrice.IsZero() {
		v.SellTargetPrice = src.SellTargetPrice
	}
	if !src.SellCreatedAt.IsZero() {
		v.SellCreatedAt = src.SellCreatedAt
	}
	if !src.TargetMargin.IsZero() {
		v.TargetMargin = src.TargetMargin
	}
	if src.BollingerLow != 0 {
		v.BollingerLow = src.BollingerLow
	}
	if len(src.Signal) > 0 {
		v.Signal = src.Signal
	}
}
