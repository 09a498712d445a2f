// Copyright (c) 2025 BVK Chaitanya

package ledger

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bvkgo/kv/kvmemdb"
	"github.com/shopspring/decimal"
)

func TestMergeCreatesAndEnriches(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())

	first := &OrderRecord{
		BuyOrderID:    "order-1",
		ProductID:     "BTC-EUR",
		BaseCurrency:  "BTC",
		QuoteCurrency: "EUR",
		BollingerLow:  25000.5,
		Signal:        "BUY",
	}
	if err := store.Merge(ctx, first); err != nil {
		t.Fatal(err)
	}

	enrich := &OrderRecord{
		BuyOrderID:   "order-1",
		BuyDate:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		BuyBasePrice: decimal.RequireFromString("24950.25"),
		BuyBaseSize:  decimal.RequireFromString("0.002"),
		BuyQuoteSize: decimal.RequireFromString("49.9005"),
	}
	if err := store.Merge(ctx, enrich); err != nil {
		t.Fatal(err)
	}

	rec, err := store.Get(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ProductID != "BTC-EUR" {
		t.Errorf("merge dropped product id: got %q", rec.ProductID)
	}
	if rec.Signal != "BUY" {
		t.Errorf("merge dropped signal: got %q", rec.Signal)
	}
	if !rec.BuyBasePrice.Equal(decimal.RequireFromString("24950.25")) {
		t.Errorf("merge did not apply buy price: got %s", rec.BuyBasePrice)
	}
	if rec.BuyDate.IsZero() {
		t.Errorf("merge did not apply buy date")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())

	rec := &OrderRecord{
		BuyOrderID:   "order-1",
		ProductID:    "ETH-EUR",
		BuyBasePrice: decimal.RequireFromString("1800"),
	}
	for i := 0; i < 3; i++ {
		if err := store.Merge(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("want one record, got %d", len(recs))
	}
	if !recs[0].BuyBasePrice.Equal(decimal.RequireFromString("1800")) {
		t.Errorf("unexpected buy price %s", recs[0].BuyBasePrice)
	}
}

func TestMergeNeverClearsFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())

	full := &OrderRecord{
		BuyOrderID:      "order-1",
		SellOrderID:     "sell-1",
		SellTargetPrice: decimal.RequireFromString("102.63"),
	}
	if err := store.Merge(ctx, full); err != nil {
		t.Fatal(err)
	}
	sparse := &OrderRecord{
		BuyOrderID: "order-1",
		Signal:     "STRONG_BUY",
	}
	if err := store.Merge(ctx, sparse); err != nil {
		t.Fatal(err)
	}

	rec, err := store.Get(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.SellOrderID != "sell-1" {
		t.Errorf("sparse merge cleared sell order id: got %q", rec.SellOrderID)
	}
	if rec.Signal != "STRONG_BUY" {
		t.Errorf("sparse merge did not apply signal: got %q", rec.Signal)
	}
}

func TestPending(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())

	records := []*OrderRecord{
		{BuyOrderID: "order-1", ProductID: "BTC-EUR"},
		{BuyOrderID: "order-2", ProductID: "ETH-EUR", SellOrderID: "sell-2"},
		{BuyOrderID: "order-3", ProductID: "SOL-EUR"},
	}
	for _, rec := range records {
		if err := store.Merge(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := store.Pending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("want two pending records, got %d", len(pending))
	}
	for _, rec := range pending {
		if len(rec.SellOrderID) != 0 {
			t.Errorf("record %q is not pending", rec.BuyOrderID)
		}
	}
}

func TestMergeRejectsEmptyID(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())
	if err := store.Merge(ctx, &OrderRecord{ProductID: "BTC-EUR"}); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("want os.ErrInvalid, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvmemdb.New())
	if _, err := store.Get(ctx, "no-such-order"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}
