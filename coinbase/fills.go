// Copyright (c) 2025 BVK Chaitanya

package coinbase

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ListFills returns all fills, optionally restricted to a product and/or
// order id. The endpoint is cursor-paginated; an empty cursor value marks
// the last page (the response carries no has_next indicator that can be
// trusted).
func (c *Client) ListFills(ctx context.Context, productID, orderID string) ([]*Fill, error) {
	values := make(url.Values)
	values.Set("limit", "200")
	if len(productID) > 0 {
		values.Set("product_id", productID)
	}
	if len(orderID) > 0 {
		values.Set("order_id", orderID)
	}

	var fills []*Fill
	for {
		url := &url.URL{
			Scheme:   "https",
			Host:     c.opts.RestHostname,
			Path:     "/api/v3/brokerage/orders/historical/fills",
			RawQuery: values.Encode(),
		}
		resp := new(ListFillsResponse)
		if err := c.httpGetJSON(ctx, url, resp); err != nil {
			return nil, fmt.Errorf("could not http-get fills: %w", err)
		}
		fills = append(fills, resp.Fills...)
		if len(resp.Cursor) == 0 {
			break
		}
		values.Set("cursor", resp.Cursor)
	}
	return fills, nil
}

// FillSummary is one aggregated fill row: all fills of an order that share
// trade type, product, price, size-in-quote flag, side and trade minute,
// with their sizes, commissions and totals summed.
type FillSummary struct {
	OrderID     string
	TradeType   string
	ProductID   string
	Price       decimal.Decimal
	SizeInQuote bool
	Side        string

	// Minute is the fill trade time floored to the minute.
	Minute time.Time

	Size       decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

type fillKey struct {
	orderID     string
	tradeType   string
	productID   string
	price       string
	sizeInQuote bool
	side        string
	minute      int64
}

// AggregateFills groups fills by (order id, trade type, product id, price,
// size-in-quote, side, minute) summing size, commission and total
// (= size + commission). The result is ordered by minute ascending and, for
// equal minutes, by size descending.
func AggregateFills(fills []*Fill) []*FillSummary {
	groups := make(map[fillKey]*FillSummary)
	var order []fillKey
	for _, f := range fills {
		minute := f.TradeTime.Time.Truncate(time.Minute)
		key := fillKey{
			orderID:     f.OrderID,
			tradeType:   f.TradeType,
			productID:   f.ProductID,
			price:       f.Price.Decimal.String(),
			sizeInQuote: f.SizeInQuote,
			side:        f.Side,
			minute:      minute.Unix(),
		}
		g, ok := groups[key]
		if !ok {
			g = &FillSummary{
				OrderID:     f.OrderID,
				TradeType:   f.TradeType,
				ProductID:   f.ProductID,
				Price:       f.Price.Decimal,
				SizeInQuote: f.SizeInQuote,
				Side:        f.Side,
				Minute:      minute,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Size = g.Size.Add(f.Size.Decimal)
		g.Commission = g.Commission.Add(f.Commission.Decimal)
		g.Total = g.Total.Add(f.Size.Decimal).Add(f.Commission.Decimal)
	}

	summaries := make([]*FillSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, groups[key])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].Minute.Equal(summaries[j].Minute) {
			return summaries[i].Minute.Before(summaries[j].Minute)
		}
		return summaries[i].Size.GreaterThan(summaries[j].Size)
	})
	return summaries
}

// AggregatedFills fetches and aggregates fills for a product and/or order.
func (c *Client) AggregatedFills(ctx context.Context, productID, orderID string) ([]*FillSummary, error) {
	fills, err := c.ListFills(ctx, productID, orderID)
	if err != nil {
		return nil, err
	}
	return AggregateFills(fills), nil
}

// LastBuyFill returns the newest settled buy time among the given
// summaries. The false return means no settled buy exists, which is not an
// error.
func LastBuyFill(summaries []*FillSummary) (time.Time, bool) {
	var last time.Time
	var found bool
	for _, s := range summaries {
		if s.Side != "BUY" || s.TradeType != "FILL" {
			continue
		}
		if s.Minute.After(last) {
			last = s.Minute
			found = true
		}
	}
	return last, found
}
