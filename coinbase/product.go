// Copyright (c) 2025 BVK Chaitanya

package coinbase

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

// ServerTime returns the exchange's current time. Decisions are made
// against this clock, not the local one.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	url := &url.URL{
		Scheme: "https",
		Host:   c.opts.ExchangeHostname,
		Path:   "/time",
	}
	resp := new(serverTimeResponse)
	if err := c.publicGetJSON(ctx, url, resp); err != nil {
		return time.Time{}, fmt.Errorf("could not http-get server time: %w", err)
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999Z", resp.ISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse server timestamp %q: %w", resp.ISO, err)
	}
	return t, nil
}

// ProductInfo returns product metadata for the given id (eg: "BTC-EUR").
func (c *Client) ProductInfo(ctx context.Context, productID string) (*ProductInfo, error) {
	url := &url.URL{
		Scheme: "https",
		Host:   c.opts.ExchangeHostname,
		Path:   path.Join("/products", productID),
	}
	resp := new(ProductInfo)
	if err := c.publicGetJSON(ctx, url, resp); err != nil {
		return nil, fmt.Errorf("could not http-get product %q: %w", productID, err)
	}
	return resp, nil
}

// ProductStats returns the 24h stats snapshot for the given product id.
func (c *Client) ProductStats(ctx context.Context, productID string) (*ProductStats, error) {
	url := &url.URL{
		Scheme: "https",
		Host:   c.opts.ExchangeHostname,
		Path:   path.Join("/products", productID, "stats"),
	}
	resp := new(ProductStats)
	if err := c.publicGetJSON(ctx, url, resp); err != nil {
		return nil, fmt.Errorf("could not http-get product stats %q: %w", productID, err)
	}
	return resp, nil
}

// DecimalPlaces returns the number of digits after the decimal point in the
// canonical string form of the value. Zero for integral values.
func DecimalPlaces(v decimal.Decimal) int32 {
	if e := v.Exponent(); e < 0 {
		return -e
	}
	return 0
}
