// Copyright (c) 2025 BVK Chaitanya

// Package tradingview fetches buy/sell recommendations from the tradingview
// scanner api.
package tradingview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

type Options struct {
	ScannerHostname string

	// Screener is the scanner category, "crypto" for exchange-traded
	// crypto symbols.
	Screener string

	// Interval is the recommendation interval suffix, "1" for one minute.
	Interval string

	HttpClientTimeout time.Duration
}

func (v *Options) setDefaults() {
	if len(v.ScannerHostname) == 0 {
		v.ScannerHostname = "scanner.tradingview.com"
	}
	if len(v.Screener) == 0 {
		v.Screener = "crypto"
	}
	if len(v.Interval) == 0 {
		v.Interval = "1"
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 10 * time.Second
	}
}

type Client struct {
	opts Options

	client *http.Client
}

func New(opts *Options) *Client {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()
	return &Client{
		opts: *opts,
		client: &http.Client{
			Timeout: opts.HttpClientTimeout,
		},
	}
}

type scanRequest struct {
	Symbols scanSymbols `json:"symbols"`
	Columns []string    `json:"columns"`
}

type scanSymbols struct {
	Tickers []string  `json:"tickers"`
	Query   scanQuery `json:"query"`
}

type scanQuery struct {
	Types []string `json:"types"`
}

type scanResponse struct {
	TotalCount int        `json:"totalCount"`
	Data       []scanItem `json:"data"`
}

type scanItem struct {
	Symbol string    `json:"s"`
	Values []float64 `json:"d"`
}

// Recommendation returns the categorical signal for the given symbol on the
// given exchange (eg: "COINBASE", "BTCEUR").
func (c *Client) Recommendation(ctx context.Context, exchange, symbol string) (Signal, error) {
	ticker := exchange + ":" + symbol
	req := &scanRequest{
		Symbols: scanSymbols{
			Tickers: []string{ticker},
			Query:   scanQuery{Types: []string{}},
		},
		Columns: []string{"Recommend.All|" + c.opts.Interval},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := &url.URL{
		Scheme: "https",
		Host:   c.opts.ScannerHostname,
		Path:   path.Join("/", c.opts.Screener, "scan"),
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	hreq.Header.Add("Content-Type", "application/json")

	hresp, err := c.client.Do(hreq)
	if err != nil {
		return "", err
	}
	defer hresp.Body.Close()
	if hresp.StatusCode != http.StatusOK {
		slog.Error("scanner http POST is unsuccessful", "status", hresp.StatusCode, "ticker", ticker)
		return "", fmt.Errorf("scanner http POST returned %d", hresp.StatusCode)
	}

	resp := new(scanResponse)
	if err := json.NewDecoder(hresp.Body).Decode(resp); err != nil {
		slog.Error("could not decode scanner response to json", "error", err)
		return "", err
	}
	for _, item := range resp.Data {
		if item.Symbol == ticker && len(item.Values) > 0 {
			return signalFromRating(item.Values[0]), nil
		}
	}
	return "", fmt.Errorf("scanner response carries no rating for %q", ticker)
}
