// Copyright (c) 2025 BVK Chaitanya

package coinbase

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strconv"
	"time"
)

// Granularity selects the candle bucket duration.
type Granularity string

const (
	Daily      = Granularity("DAILY")
	SixtyMin   = Granularity("60MIN")
	FifteenMin = Granularity("15MIN")
	OneMin     = Granularity("1MIN")
)

func (g Granularity) seconds() (int64, error) {
	switch g {
	case OneMin:
		return 60, nil
	case FifteenMin:
		return 900, nil
	case SixtyMin:
		return 3600, nil
	case Daily:
		return 86400, nil
	}
	return 0, fmt.Errorf("invalid candle granularity %q", string(g))
}

// Candle is one OHLCV observation. Values are float64 because the indicator
// math over them follows floating-point semantics.
type Candle struct {
	Start time.Time

	Low    float64
	High   float64
	Open   float64
	Close  float64
	Volume float64
}

// Candles returns the historic candles for the given product and time range
// in ascending start-time order. The exchange returns candles as
// [time, low, high, open, close, volume] tuples.
func (c *Client) Candles(ctx context.Context, productID string, g Granularity, start, end time.Time) ([]*Candle, error) {
	secs, err := g.seconds()
	if err != nil {
		return nil, err
	}

	values := make(url.Values)
	values.Set("start", start.Format(time.RFC3339))
	values.Set("end", end.Format(time.RFC3339))
	values.Set("granularity", strconv.FormatInt(secs, 10))

	url := &url.URL{
		Scheme:   "https",
		Host:     c.opts.ExchangeHostname,
		Path:     path.Join("/products", productID, "candles"),
		RawQuery: values.Encode(),
	}
	var rows [][]float64
	if err := c.publicGetJSON(ctx, url, &rows); err != nil {
		return nil, fmt.Errorf("could not http-get product candles %q: %w", productID, err)
	}

	cs, err := candlesFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected candles response for %q: %w", productID, err)
	}
	return cs, nil
}

func candlesFromRows(rows [][]float64) ([]*Candle, error) {
	cs := make([]*Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("candle row %d has %d columns", i, len(row))
		}
		cs = append(cs, &Candle{
			Start:  time.Unix(int64(row[0]), 0).UTC(),
			Low:    row[1],
			High:   row[2],
			Open:   row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}
	// The exchange returns newest first; indicator math needs oldest first.
	sort.Slice(cs, func(i, j int) bool {
		return cs[i].Start.Before(cs[j].Start)
	})
	return cs, nil
}

// Closes extracts the closing prices in the slice order.
func Closes(cs []*Candle) []float64 {
	closes := make([]float64, len(cs))
	for i, c := range cs {
		closes[i] = c.Close
	}
	return closes
}
