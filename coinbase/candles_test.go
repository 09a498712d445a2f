// Copyright (c) 2025 BVK Chaitanya

package coinbase

import (
	"encoding/json"
	"testing"
)

func TestCandlesFromRows(t *testing.T) {
	// Newest-first tuples, as returned by the exchange.
	data := `[
	  [1675728000, 22000.1, 23500.9, 22500, 23000.5, 1234.5],
	  [1675641600, 21000, 22800, 21500, 22400, 987.6]
	]`
	var rows [][]float64
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		t.Fatal(err)
	}

	cs, err := candlesFromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Fatalf("want 2 candles, got %d", len(cs))
	}
	if !cs[0].Start.Before(cs[1].Start) {
		t.Error("candles must be sorted oldest first")
	}
	if cs[0].Close != 22400 || cs[1].Close != 23000.5 {
		t.Errorf("unexpected closes: %v %v", cs[0].Close, cs[1].Close)
	}

	closes := Closes(cs)
	if len(closes) != 2 || closes[0] != 22400 {
		t.Errorf("unexpected Closes result: %v", closes)
	}
}

func TestCandlesFromRowsShortRow(t *testing.T) {
	if _, err := candlesFromRows([][]float64{{1675728000, 1, 2}}); err == nil {
		t.Fatal("short candle row must be an error")
	}
}

func TestGranularitySeconds(t *testing.T) {
	tests := []struct {
		g    Granularity
		want int64
	}{
		{OneMin, 60},
		{FifteenMin, 900},
		{SixtyMin, 3600},
		{Daily, 86400},
	}
	for _, test := range tests {
		secs, err := test.g.seconds()
		if err != nil {
			t.Fatal(err)
		}
		if secs != test.want {
			t.Errorf("%s: want %d, got %d", test.g, test.want, secs)
		}
	}
	if _, err := Granularity("5MIN").seconds(); err == nil {
		t.Error("unsupported granularity must be an error")
	}
}
