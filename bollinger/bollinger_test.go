// Copyright (c) 2025 BVK Chaitanya

package bollinger

import (
	"math"
	"testing"
)

func TestUndefinedBelowPeriod(t *testing.T) {
	closes := make([]float64, Period-1)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if _, ok := Lower(closes); ok {
		t.Fatalf("band must be undefined with %d closes", len(closes))
	}
	for i := range closes {
		if _, _, ok := Bands(closes, i); ok {
			t.Fatalf("band must be undefined at index %d", i)
		}
	}
}

func TestConstantSeries(t *testing.T) {
	closes := make([]float64, Period)
	for i := range closes {
		closes[i] = 50
	}
	low, high, ok := Bands(closes, Period-1)
	if !ok {
		t.Fatalf("band must be defined with %d closes", Period)
	}
	if low != 50 || high != 50 {
		t.Fatalf("constant series: want 50/50, got %v/%v", low, high)
	}
}

func TestTrailingWindowOnly(t *testing.T) {
	// A wild value before the window must not affect the band.
	a := append([]float64{1e9}, constant(Period, 10)...)
	b := append([]float64{10}, constant(Period, 10)...)

	lowA, okA := Lower(a)
	lowB, okB := Lower(b)
	if !okA || !okB {
		t.Fatal("band must be defined")
	}
	if lowA != lowB {
		t.Fatalf("values outside the window leaked in: %v != %v", lowA, lowB)
	}
}

func TestSampleStddev(t *testing.T) {
	// 19 identical closes plus one outlier; the sample variance is
	// known in closed form: each of the 19 deviates by d/20 and the
	// outlier by 19*d/20 where d is the outlier distance.
	closes := constant(Period-1, 100)
	closes = append(closes, 120)

	sd, ok := Stddev(closes, Period-1)
	if !ok {
		t.Fatal("stddev must be defined")
	}
	d := 20.0
	want := math.Sqrt((19*(d/20)*(d/20) + (19 * d / 20 * 19 * d / 20)) / (Period - 1))
	if math.Abs(sd-want) > 1e-9 {
		t.Fatalf("want stddev %v, got %v", want, sd)
	}

	mean, _ := SMA(closes, Period-1)
	low, high, _ := Bands(closes, Period-1)
	if got := mean - Width*sd; got != low {
		t.Fatalf("want lower band %v, got %v", got, low)
	}
	if got := mean + Width*sd; got != high {
		t.Fatalf("want upper band %v, got %v", got, high)
	}
}

func constant(n int, v float64) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = v
	}
	return vs
}
