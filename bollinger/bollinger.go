// Copyright (c) 2025 BVK Chaitanya

// Package bollinger computes Bollinger Bands over a series of closing
// prices. All functions are pure; callers are responsible for supplying the
// closes in ascending time order within a single (product, granularity)
// partition.
package bollinger

import "math"

// Period is the number of observations in the moving window. Band values
// are undefined until this many closes are available.
const Period = 20

// Width is the number of standard deviations between the moving average and
// each band.
const Width = 2

// SMA returns the simple moving average of the trailing Period closes
// ending at index i. Returns false when fewer than Period observations are
// available at i.
func SMA(closes []float64, i int) (float64, bool) {
	if i < Period-1 || i >= len(closes) {
		return 0, false
	}
	var sum float64
	for _, c := range closes[i-Period+1 : i+1] {
		sum += c
	}
	return sum / Period, true
}

// Stddev returns the sample standard deviation (N-1 denominator) of the
// trailing Period closes ending at index i.
func Stddev(closes []float64, i int) (float64, bool) {
	mean, ok := SMA(closes, i)
	if !ok {
		return 0, false
	}
	var sum float64
	for _, c := range closes[i-Period+1 : i+1] {
		d := c - mean
		sum += d * d
	}
	return math.Sqrt(sum / (Period - 1)), true
}

// Bands returns the lower and upper Bollinger band values at index i.
func Bands(closes []float64, i int) (low, high float64, ok bool) {
	mean, ok := SMA(closes, i)
	if !ok {
		return 0, 0, false
	}
	sd, _ := Stddev(closes, i)
	return mean - Width*sd, mean + Width*sd, true
}

// Lower returns the lower band value for the most recent close. Returns
// false when the series is shorter than Period.
func Lower(closes []float64) (float64, bool) {
	low, _, ok := Bands(closes, len(closes)-1)
	return low, ok
}
