// Copyright (c) 2025 BVK Chaitanya

package tradingview

// Signal is the categorical recommendation for an asset.
type Signal string

const (
	StrongSell = Signal("STRONG_SELL")
	Sell       = Signal("SELL")
	Neutral    = Signal("NEUTRAL")
	Buy        = Signal("BUY")
	StrongBuy  = Signal("STRONG_BUY")
)

// IsBuy reports whether the signal recommends buying.
func (s Signal) IsBuy() bool {
	return s == Buy || s == StrongBuy
}

// signalFromRating maps the scanner's summary rating in [-1, 1] to the
// categorical recommendation, using the same thresholds the tradingview
// frontend uses.
func signalFromRating(rating float64) Signal {
	switch {
	case rating >= 0.5:
		return StrongBuy
	case rating >= 0.1:
		return Buy
	case rating > -0.1:
		return Neutral
	case rating > -0.5:
		return Sell
	default:
		return StrongSell
	}
}
