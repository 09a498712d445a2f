// Copyright (c) 2025 BVK Chaitanya

package coinbase

// Public exchange api responses.

type serverTimeResponse struct {
	ISO   string  `json:"iso"`
	Epoch float64 `json:"epoch"`
}

// ProductInfo holds the product metadata needed to round order parameters
// to tradeable precision.
type ProductInfo struct {
	ID             string      `json:"id"`
	BaseCurrency   string      `json:"base_currency"`
	QuoteCurrency  string      `json:"quote_currency"`
	BaseIncrement  NullDecimal `json:"base_increment"`
	QuoteIncrement NullDecimal `json:"quote_increment"`
	QuoteMinSize   NullDecimal `json:"min_market_funds"`
	Status         string      `json:"status"`
	TradingDisabled bool       `json:"trading_disabled"`
}

// ProductStats is the rolling 24 hour snapshot for one product.
type ProductStats struct {
	Open        NullDecimal `json:"open"`
	High        NullDecimal `json:"high"`
	Low         NullDecimal `json:"low"`
	Last        NullDecimal `json:"last"`
	Volume      NullDecimal `json:"volume"`
	Volume30Day NullDecimal `json:"volume_30day"`
}

// Authenticated brokerage api types.

type Fill struct {
	EntryID            string      `json:"entry_id"`
	TradeID            string      `json:"trade_id"`
	OrderID            string      `json:"order_id"`
	TradeTime          RemoteTime  `json:"trade_time"`
	TradeType          string      `json:"trade_type"`
	Price              NullDecimal `json:"price"`
	Size               NullDecimal `json:"size"`
	Commission         NullDecimal `json:"commission"`
	ProductID          string      `json:"product_id"`
	SequenceTimestamp  RemoteTime  `json:"sequence_timestamp"`
	LiquidityIndicator string      `json:"liquidity_indicator"`
	SizeInQuote        bool        `json:"size_in_quote"`
	UserID             string      `json:"user_id"`
	Side               string      `json:"side"`
}

type ListFillsResponse struct {
	Fills  []*Fill `json:"fills"`
	Cursor string  `json:"cursor"`
}

type MarketMarketIOC struct {
	QuoteSize NullDecimal `json:"quote_size"`
}

type StopLimitStopLimitGTC struct {
	BaseSize      NullDecimal `json:"base_size"`
	LimitPrice    NullDecimal `json:"limit_price"`
	StopPrice     NullDecimal `json:"stop_price"`
	StopDirection string      `json:"stop_direction"`
}

type OrderConfig struct {
	MarketIOC    *MarketMarketIOC       `json:"market_market_ioc,omitempty"`
	StopLimitGTC *StopLimitStopLimitGTC `json:"stop_limit_stop_limit_gtc,omitempty"`
}

type CreateOrderRequest struct {
	ClientOrderID string       `json:"client_order_id"`
	ProductID     string       `json:"product_id"`
	Side          string       `json:"side"`
	Order         *OrderConfig `json:"order_configuration"`
}

type CreateOrderResponse struct {
	Success bool `json:"success"`

	OrderID     string       `json:"order_id"`
	OrderConfig *OrderConfig `json:"order_configuration"`

	FailureReason string                    `json:"failure_reason"`
	ErrorResponse *CreateOrderErrorResponse `json:"error_response"`
}

type CreateOrderErrorResponse struct {
	Error                 string `json:"error"`
	Message               string `json:"message"`
	ErrorDetail           string `json:"error_details"`
	NewOrderFailureReason string `json:"new_order_failure_reason"`
}
