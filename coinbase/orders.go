// Copyright (c) 2025 BVK Chaitanya

package coinbase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// StopDirectionStopUp triggers the stop when the last trade price rises
// above the stop price. Sells promoted by this bot are profit targets, so
// the stop watches for the price rising to the target, not falling.
const StopDirectionStopUp = "STOP_DIRECTION_STOP_UP"

func (c *Client) createOrder(ctx context.Context, request *CreateOrderRequest) (string, error) {
	url := &url.URL{
		Scheme: "https",
		Host:   c.opts.RestHostname,
		Path:   "/api/v3/brokerage/orders",
	}
	resp := new(CreateOrderResponse)
	if err := c.httpPostJSON(ctx, url, request, resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.ErrorResponse != nil {
			return "", fmt.Errorf("could not create order: %s: %s", resp.FailureReason, resp.ErrorResponse.Message)
		}
		return "", fmt.Errorf("could not create order: %s", resp.FailureReason)
	}
	if len(resp.OrderID) == 0 {
		return "", fmt.Errorf("create order response carries no order id")
	}
	return resp.OrderID, nil
}

// CreateMarketBuy submits a market buy spending quoteSize of the quote
// currency (eg: 50 EUR of BTC-EUR). Returns the server order id.
func (c *Client) CreateMarketBuy(ctx context.Context, clientOrderID, productID string, quoteSize decimal.Decimal) (string, error) {
	req := &CreateOrderRequest{
		ClientOrderID: clientOrderID,
		ProductID:     productID,
		Side:          "BUY",
		Order: &OrderConfig{
			MarketIOC: &MarketMarketIOC{
				QuoteSize: NullDecimal{Decimal: quoteSize},
			},
		},
	}
	return c.createOrder(ctx, req)
}

// CreateStopLimitSell submits a good-til-canceled stop-limit sell of
// baseSize in the base currency, triggered when the price rises above the
// stop price.
func (c *Client) CreateStopLimitSell(ctx context.Context, clientOrderID, productID string, baseSize, stopPrice, limitPrice decimal.Decimal) (string, error) {
	req := &CreateOrderRequest{
		ClientOrderID: clientOrderID,
		ProductID:     productID,
		Side:          "SELL",
		Order: &OrderConfig{
			StopLimitGTC: &StopLimitStopLimitGTC{
				BaseSize:      NullDecimal{Decimal: baseSize},
				StopPrice:     NullDecimal{Decimal: stopPrice},
				LimitPrice:    NullDecimal{Decimal: limitPrice},
				StopDirection: StopDirectionStopUp,
			},
		},
	}
	return c.createOrder(ctx, req)
}
