// Copyright (c) 2025 BVK Chaitanya

package trader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// SignalSymbol maps a base currency to its identity at the advisory
// service.
type SignalSymbol struct {
	// Currency is the base currency code, e.g., "BTC".
	Currency string `json:"currency"`

	// Exchange is the advisory service's exchange code, e.g., "COINBASE".
	Exchange string `json:"exchange"`

	// Symbol is the advisory service's ticker, e.g., "BTCEUR".
	Symbol string `json:"symbol"`
}

// Config carries all trading parameters. Decision logic never consults the
// environment directly.
type Config struct {
	// QuoteCurrency is the currency invested and received, e.g., "EUR".
	QuoteCurrency string `json:"quote_currency"`

	// BaseCurrencies are the candidate assets, e.g., ["BTC", "ETH"].
	BaseCurrencies []string `json:"base_currencies"`

	// IdleHours is the minimum number of hours since the last settled buy
	// of an asset before another buy of it is allowed.
	IdleHours float64 `json:"idle_hours"`

	// InvestAmount is the quote-currency size of every market buy.
	InvestAmount decimal.Decimal `json:"invest_amount"`

	// TargetMarginPct is the sell target margin in percent, e.g., 2.5.
	TargetMarginPct decimal.Decimal `json:"target_margin_pct"`

	// Symbols holds the advisory-service identity per base currency.
	Symbols []SignalSymbol `json:"symbols"`
}

func (c *Config) Check() error {
	if len(c.QuoteCurrency) == 0 {
		return fmt.Errorf("quote currency cannot be empty")
	}
	if len(c.BaseCurrencies) == 0 {
		return fmt.Errorf("base currency list cannot be empty")
	}
	if c.IdleHours < 0 {
		return fmt.Errorf("idle hours cannot be negative")
	}
	if c.InvestAmount.IsZero() || c.InvestAmount.IsNegative() {
		return fmt.Errorf("invest amount must be positive")
	}
	if c.TargetMarginPct.IsZero() || c.TargetMarginPct.IsNegative() {
		return fmt.Errorf("target margin must be positive")
	}
	for _, bc := range c.BaseCurrencies {
		if _, ok := c.signalSymbol(bc); !ok {
			return fmt.Errorf("no signal symbol configured for currency %q", bc)
		}
	}
	return nil
}

func (c *Config) signalSymbol(currency string) (SignalSymbol, bool) {
	for _, s := range c.Symbols {
		if s.Currency == currency {
			return s, true
		}
	}
	return SignalSymbol{}, false
}

func (c *Config) productID(currency string) string {
	return currency + "-" + c.QuoteCurrency
}

// ConfigFromEnv builds a Config from the process environment.
//
//	QUOTE_CURRENCY                            "EUR"
//	BOT_ONE_CRYPTO_CURRENCIES                 ["BTC","ETH"]
//	BOT_ONE_IDLE_HOURS_BEFORE_NEXT_PURCHASE   24
//	BOT_ONE_INVEST_EUR                        50
//	BOT_ONE_TARGET_MARGIN_PERCENTAGE          2.5
//	TRADING_VIEW_SYMBOLS                      [["BTC","COINBASE","BTCEUR"],...]
func ConfigFromEnv() (*Config, error) {
	c := &Config{
		QuoteCurrency: os.Getenv("QUOTE_CURRENCY"),
	}
	if v := os.Getenv("BOT_ONE_CRYPTO_CURRENCIES"); len(v) > 0 {
		if err := json.Unmarshal([]byte(v), &c.BaseCurrencies); err != nil {
			return nil, fmt.Errorf("could not parse BOT_ONE_CRYPTO_CURRENCIES: %w", err)
		}
	}
	if v := os.Getenv("BOT_ONE_IDLE_HOURS_BEFORE_NEXT_PURCHASE"); len(v) > 0 {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse BOT_ONE_IDLE_HOURS_BEFORE_NEXT_PURCHASE: %w", err)
		}
		c.IdleHours = hours
	}
	if v := os.Getenv("BOT_ONE_INVEST_EUR"); len(v) > 0 {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("could not parse BOT_ONE_INVEST_EUR: %w", err)
		}
		c.InvestAmount = amount
	}
	if v := os.Getenv("BOT_ONE_TARGET_MARGIN_PERCENTAGE"); len(v) > 0 {
		margin, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("could not parse BOT_ONE_TARGET_MARGIN_PERCENTAGE: %w", err)
		}
		c.TargetMarginPct = margin
	}
	if v := os.Getenv("TRADING_VIEW_SYMBOLS"); len(v) > 0 {
		var triples [][]string
		if err := json.Unmarshal([]byte(v), &triples); err != nil {
			return nil, fmt.Errorf("could not parse TRADING_VIEW_SYMBOLS: %w", err)
		}
		for _, t := range triples {
			if len(t) != 3 {
				return nil, fmt.Errorf("trading view symbol %v must have three fields", t)
			}
			c.Symbols = append(c.Symbols, SignalSymbol{Currency: t[0], Exchange: t[1], Symbol: t[2]})
		}
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}
