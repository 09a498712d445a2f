// Copyright (c) 2025 BVK Chaitanya

package coinbase

import "time"

type Options struct {
	// RestHostname is the hostname for the authenticated Advanced Trade
	// endpoints.
	RestHostname string

	// ExchangeHostname is the hostname for the public market-data endpoints.
	ExchangeHostname string

	HttpClientTimeout time.Duration

	// RateLimit is the maximum number of REST requests per second.
	RateLimit int

	// MaxFetchRetries is the number of times a throttled GET is retried.
	MaxFetchRetries int

	// RetryInterval is the wait between throttled GET retries.
	RetryInterval time.Duration
}

func (v *Options) setDefaults() {
	if len(v.RestHostname) == 0 {
		v.RestHostname = "coinbase.com"
	}
	if len(v.ExchangeHostname) == 0 {
		v.ExchangeHostname = "api.exchange.coinbase.com"
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 10 * time.Second
	}
	if v.RateLimit == 0 {
		v.RateLimit = 25
	}
	if v.MaxFetchRetries == 0 {
		v.MaxFetchRetries = 3
	}
	if v.RetryInterval == 0 {
		v.RetryInterval = time.Second
	}
}
