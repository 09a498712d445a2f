// Copyright (c) 2025 BVK Chaitanya

// Package coinbase implements the exchange gateway: public market data
// (product metadata, 24h stats, candles, server time) and authenticated
// trading operations (fills, market buys, stop-limit sells) against the
// Coinbase Advanced Trade REST api.
package coinbase

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type Credentials struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

func (v *Credentials) Check() error {
	if len(v.Key) == 0 {
		return fmt.Errorf("api key cannot be empty")
	}
	if len(v.Secret) == 0 {
		return fmt.Errorf("api secret cannot be empty")
	}
	return nil
}

type Client struct {
	opts Options

	key    string
	secret []byte

	client *http.Client

	limiter *rate.Limiter
}

// New creates a client for the coinbase exchange.
func New(key, secret string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()

	c := &Client{
		opts:   *opts,
		key:    key,
		secret: []byte(secret),
		client: &http.Client{
			Timeout: opts.HttpClientTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
	return c, nil
}

func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// sign returns the hex-encoded HMAC-SHA256 signature over
// timestamp+method+path+body with the api secret.
func (c *Client) sign(message string) string {
	signature := hmac.New(sha256.New, c.secret)
	if _, err := signature.Write([]byte(message)); err != nil {
		slog.Error("could not write to hmac stream (ignored)", "error", err)
		return ""
	}
	return hex.EncodeToString(signature.Sum(nil))
}

func (c *Client) setAuthHeaders(req *http.Request, at time.Time, body []byte) {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	// Signature covers the path without the query string.
	sdata := fmt.Sprintf("%s%s%s%s", timestamp, req.Method, req.URL.Path, body)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("CB-ACCESS-KEY", c.key)
	req.Header.Add("CB-ACCESS-SIGN", c.sign(sdata))
	req.Header.Add("CB-ACCESS-TIMESTAMP", timestamp)
}

// publicGetJSON fetches an unauthenticated market-data endpoint.
func (c *Client) publicGetJSON(ctx context.Context, url *url.URL, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Add("Accept", "application/json")
	return c.doJSON(ctx, req, result, true /* canRetry */)
}

func (c *Client) httpGetJSON(ctx context.Context, url *url.URL, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req, time.Now(), nil)
	return c.doJSON(ctx, req, result, true /* canRetry */)
}

func (c *Client) httpPostJSON(ctx context.Context, url *url.URL, request, resultPtr interface{}) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setAuthHeaders(req, time.Now(), payload)
	// Order submissions are not retried; the caller's idempotency key makes
	// a later invocation safe instead.
	return c.doJSON(ctx, req, resultPtr, false /* canRetry */)
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, result interface{}, canRetry bool) error {
	for retries := 0; ; retries++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := c.client.Do(req.Clone(ctx))
		if err != nil {
			return err
		}
		status, err := decodeJSONBody(resp, result)
		if status == http.StatusOK {
			return err
		}
		if status != http.StatusTooManyRequests || !canRetry || retries >= c.opts.MaxFetchRetries {
			slog.Error("http request is unsuccessful", "method", req.Method, "status", status, "url", req.URL.String())
			return fmt.Errorf("http %s returned %d", req.Method, status)
		}
		slog.Warn("request returned with status code 429 - too many requests (retrying)", "url", req.URL.String())
		if err := sleep(ctx, c.opts.RetryInterval); err != nil {
			return err
		}
	}
}

func decodeJSONBody(resp *http.Response, result interface{}) (int, error) {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var body io.Reader = resp.Body
	if err := json.NewDecoder(body).Decode(result); err != nil {
		slog.Error("could not decode response to json", "error", err)
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-timer.C:
		return nil
	}
}
