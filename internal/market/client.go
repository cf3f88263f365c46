// Package market retrieves historical exchange candles from a GDAX-style
// public market-data API. Long date ranges are partitioned into windows the
// API will accept and fetched window by window; rate-limit responses are
// retried after a pause instead of surfacing as errors.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public market-data endpoint queried when no
// override is configured.
const DefaultBaseURL = "https://api.gdax.com"

const requestTimeout = 30 * time.Second

// Candle is one OHLCV row. The API serializes candles as JSON arrays of
// [time, low, high, open, close, volume] with the bucket start as a Unix
// timestamp.
type Candle struct {
	Time   time.Time
	Low    float64
	High   float64
	Open   float64
	Close  float64
	Volume float64
}

// UnmarshalJSON decodes the positional array form.
func (c *Candle) UnmarshalJSON(b []byte) error {
	var row [6]float64
	if err := json.Unmarshal(b, &row); err != nil {
		return fmt.Errorf("market: decoding candle row: %w", err)
	}
	c.Time = time.Unix(int64(row[0]), 0).UTC()
	c.Low, c.High, c.Open, c.Close, c.Volume = row[1], row[2], row[3], row[4], row[5]
	return nil
}

// Client fetches candles from one market-data host. The zero value is not
// usable; construct with NewClient. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRetryDelay overrides the pause between rate-limited retries.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient returns a client for the public market-data API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        zerolog.Nop(),
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HistoricRates fetches the candles for product between start and end at the
// given granularity (bucket width in seconds). HTTP 429 responses are
// retried after the configured delay until the context expires; an empty
// body is retried once, since the upstream API occasionally returns nothing
// for a valid range.
func (c *Client) HistoricRates(ctx context.Context, product string, start, end time.Time, granularity int) ([]Candle, error) {
	candles, err := c.fetch(ctx, product, start, end, granularity)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		c.log.Debug().Str("product", product).Msg("empty candle response, retrying once")
		return c.fetch(ctx, product, start, end, granularity)
	}
	return candles, nil
}

func (c *Client) fetch(ctx context.Context, product string, start, end time.Time, granularity int) ([]Candle, error) {
	endpoint := fmt.Sprintf("%s/products/%s/candles", c.baseURL, url.PathEscape(product))
	query := url.Values{
		"start":       {start.UTC().Format(time.RFC3339)},
		"end":         {end.UTC().Format(time.RFC3339)},
		"granularity": {strconv.Itoa(granularity)},
	}

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("market: building request: %w", err)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("market: requesting candles: %w", err)
		}

		if res.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			c.log.Warn().Str("product", product).Dur("delay", c.retryDelay).Msg("rate limited, backing off")
			select {
			case <-time.After(c.retryDelay):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("market: reading response: %w", err)
		}
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("market: %s returned status %d: %s", endpoint, res.StatusCode, body)
		}

		var candles []Candle
		if err := json.Unmarshal(body, &candles); err != nil {
			return nil, fmt.Errorf("market: decoding candles: %w", err)
		}
		return candles, nil
	}
}

// Price returns the close of the first candle in the hour following at,
// pinning the quote to a single minute bucket.
func (c *Client) Price(ctx context.Context, asset string, at time.Time) (decimal.Decimal, error) {
	product := asset + "-USD"
	candles, err := c.HistoricRates(ctx, product, at, at.Add(time.Hour), 60)
	if err != nil {
		return decimal.Zero, err
	}
	if len(candles) == 0 {
		return decimal.Zero, fmt.Errorf("market: no price data for %s at %s", product, at)
	}
	return decimal.NewFromFloat(candles[0].Close), nil
}
