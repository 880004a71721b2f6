package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cfbd_v1/ingestion/internal/credentials"
	"cfbd_v1/ingestion/internal/metrics"
	"cfbd_v1/ingestion/internal/table"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public CFBD API
const DefaultBaseURL = "https://api.collegefootballdata.com"

// Cache stores raw response bodies between calls
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client is the CFBD API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration

	cache     Cache
	cacheTTL  time.Duration
	staticTTL time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithRateLimit caps requests per second with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithRetries sets how often retryable failures are repeated and the initial backoff
func WithRetries(max int, delay time.Duration) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithCache stores successful responses. Reference data (teams, venues,
// conferences, type lists) is kept for staticTTL, everything else for ttl.
func WithCache(cache Cache, ttl, staticTTL time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
		c.staticTTL = staticTTL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new CFBD API client.
// apiKey may be given with or without the "Bearer " prefix.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	bearer, err := credentials.Bearer(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     bearer,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		maxRetries: 3,
		retryDelay: 1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// endpoint describes one API path and how its payload becomes a table
type endpoint struct {
	path   string
	live   bool // never cached
	static bool // reference data, cached with the long TTL
	rename map[string]string
}

func (e endpoint) flatten(body []byte) (*table.Table, error) {
	t, err := table.FromJSON(body)
	if err != nil {
		return nil, err
	}
	return t.Rename(e.rename), nil
}

type flattenFunc func(body []byte) (*table.Table, error)

// fetch encodes params, performs the request and wraps the payload.
// A nil flatten uses the endpoint's default flatten and rename.
func (c *Client) fetch(ctx context.Context, ep endpoint, params any, flatten flattenFunc) (*Response, error) {
	values := url.Values{}
	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s parameters: %w", ep.path, err)
		}
		values = v
	}

	body, err := c.get(ctx, ep, values)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ep.path, err)
	}

	if flatten == nil {
		flatten = ep.flatten
	}

	return &Response{
		Endpoint: ep.path,
		Query:    values,
		Body:     json.RawMessage(body),
		flatten:  flatten,
	}, nil
}

// get performs a GET request to the CFBD API with caching, retry logic and rate limiting
func (c *Client) get(ctx context.Context, ep endpoint, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + ep.path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	useCache := c.cache != nil && !ep.live
	cacheKey := "cfbd:" + ep.path + "?" + params.Encode()
	if useCache {
		data, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Cache read failed, fetching from API")
		} else if ok {
			log.Debug().Str("endpoint", ep.path).Msg("Serving response from cache")
			return data, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("endpoint", ep.path).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, err := c.do(ctx, ep.path, reqURL)
		if err == nil {
			if useCache {
				ttl := c.cacheTTL
				if ep.static {
					ttl = c.staticTTL
				}
				if err := c.cache.Set(ctx, cacheKey, body, ttl); err != nil {
					log.Warn().Err(err).Str("key", cacheKey).Msg("Cache write failed")
				}
			}
			return body, nil
		}

		lastErr = err
		if !retryable(err) || attempt == c.maxRetries {
			return nil, err
		}

		metrics.RecordAPIRetry(ep.path)
		log.Warn().
			Err(err).
			Str("endpoint", ep.path).
			Int("attempt", attempt+1).
			Msg("Received retryable error, will retry")
	}

	return nil, lastErr
}

// do sends one request and maps the status code
func (c *Client) do(ctx context.Context, path, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cfbd-ingestion/1.0")

	log.Debug().
		Str("endpoint", path).
		Str("query", req.URL.RawQuery).
		Msg("Making API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(path, "error", time.Since(start).Seconds())
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.RecordAPICall(path, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	if err != nil {
		return nil, &transportError{err: fmt.Errorf("failed to read response body: %w", err)}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("endpoint", path).
			Int("size", len(body)).
			Msg("API request successful")
		return body, nil

	case http.StatusUnauthorized:
		// Don't retry auth errors
		return nil, ErrUnauthorized

	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: path, Body: string(body)}
	}
}

// transportError marks network failures, which are retried
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("API request failed: %v", e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var te *transportError
	if errors.As(err, &te) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}
