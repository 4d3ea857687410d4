// Package client provides the authenticated HubSpot HTTP client with
// JSON encoding, response caching, rate limit observation, and error
// handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/salesops/hubspot-export/pkg/cache"
	"github.com/salesops/hubspot-export/pkg/ratelimit"
)

// Prometheus metrics for HubSpot client operations.
var (
	hubspotRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubspot_requests_total",
		Help: "Total HubSpot API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	hubspotRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hubspot_request_duration_seconds",
		Help:    "HubSpot API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	hubspotErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubspot_errors_total",
		Help: "Total HubSpot API errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 rate limit errors.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the authenticated HubSpot API client. A single client (and its
// bearer token, held only in process memory) is reused for every call of a
// run. There is no retry or backoff: any transport or non-2xx failure is
// surfaced to the caller as-is.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *cache.Manager // nil when response caching is disabled
	usage      *ratelimit.Observer
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Token is the HubSpot private app access token (required).
	Token string

	// BaseURL overrides the API base URL (default https://api.hubapi.com).
	BaseURL string

	// Timeout is the fixed per-call ceiling (default 20s).
	Timeout time.Duration

	// Redis enables the optional read-through response cache for GET
	// endpoints. Nil disables caching entirely.
	Redis *redis.Client

	// CacheTTL is the fixed TTL for cached GET responses (default 5m).
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(token string) Config {
	return Config{
		Token:    token,
		BaseURL:  "https://api.hubapi.com",
		Timeout:  20 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}

// New creates a new HubSpot client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.hubapi.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	logger := log.With().Str("component", "hubspot-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		cache:   cacheManager,
		usage:   ratelimit.NewObserver(logger),
		config:  cfg,
		logger:  logger,
	}, nil
}

// GetJSON performs a GET request and decodes the JSON response into out.
// When a response cache is configured, successful responses are served
// from and written through Redis.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c.cache != nil {
		key := cache.Key{Endpoint: path, QueryParams: query}

		entry, err := c.cache.Get(ctx, key)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Cache get error")
		}
		if entry != nil {
			c.logger.Debug().Str("endpoint", path).Msg("Serving response from cache")
			return c.decode(entry.Data, out)
		}

		body, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		if err := c.cache.Set(ctx, key, cache.NewEntry(body, http.StatusOK, c.config.CacheTTL)); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Failed to cache response")
		}
		return c.decode(body, out)
	}

	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out. POST responses are never cached.
func (c *Client) PostJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}
	return c.decode(body, out)
}

// do executes a single HTTP request and returns the raw response body.
// Error messages carry method, endpoint and a body snippet - never the token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	endpoint := endpointLabel(path)

	startTime := time.Now()
	defer func() {
		hubspotRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Msg("Executing HubSpot request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		hubspotErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		hubspotRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: ErrorClassNetwork,
			Method:     method,
			Endpoint:   path,
			Err:        err,
		}
	}
	defer resp.Body.Close()

	c.usage.ObserveHeaders(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		hubspotErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Method:     method,
			Endpoint:   path,
			Err:        fmt.Errorf("read response body: %w", err),
		}
	}

	hubspotRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		errClass := classifyStatus(resp.StatusCode)
		hubspotErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("HubSpot request error")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Method:     method,
			Endpoint:   path,
			Body:       truncateBody(body),
		}
	}

	return body, nil
}

// decode unmarshals a response body, mapping malformed bodies to
// ErrNonJSONResponse.
func (c *Client) decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrNonJSONResponse, err)
	}
	return nil
}

// classifyStatus categorizes an HTTP status for observability and handling.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// endpointLabel normalizes a path for use as a metric label, collapsing
// numeric identifier segments to keep label cardinality bounded.
func endpointLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		numeric := true
		for _, r := range seg {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// Usage returns the most recently observed rate limit state.
func (c *Client) Usage() ratelimit.State {
	return c.usage.State()
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
