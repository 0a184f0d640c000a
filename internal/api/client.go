package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"storefront-client/internal/logger"
	"storefront-client/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const accessTokenCookie = "access_token"

// Client talks to the storefront REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	stats      *metrics.HTTP

	mu    sync.RWMutex
	token string
}

type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	limit     rate.Limit
	burst     int
	token     string
	transport http.RoundTripper
}

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *clientOptions) {
		o.limit = rate.Limit(perSecond)
		o.burst = burst
	}
}

func WithAccessToken(token string) Option {
	return func(o *clientOptions) { o.token = token }
}

// WithTransport sets the innermost transport, below logging and rate limiting.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func NewClient(baseURL string, opts ...Option) *Client {
	o := clientOptions{
		timeout: 15 * time.Second,
		limit:   defaultLimit,
		burst:   defaultBurst,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if baseURL == "" {
		logger.L().Warn("backend base url is empty")
	}

	stats := &metrics.HTTP{}
	transport := RateLimitTransport{
		Limiter: rate.NewLimiter(o.limit, o.burst),
		Next: logger.RequestIDTransport{
			Next: logger.LoggingTransport{Next: o.transport, Stats: stats},
		},
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		stats:   stats,
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: transport,
		},
		token: o.token,
	}
}

// Stats reports the backend calls made so far.
func (c *Client) Stats() metrics.Snapshot {
	return c.stats.Snapshot()
}

// SetAccessToken replaces the token sent with every request. Empty clears it.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("%w: %w", ErrEncodeRequest, err)
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, nil
}

// do sends req and decodes a 2xx body into out (nil discards it).
// Every failure is terminal; nothing is retried.
func (c *Client) do(ctx context.Context, req request, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "api"),
		zap.String("method", req.method),
		zap.String("path", req.path),
	)

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if tok := c.accessToken(); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
		httpReq.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: tok})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("backend request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newError(resp.StatusCode, body)
		log.Warn("backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error("failed decoding backend response", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}
