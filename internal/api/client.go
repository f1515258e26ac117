package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/models"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 4 << 20

// maxErrorBodySize caps how much of an error body is kept for diagnostics
const maxErrorBodySize = 4096

// HTTPDoer is the part of tls_client.HttpClient the client uses
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the regulation lookup backend
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout bounds every request. Zero leaves requests bounded only by their context.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// WithHTTPClient replaces the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a new Client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = models.DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	client := &Client{
		baseURL: baseURL,
		timeout: 120 * time.Second,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close marks the client closed; later calls fail fast
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// do performs one request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, op, method, endpoint string, query url.Values, payload []byte) ([]byte, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		classified := apierrors.FromTransport(op, endpoint, err)
		c.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(classified))
		return nil, classified
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		apiErr := apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, errorMessage(op, errorBody), string(errorBody))
		c.logger.Warn("request returned non-success status",
			zap.String("op", op),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return nil, apiErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, apierrors.FromTransport(op, endpoint, err)
	}

	c.logger.Debug("request completed",
		zap.String("op", op),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	return data, nil
}
