// Package portal is the HTTP client for the training-institution
// portal's REST API. Every authenticated request carries an
// Authorization bearer header sourced from the session store; non-2xx
// responses surface as *APIError with the status and body intact.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for authenticated requests.
// An empty string means the request goes out unauthenticated.
type TokenSource func() string

// Client is the portal API client.
type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	tokenSource TokenSource
	logger      *slog.Logger
}

// NewClient creates a new portal API client.
// It reads the base URL from the TRAINHUB_API_BASE_URL environment
// variable by default. Options can be used to override the defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: envOrDefault("TRAINHUB_API_BASE_URL", "http://localhost:8080/api"),
		timeout: parseDurationEnv("TRAINHUB_API_TIMEOUT", DefaultTimeout),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs an authenticated GET request.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	return c.doRequest(ctx, http.MethodGet, endpoint, nil, result, c.bearer())
}

// post performs an authenticated POST request.
func (c *Client) post(ctx context.Context, endpoint string, body, result any) error {
	return c.doRequest(ctx, http.MethodPost, endpoint, body, result, c.bearer())
}

// put performs an authenticated PUT request.
func (c *Client) put(ctx context.Context, endpoint string, body, result any) error {
	return c.doRequest(ctx, http.MethodPut, endpoint, body, result, c.bearer())
}

// del performs an authenticated DELETE request.
func (c *Client) del(ctx context.Context, endpoint string, result any) error {
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, result, c.bearer())
}

// bearer resolves the current token from the token source, if any.
func (c *Client) bearer() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// doRequest performs an HTTP request against the portal. A non-empty
// token is attached as an Authorization bearer header. Connection-level
// failures return *TransportError; non-2xx responses return *APIError
// with the status and raw body.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any, token string) error {
	url := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Cause: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logger.Debug("portal request rejected",
			"method", method,
			"endpoint", endpoint,
			"status", httpResp.StatusCode,
			"request_id", requestID,
		)
		return &APIError{
			Status:    httpResp.StatusCode,
			Body:      strings.TrimSpace(string(respBody)),
			RequestID: requestID,
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// Helper functions for env var parsing.

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return defaultVal
}
