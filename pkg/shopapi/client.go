package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/metrics"
	"github.com/google/uuid"
)

const responseBodyReadLimit int64 = 4096

// TokenSource yields the current session token, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client is the typed HTTP client for the storefront REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	metrics    *metrics.RequestMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource installs the session token provider. When it returns a
// non-empty token every request carries a `Token <value>` auth header.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithMetrics installs request instrumentation.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the API client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// statusError keeps the raw upstream response for structured error logs.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

func (e *statusError) HTTPStatus() int { return e.status }

func (e *statusError) ResponseBody() string { return e.body }

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal "+op+" request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+op+" request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(op, "transport")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+op+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		c.metrics.IncFailure(op, strconv.Itoa(resp.StatusCode))
		cause := &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(raw))}
		return pkgerrors.Wrap(pkgerrors.CodeFromStatus(resp.StatusCode), cause, extractErrorMessage(raw, op))
	}

	c.metrics.IncSuccess(op)

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+op+" response")
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// extractErrorMessage pulls a human-readable message out of the API's error
// payloads: `{"error": "..."}`, `{"detail": "..."}`, DRF field maps like
// `{"email": ["already taken"]}`, or `{"non_field_errors": [...]}`.
func extractErrorMessage(raw []byte, op string) string {
	fallback := op + " failed"
	if len(bytes.TrimSpace(raw)) == 0 {
		return fallback
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fallback
	}

	if msg, ok := payload["error"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := payload["detail"].(string); ok && msg != "" {
		return msg
	}
	if msg := firstListEntry(payload["non_field_errors"]); msg != "" {
		return msg
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if msg := firstListEntry(payload[key]); msg != "" {
			return key + ": " + msg
		}
		if msg, ok := payload[key].(string); ok && msg != "" {
			return key + ": " + msg
		}
	}
	return fallback
}

func firstListEntry(value any) string {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	if msg, ok := list[0].(string); ok {
		return msg
	}
	return ""
}
