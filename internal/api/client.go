// Package api is the typed HTTP client for the diary backend.
//
// The backend is an opaque JSON service. Every method returns *Error on
// failure with a Kind the caller can switch on; response bodies are checked
// against embedded JSON Schemas before they are decoded.
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
	"time"

	"achievediary/internal/logging"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the diary backend.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero disables the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the backend at baseURL. An empty baseURL
// means same-origin relative paths, which only work behind a proxy; callers
// normally pass the configured URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one call.
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	schema string // contract for a non-empty response body; "" skips the check
	userID string // for audit lines only
}

func (r request) op() string {
	return r.method + " " + r.path
}

// do executes req and returns the raw response body of a 2xx response.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, &Error{Kind: KindServer, Op: req.op(), Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Op: req.op(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, reqID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	logging.APIDebug("%s %s (req=%s)", req.method, target, reqID)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		apiErr := classifyTransport(req.op(), err)
		c.audit(req, reqID, 0, time.Since(start), apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		apiErr := classifyTransport(req.op(), fmt.Errorf("failed to read response: %w", err))
		c.audit(req, reqID, resp.StatusCode, time.Since(start), apiErr)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classifyStatus(req.op(), resp.StatusCode, data)
		c.audit(req, reqID, resp.StatusCode, time.Since(start), apiErr)
		return nil, apiErr
	}

	if req.schema != "" && !emptyBody(data) {
		if err := validateBody(req.schema, data); err != nil {
			apiErr := &Error{Kind: KindServer, Op: req.op(), Status: resp.StatusCode, Err: err}
			c.audit(req, reqID, resp.StatusCode, time.Since(start), apiErr)
			return nil, apiErr
		}
	}

	c.audit(req, reqID, resp.StatusCode, time.Since(start), nil)
	return data, nil
}

// emptyBody reports whether data carries no value: nothing at all or a
// literal null.
func emptyBody(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decode unmarshals a validated body. Empty and null bodies leave out
// untouched.
func decode(op string, data []byte, out interface{}) error {
	if emptyBody(data) {
		return nil
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), out); err != nil {
		return &Error{Kind: KindServer, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) audit(req request, reqID string, status int, dur time.Duration, err error) {
	ev := logging.AuditEvent{
		Event:     logging.AuditRequest,
		RequestID: reqID,
		Method:    req.method,
		Path:      req.path,
		Status:    status,
		UserID:    req.userID,
		Duration:  dur,
	}
	if err != nil {
		ev.Event = logging.AuditFailure
		ev.Err = err
	}
	logging.Audit(logging.CategoryAPI, ev)
}
