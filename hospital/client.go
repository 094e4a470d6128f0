// Package hospital is the typed client for the hospital's REST backend. All
// persistent data (catalog, schedules, appointments, payments) lives behind
// it; this service only ever holds transient session state.
package hospital

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client talks to the hospital backend. Every call carries the caller's
// bearer credential; credential issuance and renewal happen elsewhere.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient substitutes the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a hospital backend client.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// backendError is the error body shape the backend responds with.
type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b backendError) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// do issues a request and decodes the response into out (unless out is nil).
// Non-2xx responses are mapped onto the error taxonomy here, at the boundary,
// so nothing downstream ever sees an HTTP status code.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Op: method + " " + path, Message: "failed to encode request", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &FetchError{Op: method + " " + path, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: method + " " + path, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &FetchError{Op: method + " " + path, Message: "failed to decode response", Err: err}
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var be backendError
	_ = json.Unmarshal(raw, &be)
	msg := be.text()
	if msg == "" {
		msg = string(raw)
	}

	c.logger.Warn("hospital backend rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg))

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: msg}
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "credential expired or invalid"
		}
		return &AuthError{Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Resource: "resource", ID: path}
	case http.StatusConflict:
		return &ConflictError{Message: msg}
	default:
		return &FetchError{
			Op:      method + " " + path,
			Message: fmt.Sprintf("backend returned %d: %s", resp.StatusCode, msg),
		}
	}
}
