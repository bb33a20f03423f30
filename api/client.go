// Package api is the thin HTTP layer between the service modules and the
// OkuYorum backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"okuyorum-admin/config"
)

// TokenSource yields the bearer token for the current session. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *config.Logger
	Timeout    time.Duration
}

// Client performs JSON requests against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *config.Logger
}

// Response is the typed envelope every service call returns.
type Response[T any] struct {
	Data       T
	StatusCode int
	RequestID  string
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewClient constructs a client with defaults for anything left unset.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	logger := opts.Logger
	if logger == nil {
		logger = config.Discard()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     opts.Tokens,
		logger:     logger,
	}
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request and decodes the JSON body into T. A nil body sends no
// payload; an empty response body leaves Data at its zero value.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) (*Response[T], error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("api: read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("took", time.Since(started)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, RequestID: requestID}
		var detail errorBody
		if err := json.Unmarshal(raw, &detail); err == nil {
			apiErr.Message = detail.Message
			if apiErr.Message == "" {
				apiErr.Message = detail.Error
			}
		}
		return nil, apiErr
	}

	out := &Response[T]{StatusCode: resp.StatusCode, RequestID: requestID}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out.Data); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	return out, nil
}

// Get is shorthand for Do with GET and no body.
func Get[T any](ctx context.Context, c *Client, path string) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodGet, path, nil)
}
