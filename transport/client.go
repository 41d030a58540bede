// Package transport implements the single HTTP transport every resource
// client calls through. It owns base-URL resolution, bearer-token
// injection, request IDs, JSON encoding, and the translation of transport
// failures into the apierr taxonomy. It never retries: retry policy
// belongs to the query layer.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/AnkaaDesign/apiclient/apierr"
	"github.com/AnkaaDesign/apiclient/auth"
	"github.com/AnkaaDesign/apiclient/observability/tracing"
)

// Client is the shared HTTP transport. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    auth.TokenSource
	logger    *slog.Logger
	tracer    tracing.Tracer
	userAgent string
}

// NewClient builds a transport from the configuration. Unset optional
// fields fall back to anonymous auth, slog.Default(), and no tracing.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = auth.StaticToken("")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.Nop()
	}

	return &Client{
		baseURL:   baseURL,
		http:      httpClient,
		tokens:    tokens,
		logger:    logger,
		tracer:    tracer,
		userAgent: cfg.UserAgent,
	}, nil
}

// BaseURL returns the resolved base URL the client dispatches against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do issues one HTTP request and returns the raw response body. The path
// is resolved against the base URL; query values are appended when
// present; a non-nil body is JSON-encoded. Failures come back as apierr
// values: network problems as NETWORK_FAILURE, non-2xx responses as
// HTTP_ERROR carrying the envelope message when one can be decoded.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (raw json.RawMessage, err error) {
	requestID := uuid.NewString()
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "ankaa.api "+method,
		tracing.String("http.method", method),
		tracing.String("http.path", path),
		tracing.String("request.id", requestID),
	)
	defer func() { span.End(err) }()

	var reqBody io.Reader
	if body != nil {
		data, merr := json.Marshal(body)
		if merr != nil {
			return nil, fmt.Errorf("transport: marshal request body: %w", merr)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, rerr := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if rerr != nil {
		return nil, apierr.Network(fmt.Errorf("build request: %w", rerr))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, terr := c.tokens.Token(ctx)
	if terr != nil {
		return nil, fmt.Errorf("transport: read auth token: %w", terr)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, derr := c.http.Do(req)
	if derr != nil {
		c.logRequest(ctx, method, path, 0, requestID, start)
		return nil, apierr.Network(derr)
	}
	defer resp.Body.Close()

	respBody, rderr := io.ReadAll(resp.Body)
	if rderr != nil {
		c.logRequest(ctx, method, path, resp.StatusCode, requestID, start)
		return nil, apierr.Network(fmt.Errorf("read response: %w", rderr))
	}

	c.logRequest(ctx, method, path, resp.StatusCode, requestID, start)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apierr.HTTP(resp.StatusCode, errorMessage(resp.StatusCode, respBody), requestID)
	}

	return json.RawMessage(respBody), nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request. The body may be nil; batch deletes
// carry one.
func (c *Client) Delete(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, body)
}

func (c *Client) logRequest(ctx context.Context, method, path string, status int, requestID string, start time.Time) {
	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", status,
		"duration", time.Since(start),
		"request_id", requestID,
	)
}

// errorMessage pulls the envelope message out of an error response body,
// falling back to the HTTP status text.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(status)
}
