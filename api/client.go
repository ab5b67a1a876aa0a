package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/trickle"
)

// Interface compliance check.
var _ trickle.Backend = (*Client)(nil)

// Client implements [trickle.Backend] for the chat agent API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for dropped-frame diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds the synchronous chat and health calls. Streams are
// never timed out; cancel their context instead. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a new [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream posts prompt to the streaming endpoint and returns a
// [trickle.Stream] over the reply. The caller must Close it.
func (c *Client) Stream(ctx context.Context, prompt string) (trickle.Stream, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, streamPath, apiRequest{Message: prompt})
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("api: %w", trickle.ErrMissingBody)
	}

	c.logger.Debug("stream opened", "url", httpReq.URL.String(), "status", resp.StatusCode)
	return newStream(ctx, resp.Body, c.logger), nil
}

// Chat posts prompt to the synchronous endpoint and waits for the whole
// reply. A reply with success=false is returned together with a
// [*trickle.ServerError].
func (c *Client) Chat(ctx context.Context, prompt string) (trickle.ChatResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	httpReq, err := c.newRequest(ctx, http.MethodPost, chatPath, apiRequest{Message: prompt})
	if err != nil {
		return trickle.ChatResponse{}, err
	}
	var body apiChatResponse
	if err := c.doJSON(httpReq, &body); err != nil {
		return trickle.ChatResponse{}, err
	}

	resp := trickle.ChatResponse{
		Response: body.Response,
		Success:  body.Success,
		Error:    body.Error,
	}
	if !resp.Success {
		return resp, fmt.Errorf("api: %w", &trickle.ServerError{Message: resp.Error})
	}
	return resp, nil
}

// Health queries the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (trickle.Health, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	httpReq, err := c.newRequest(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return trickle.Health{}, err
	}
	var body apiHealth
	if err := c.doJSON(httpReq, &body); err != nil {
		return trickle.Health{}, err
	}

	h := trickle.Health{Status: body.Status, Version: body.Version}
	switch {
	case body.AgentInitialized != nil:
		h.AgentInitialized = *body.AgentInitialized
	case body.LegacyInitialized != nil:
		h.AgentInitialized = *body.LegacyInitialized
	}
	return h, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: %w", err)
		}
		body = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

func (c *Client) doJSON(httpReq *http.Request, out any) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s: %w", httpReq.URL.Path, err)
	}
	return nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("api: %w (failed to read body: %v)", &trickle.HTTPError{StatusCode: resp.StatusCode}, err)
	}
	msg := strings.TrimSpace(string(body))
	var apiErr apiErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
		msg = apiErr.Detail
	}
	return fmt.Errorf("api: %w", &trickle.HTTPError{StatusCode: resp.StatusCode, Body: msg})
}
