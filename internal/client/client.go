// Package client talks to the recall API on behalf of the terminal player.
// It implements the quiz NameSource and ResultSink ports.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/recall-sprint/internal/api"
	"github.com/phrazzld/recall-sprint/internal/api/middleware"
	"github.com/phrazzld/recall-sprint/internal/api/shared"
	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/quiz"
)

// ErrNetwork is returned when the API could not be reached or answered with
// an unexpected status or body.
var ErrNetwork = errors.New("network error")

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 4 << 10

// Client is an HTTP client for the recall API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api_client")
	return c, nil
}

// FetchNames implements quiz.NameSource using GET /api/names.
// A 422 response maps to domain.ErrInsufficientPool; any other failure maps
// to ErrNetwork.
func (c *Client) FetchNames(ctx context.Context) ([]string, int, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/names", nil)
	if err != nil {
		return nil, 0, err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity:
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrInsufficientPool, errorMessage(resp))
	default:
		return nil, 0, fmt.Errorf("%w: GET /api/names returned %d: %s", ErrNetwork, resp.StatusCode, errorMessage(resp))
	}

	var body api.NamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("%w: decode names response: %w", ErrNetwork, err)
	}
	if body.Names == nil {
		body.Names = []string{}
	}
	return body.Names, body.PoolSize, nil
}

// SubmitResult implements quiz.ResultSink using POST /api/results.
// Every failure wraps domain.ErrPersistence.
func (c *Client) SubmitResult(ctx context.Context, sub quiz.Submission) error {
	score := sub.Score
	req := api.SubmitResultRequest{
		Email:            sub.Email,
		NamesPresented:   nonNil(sub.NamesPresented),
		AnswersSubmitted: nonNil(sub.AnswersSubmitted),
		Score:            &score,
		Status:           string(sub.Status),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: encode result: %w", domain.ErrPersistence, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/results", payload)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: POST /api/results returned %d: %s",
			domain.ErrPersistence, resp.StatusCode, errorMessage(resp))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	target := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	traceID := shared.NewTraceID()
	req.Header.Set(middleware.TraceHeader, traceID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"method", method,
			"path", path,
			"trace_id", traceID,
			"error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"trace_id", traceID,
		"duration_ms", time.Since(start).Milliseconds())
	return resp, nil
}

// errorMessage extracts the "error" field of an error body, falling back to
// the raw text.
func errorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return http.StatusText(resp.StatusCode)
	}
	var body shared.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var (
	_ quiz.NameSource = (*Client)(nil)
	_ quiz.ResultSink = (*Client)(nil)
)
