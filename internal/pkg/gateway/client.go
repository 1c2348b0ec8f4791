package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned when the upstream API cannot be reached or answers garbage
var ErrUnavailable = errors.New("upstream API unavailable")

const maxErrorBody = 64 << 10

// Options tunes the HTTP transport to the upstream API
type Options struct {
	Timeout time.Duration
	// RPS of 0 disables rate limiting
	RPS   float64
	Burst int
	// HTTPClient overrides the default client, mostly for tests
	HTTPClient *http.Client
}

// Client talks JSON to the HR REST API
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client rooted at baseURL (no trailing slash)
func NewClient(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		limiter: limiter,
	}
}

// APIError represents a non-2xx answer from the upstream API
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	// Message is the upstream "detail", empty when the body carried none
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream API error [%d] %s %s", e.StatusCode, e.Method, e.Path)
	}
	return fmt.Sprintf("upstream API error [%d] %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Get issues a GET and decodes the JSON answer into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the answer into out (may be nil)
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Delete issues a DELETE, the answer body is discarded
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one request. No retry: a failed call is reported to the caller as is.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for %s %s: %w", method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		slog.Warn("Upstream request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("Upstream request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode %s %s response: %w", ErrUnavailable, method, path, err)
	}
	return nil
}

// errorBody follows the FastAPI error shape: detail is a string, or a list of
// {loc, msg, type} entries for request validation failures
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

func decodeAPIError(resp *http.Response, method, path string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		apiErr.Message = detail
		return apiErr
	}

	var details []validationDetail
	if err := json.Unmarshal(body.Detail, &details); err == nil && len(details) > 0 {
		apiErr.Message = details[0].Msg
	}
	return apiErr
}

// WithFallbackMessage fills in msg when err is an upstream rejection that
// carried no detail, so callers always have something to show.
func WithFallbackMessage(err error, msg string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = msg
	}
	return err
}
