package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"doorsync/core/reconcile"
)

const (
	defaultTimeoutSeconds = 30
	defaultMaxAttempts    = 3
	defaultRetryDelay     = 500 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	// BaseURL is the provider root, without a trailing slash.
	BaseURL string

	// TimeoutSeconds bounds connection setup and response waits.
	TimeoutSeconds int

	// MaxAttempts is the total number of tries per request, retries
	// included. Only connectivity failures and 5xx responses are retried.
	MaxAttempts int

	// RetryDelay is the base backoff; attempt n waits n*RetryDelay.
	RetryDelay time.Duration

	// Authorize attaches provider credentials to an outgoing request.
	Authorize func(*http.Request)
}

// Client is a small JSON REST client shared by the provider adapters.
// It maps response statuses onto the reconcile error taxonomy: auth
// rejections and missing records come back wrapping reconcile.ErrAuth and
// reconcile.ErrNotFound, exhausted retries wrap reconcile.ErrTransient.
type Client struct {
	hc          *http.Client
	baseURL     string
	authorize   func(*http.Request)
	maxAttempts int
	retryDelay  time.Duration
}

// NewClient creates a client with strict transport timeouts.
func NewClient(opts Options) *Client {
	timeout := opts.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		hc:          &http.Client{Transport: transport},
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		authorize:   opts.Authorize,
		maxAttempts: attempts,
		retryDelay:  delay,
	}
}

// BasicAuth returns an Authorize func for username/token credentials.
func BasicAuth(username, password string) func(*http.Request) {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

// BearerAuth returns an Authorize func for API-key bearer credentials.
func BearerAuth(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// GetJSON performs a GET and unmarshals the response into out.
// The path may carry a query string and must start with a slash.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.decode(path, body, out)
}

// PostJSON performs a POST with a JSON body and unmarshals the response
// into out when out is non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return c.decode(path, body, out)
}

// DeleteJSON performs a DELETE with a JSON body.
func (c *Client) DeleteJSON(ctx context.Context, path string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	_, err = c.do(ctx, http.MethodDelete, path, payload)
	return err
}

func (c *Client) decode(path string, body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do executes one request with bounded retries. The request is rebuilt per
// attempt so the body reader is fresh.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.authorize != nil {
			c.authorize(req)
		}

		body, retryable, err := c.attempt(req)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		lastErr = err

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("%s %s failed after %d attempts: %v: %w", method, path, c.maxAttempts, lastErr, reconcile.ErrTransient)
}

// attempt runs a single request and classifies the outcome. The second
// return value reports whether the failure is worth retrying.
func (c *Client) attempt(req *http.Request) ([]byte, bool, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, fmt.Errorf("status %d: %w", resp.StatusCode, reconcile.ErrAuth)
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, reconcile.ErrNotFound
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body))
	default:
		return nil, false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(body))
	}
}

// snippet truncates a response body for error messages.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
