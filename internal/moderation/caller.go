package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = time.Second
)

// Caller posts JSON payloads to an external endpoint, retrying with
// exponential backoff while the endpoint answers 429. Any other failure is
// surfaced immediately. Callers share the underlying http.Client; the struct
// itself holds no mutable state.
type Caller struct {
	Client       *http.Client
	MaxAttempts  int
	InitialDelay time.Duration
	Logger       *logger.Logger
}

// NewCaller returns a Caller with a pooled HTTP client and default retry
// parameters (3 attempts, 1s initial delay).
func NewCaller(l *logger.Logger) *Caller {
	return &Caller{
		Client:       sharedHTTPClient(30 * time.Second),
		MaxAttempts:  defaultMaxAttempts,
		InitialDelay: defaultInitialDelay,
		Logger:       l,
	}
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Call posts payload as JSON to url with the given headers and returns the
// raw response body.
func (c *Caller) Call(ctx context.Context, url string, payload interface{}, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	delay := c.InitialDelay
	if delay <= 0 {
		delay = defaultInitialDelay
	}

	for attempt := 1; ; attempt++ {
		respBody, err := c.do(ctx, url, body, headers)
		if err == nil {
			return respBody, nil
		}

		var httpErr *httpError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
			return nil, err
		}
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("%w: %d attempts exhausted against %s", apperrors.ErrRateLimited, maxAttempts, url)
		}

		if c.Logger != nil {
			c.Logger.Warnf("rate limited by %s, retrying in %s (attempt %d/%d)", url, delay, attempt, maxAttempts)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (c *Caller) do(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// sharedHTTPClient returns an HTTP client with connection pooling tuned for
// a small number of upstream hosts.
func sharedHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
