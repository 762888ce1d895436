// Package fetcher provides a journal.Fetcher that downloads page HTML over
// HTTP with a per-request timeout and optional client-side rate limiting.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"urljournal/pkg/journal"
	"urljournal/pkg/metrics"
	"urljournal/pkg/serrors"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 20 * time.Second
	// DefaultMaxRedirects caps the redirect chain followed for one page.
	DefaultMaxRedirects = 10
	// DefaultUserAgent is sent when Options.UserAgent is empty.
	DefaultUserAgent = "urljournal/1.0"
)

// Options configure the Client.
type Options struct {
	// Timeout bounds each fetch, including redirects and reading the body.
	Timeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// MaxRedirects caps the number of redirects followed.
	MaxRedirects int
	// RatePerSecond limits request starts per second. Zero disables limiting.
	RatePerSecond float64
	// Burst is the limiter's bucket size. Defaults to 1 when limiting is enabled.
	Burst int
}

// Client fetches pages over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
	limiter    *rate.Limiter // nil when rate limiting is disabled
}

// Ensure Client conforms to the journal.Fetcher interface at compile time.
var _ journal.Fetcher = (*Client)(nil)

// New constructs a Client around httpClient. A nil httpClient uses a fresh
// client; its redirect policy is replaced to honour MaxRedirects.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	hc := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		hc = &copied
	}
	maxRedirects := opts.MaxRedirects
	hc.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", len(via))
		}

		return nil
	}

	c := &Client{httpClient: hc, options: opts}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}

	return c
}

// Fetch downloads url and returns the full response body. The body is never
// truncated. Failures carry a serrors kind: ErrNotFound for 404,
// ErrRateLimited for 429, ErrUnavailable for 5xx and ErrTimeout when the
// deadline expires.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	body, err := c.fetch(ctx, url)
	metrics.FetchDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())

	return body, err
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", c.contextError(ctx, err, "could not wait for rate limiter")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.contextError(ctx, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.contextError(ctx, err, "could not read response body")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", serrors.With(serrors.ErrNotFound, "page %s not found", url)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", serrors.With(serrors.ErrRateLimited, "rate limited by %s", req.URL.Host)
	case resp.StatusCode >= 500:
		return "", serrors.With(serrors.ErrUnavailable, "fetch failed with status %d: %s",
			resp.StatusCode, snippet(b))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("fetch failed with status %d: %s", resp.StatusCode, snippet(b))
	}

	if len(b) == 0 {
		return "", errors.New("empty response body")
	}

	return string(b), nil
}

// contextError tags err with ErrTimeout when the fetch deadline expired.
func (c *Client) contextError(ctx context.Context, err error, msg string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, err, "%s: timed out after %s", msg, c.options.Timeout)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func snippet(b []byte) string {
	const maxLen = 200

	s := strings.TrimSpace(string(b))
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}

	return s
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := serrors.KindOf(err); k != nil {
		return strings.ToLower(k.Error())
	}

	return "error"
}
