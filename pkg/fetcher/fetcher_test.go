package fetcher_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"urljournal/pkg/fetcher"
	"urljournal/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(opts fetcher.Options, fn rtFunc) *fetcher.Client {
	return fetcher.New(&http.Client{Transport: fn}, opts)
}

func respond(status int, body string) rtFunc {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func TestClient_Fetch_success(t *testing.T) {
	c := newTestClient(fetcher.Options{UserAgent: "test-agent"}, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "wiki.archlinux.org", r.URL.Host)
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, hasDeadline := r.Context().Deadline()
		require.True(t, hasDeadline, "fetch must run under a deadline")

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html>arch</html>")),
		}, nil
	})

	body, err := c.Fetch(context.Background(), "https://wiki.archlinux.org/")
	require.NoError(t, err)
	require.Equal(t, "<html>arch</html>", body)
}

func TestClient_Fetch_defaultUserAgent(t *testing.T) {
	c := newTestClient(fetcher.Options{}, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, fetcher.DefaultUserAgent, r.Header.Get("User-Agent"))

		return respond(http.StatusOK, "ok")(r)
	})

	_, err := c.Fetch(context.Background(), "https://example.com/")
	require.NoError(t, err)
}

func TestClient_Fetch_largeBodyNotTruncated(t *testing.T) {
	large := strings.Repeat("<p>lorem ipsum</p>", 1<<17)
	c := newTestClient(fetcher.Options{}, respond(http.StatusOK, large))

	body, err := c.Fetch(context.Background(), "https://example.com/")
	require.NoError(t, err)
	require.Len(t, body, len(large))
}

func TestClient_Fetch_statusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   serrors.Kind
	}{
		{"not found", http.StatusNotFound, serrors.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, serrors.ErrRateLimited},
		{"bad gateway", http.StatusBadGateway, serrors.ErrUnavailable},
		{"internal error", http.StatusInternalServerError, serrors.ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(fetcher.Options{}, respond(tc.status, "upstream says no"))

			body, err := c.Fetch(context.Background(), "https://example.com/")
			require.ErrorIs(t, err, tc.kind)
			require.Empty(t, body)
		})
	}
}

func TestClient_Fetch_otherNon2xx(t *testing.T) {
	c := newTestClient(fetcher.Options{}, respond(http.StatusForbidden, "go away"))

	_, err := c.Fetch(context.Background(), "https://example.com/")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
	require.Contains(t, err.Error(), "go away")
	require.Nil(t, serrors.KindOf(err))
}

func TestClient_Fetch_emptyBody(t *testing.T) {
	c := newTestClient(fetcher.Options{}, respond(http.StatusOK, ""))

	_, err := c.Fetch(context.Background(), "https://example.com/")
	require.Error(t, err)
}

func TestClient_Fetch_timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := fetcher.New(srv.Client(), fetcher.Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, serrors.ErrTimeout)
	require.Less(t, time.Since(start), time.Second)
}

func TestClient_Fetch_followsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>moved</html>"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := fetcher.New(srv.Client(), fetcher.Options{MaxRedirects: 3})

	body, err := c.Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	require.Equal(t, "<html>moved</html>", body)

	_, err = c.Fetch(context.Background(), srv.URL+"/loop")
	require.Error(t, err)
	require.Contains(t, err.Error(), "redirects")
}

func TestClient_Fetch_rateLimited(t *testing.T) {
	c := newTestClient(fetcher.Options{RatePerSecond: 20, Burst: 1}, respond(http.StatusOK, "ok"))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), "https://example.com/")
		require.NoError(t, err)
	}
	// burst of one, then two waits of ~50ms
	require.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestClient_Fetch_canceledContext(t *testing.T) {
	c := newTestClient(fetcher.Options{}, func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, "https://example.com/")
	require.Error(t, err)
	require.NotErrorIs(t, err, serrors.ErrTimeout)
}
