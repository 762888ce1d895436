package journal_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"urljournal/pkg/htmldoc"
	"urljournal/pkg/journal"
	"urljournal/pkg/serrors"

	"github.com/stretchr/testify/require"
)

const (
	archWiki = "https://wiki.archlinux.org/"
	google   = "https://www.google.com/"
	github   = "https://github.com/"
	custom   = "http://mydearcustomsite.net/"
)

// pages is a Fetcher serving fixed content and failing for unknown URLs.
func pages(m map[string]string) journal.FetcherFunc {
	return func(_ context.Context, url string) (string, error) {
		if c, ok := m[url]; ok {
			return c, nil
		}

		return "", fmt.Errorf("dial %s: no such host", url)
	}
}

func TestNew_Empty(t *testing.T) {
	j := journal.New()
	require.True(t, j.IsEmpty())
	require.Equal(t, 0, j.Size())
	require.Empty(t, j.URLs())
}

func TestRegisterContent(t *testing.T) {
	j := journal.New()

	ok, err := j.RegisterContent(custom, "<html>old</html>")
	require.NoError(t, err)
	require.True(t, ok)

	content, found, err := j.Lookup(custom)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "<html>old</html>", content)
}

func TestRegisterContent_Overwrites(t *testing.T) {
	j := journal.New()

	_, err := j.RegisterContent(custom, "old")
	require.NoError(t, err)
	_, err = j.RegisterContent(custom, "new")
	require.NoError(t, err)

	require.Equal(t, 1, j.Size())
	content, _, err := j.Lookup(custom)
	require.NoError(t, err)
	require.Equal(t, "new", content)
}

func TestRegisterContent_InvalidURL(t *testing.T) {
	j := journal.New()
	_, err := j.RegisterContent(custom, "x")
	require.NoError(t, err)

	ok, err := j.RegisterContent("htps://broken", "<html></html>")
	require.ErrorIs(t, err, journal.ErrInvalidURL)
	require.False(t, ok)
	require.Equal(t, 1, j.Size())
}

func TestRegisterContent_BlankContent(t *testing.T) {
	j := journal.New()

	for _, content := range []string{"", "   ", "\n\t"} {
		ok, err := j.RegisterContent(custom, content)
		require.ErrorIs(t, err, journal.ErrBlankContent)
		require.False(t, ok)
	}
	require.True(t, j.IsEmpty())
}

func TestRegisterVisit(t *testing.T) {
	j := journal.New()
	fetcher := pages(map[string]string{github: "<html>github</html>"})

	ok, err := j.RegisterVisit(context.Background(), github, fetcher)
	require.NoError(t, err)
	require.True(t, ok)

	content, found, err := j.Lookup(github)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "<html>github</html>", content)
}

func TestRegisterVisit_FetchFailureLeavesJournalUnchanged(t *testing.T) {
	j := journal.New()
	_, err := j.RegisterContent(github, "cached")
	require.NoError(t, err)

	failing := journal.FetcherFunc(func(context.Context, string) (string, error) {
		return "", serrors.With(serrors.ErrTimeout, "timed out")
	})

	ok, err := j.RegisterVisit(context.Background(), github, failing)
	require.NoError(t, err)
	require.False(t, ok)

	content, _, err := j.Lookup(github)
	require.NoError(t, err)
	require.Equal(t, "cached", content)
	require.Equal(t, 1, j.Size())
}

func TestRegisterVisit_BlankFetchIsFailure(t *testing.T) {
	j := journal.New()

	ok, err := j.RegisterVisit(context.Background(), github, pages(map[string]string{github: "  "}))
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, j.IsEmpty())
}

func TestRegisterVisit_InvalidURLDoesNotFetch(t *testing.T) {
	j := journal.New()
	called := false
	fetcher := journal.FetcherFunc(func(context.Context, string) (string, error) {
		called = true

		return "x", nil
	})

	_, err := j.RegisterVisit(context.Background(), "htps://broken", fetcher)
	require.ErrorIs(t, err, journal.ErrInvalidURL)
	require.False(t, called)
	require.True(t, j.IsEmpty())
}

func TestRegisterVisit_NilFetcher(t *testing.T) {
	_, err := journal.New().RegisterVisit(context.Background(), github, nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestLookup(t *testing.T) {
	j := journal.New()

	content, found, err := j.Lookup(google)
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, content)

	_, _, err = j.Lookup("not a url")
	require.ErrorIs(t, err, journal.ErrInvalidURL)
}

func TestURLs_IsACopy(t *testing.T) {
	j := journal.New()
	_, err := j.RegisterContent(google, "g")
	require.NoError(t, err)

	urls := j.URLs()
	require.True(t, urls.Has(google))

	delete(urls, google)
	urls[github] = struct{}{}

	require.Equal(t, 1, j.Size())
	require.True(t, j.URLs().Has(google))
	_, found, err := j.Lookup(github)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSize_CountsDistinctURLs(t *testing.T) {
	j := journal.New()
	urls := []string{archWiki, google, archWiki, github, google, archWiki}
	for i, u := range urls {
		_, err := j.RegisterContent(u, fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}

	require.Equal(t, 3, j.Size())
	content, _, err := j.Lookup(archWiki)
	require.NoError(t, err)
	require.Equal(t, "v5", content)
}

func TestEqualAndHash(t *testing.T) {
	a := journal.New()
	b := journal.New()
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	_, _ = a.RegisterContent(google, "g")
	_, _ = a.RegisterContent(github, "h")

	// different order and history
	_, _ = b.RegisterContent(github, "old")
	_, _ = b.RegisterContent(google, "g")
	require.False(t, a.Equal(b))

	_, _ = b.RegisterContent(github, "h")
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.Equal(t, a.Hash(), b.Hash())

	_, _ = b.RegisterContent(archWiki, "w")
	require.False(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), b.Hash())

	require.True(t, a.Equal(a))
	require.False(t, a.Equal(nil))
}

func TestWithValidator(t *testing.T) {
	onlyExample := journal.ValidatorFunc(func(s string) bool { return s == "https://example.com/" })
	j := journal.New(journal.WithValidator(onlyExample))

	_, err := j.RegisterContent("https://example.com/", "x")
	require.NoError(t, err)
	_, err = j.RegisterContent(google, "x")
	require.ErrorIs(t, err, journal.ErrInvalidURL)
}

func TestWithNormalizer(t *testing.T) {
	j := journal.New(journal.WithNormalizer(htmldoc.Normalize))

	_, err := j.RegisterContent(custom, "<p>hi")
	require.NoError(t, err)
	_, err = j.RegisterVisit(context.Background(), github, pages(map[string]string{github: "<p>gh"}))
	require.NoError(t, err)

	content, _, err := j.Lookup(custom)
	require.NoError(t, err)
	require.Equal(t, "<html><head></head><body><p>hi</p></body></html>", content)

	content, _, err = j.Lookup(github)
	require.NoError(t, err)
	require.Equal(t, "<html><head></head><body><p>gh</p></body></html>", content)
}

func TestWithNormalizer_Error(t *testing.T) {
	boom := errors.New("boom")
	j := journal.New(journal.WithNormalizer(func(string) (string, error) { return "", boom }))

	_, err := j.RegisterContent(custom, "x")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.ErrorIs(t, err, boom)

	ok, err := j.RegisterVisit(context.Background(), github, pages(map[string]string{github: "x"}))
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, j.IsEmpty())
}

func TestNewFromURLs(t *testing.T) {
	fetcher := pages(map[string]string{
		archWiki: "<html>arch</html>",
		google:   "<html>google</html>",
	})
	unreachable := "https://dasdaasdadadda.com/"

	j, err := journal.NewFromURLs(context.Background(), fetcher, []string{archWiki, google, unreachable})
	require.NoError(t, err)
	require.Equal(t, 2, j.Size())
	require.Equal(t, journal.NewURLSet(archWiki, google), j.URLs())
}

func TestNewFromURLs_InvalidURLFailsBeforeFetching(t *testing.T) {
	var calls atomic.Int32
	fetcher := journal.FetcherFunc(func(context.Context, string) (string, error) {
		calls.Add(1)

		return "x", nil
	})

	j, err := journal.NewFromURLs(context.Background(), fetcher, []string{google, "htps://broken"})
	require.ErrorIs(t, err, journal.ErrInvalidURL)
	require.Nil(t, j)
	require.Zero(t, calls.Load())
}

func TestNewFromURLs_NilFetcher(t *testing.T) {
	_, err := journal.NewFromURLs(context.Background(), nil, []string{google})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestNewFromURLs_Empty(t *testing.T) {
	j, err := journal.NewFromURLs(context.Background(), pages(nil), nil)
	require.NoError(t, err)
	require.True(t, j.IsEmpty())
}

func TestNewFromURLs_RespectsConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	release := make(chan struct{})
	fetcher := journal.FetcherFunc(func(context.Context, string) (string, error) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		<-release
		inFlight.Add(-1)

		return "page", nil
	})

	urls := make([]string, 10)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://site%d.example.com/", i)
	}

	done := make(chan struct{})
	var j *journal.Journal
	var err error
	go func() {
		defer close(done)
		j, err = journal.NewFromURLs(context.Background(), fetcher, urls, journal.WithConcurrency(3))
	}()
	close(release)
	<-done

	require.NoError(t, err)
	require.Equal(t, 10, j.Size())
	require.LessOrEqual(t, maxInFlight.Load(), int32(3))
}

func TestConcurrentRegisterAndLookup(t *testing.T) {
	j := journal.New()

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				u := fmt.Sprintf("https://site%d.example.com/", i)
				_, err := j.RegisterContent(u, fmt.Sprintf("w%d", w))
				if err != nil {
					t.Errorf("register: %v", err)

					return
				}
				if _, found, err := j.Lookup(u); err != nil || !found {
					t.Errorf("lookup after register: found=%v err=%v", found, err)

					return
				}
				_ = j.URLs()
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, perWriter, j.Size())
}

func TestClone_Independent(t *testing.T) {
	j := journal.New()
	_, err := j.RegisterContent(archWiki, "<html>arch</html>")
	require.NoError(t, err)

	c := j.Clone()
	require.NotSame(t, j, c)
	require.True(t, j.Equal(c))

	_, err = j.RegisterContent(google, "<html>google</html>")
	require.NoError(t, err)
	require.Equal(t, 1, c.Size())

	_, err = c.RegisterContent(archWiki, "<html>changed</html>")
	require.NoError(t, err)
	content, _, err := j.Lookup(archWiki)
	require.NoError(t, err)
	require.Equal(t, "<html>arch</html>", content)
}
