// Package journal implements the snapshot store (Journal) that maps page URLs
// to their HTML content, and Compare, which reports what changed between two
// snapshots.
//
// A Journal is safe for concurrent use. It holds at most one entry per URL;
// registering a URL again overwrites its content.
package journal

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"urljournal/pkg/logger"
	"urljournal/pkg/serrors"
	"urljournal/pkg/urlvalidate"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Semantic error kinds returned by Journal operations and Compare.
var (
	// ErrInvalidURL is returned when a URL fails the journal's Validator.
	ErrInvalidURL = serrors.NewKind("INVALID_URL")
	// ErrBlankContent is returned when injected content is empty or whitespace only.
	ErrBlankContent = serrors.NewKind("BLANK_CONTENT")
	// ErrNullJournal is returned by Compare when a journal is nil.
	ErrNullJournal = serrors.NewKind("NULL_JOURNAL")
	// ErrIdenticalJournalReference is returned by Compare when both arguments
	// are the same journal.
	ErrIdenticalJournalReference = serrors.NewKind("IDENTICAL_JOURNAL_REFERENCE")
)

const defaultConcurrency = 8

// Fetcher retrieves the HTML content of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// Validator decides whether a string is an acceptable URL. Implementations
// must be pure.
type Validator interface {
	IsValidURL(s string) bool
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(s string) bool

// IsValidURL calls f(s).
func (f ValidatorFunc) IsValidURL(s string) bool { return f(s) }

// Option configures a Journal.
type Option func(*Journal)

// WithValidator replaces the default URL validator (urlvalidate.Default).
func WithValidator(v Validator) Option {
	return func(j *Journal) {
		if v != nil {
			j.validator = v
		}
	}
}

// WithNormalizer sets a function applied to every content before it is
// stored, e.g. htmldoc.Normalize.
func WithNormalizer(fn func(string) (string, error)) Option {
	return func(j *Journal) { j.normalize = fn }
}

// WithConcurrency bounds the number of concurrent fetches in NewFromURLs.
func WithConcurrency(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.concurrency = n
		}
	}
}

// Journal is a concurrent URL -> HTML content store holding the latest content
// observed for each URL.
type Journal struct {
	// mu guards entries. It is never held while fetching.
	mu      sync.RWMutex
	entries map[string]string

	validator   Validator
	normalize   func(string) (string, error)
	concurrency int
}

// New creates an empty Journal.
func New(opts ...Option) *Journal {
	j := &Journal{
		entries:     make(map[string]string),
		validator:   urlvalidate.Default,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(j)
	}

	return j
}

// NewFromURLs creates a Journal and registers a visit for every URL using
// fetcher. All URLs are validated before anything is fetched; an invalid URL
// fails construction with ErrInvalidURL. Fetch failures are logged and the URL
// is left out of the journal; they never fail construction.
func NewFromURLs(ctx context.Context, fetcher Fetcher, urls []string, opts ...Option) (*Journal, error) {
	if fetcher == nil {
		return nil, serrors.With(serrors.ErrBadRequest, "fetcher is required")
	}

	j := New(opts...)
	for _, u := range urls {
		if err := j.validate(u); err != nil {
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for _, u := range urls {
		g.Go(func() error {
			ok, err := j.RegisterVisit(gctx, u, fetcher)
			if err != nil {
				return err
			}
			if !ok {
				logger.Debug(ctx, "URL left out of journal", zap.String("URL", u))
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("could not build journal: %w", err)
	}

	return j, nil
}

func (j *Journal) validate(url string) error {
	if !j.validator.IsValidURL(url) {
		return serrors.With(ErrInvalidURL, "invalid URL %q", url)
	}

	return nil
}

// RegisterVisit fetches url and stores its content. It returns ErrInvalidURL
// when url is invalid. A failed fetch is not an error: RegisterVisit logs it,
// leaves the journal unchanged and returns false.
func (j *Journal) RegisterVisit(ctx context.Context, url string, fetcher Fetcher) (bool, error) {
	if err := j.validate(url); err != nil {
		return false, err
	}
	if fetcher == nil {
		return false, serrors.With(serrors.ErrBadRequest, "fetcher is required")
	}

	ctx = logger.WithFields(ctx, zap.String("URL", url))

	content, err := fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Warn(ctx, "could not fetch page", zap.Error(err))

		return false, nil
	}
	if isBlank(content) {
		logger.Warn(ctx, "fetched page is blank")

		return false, nil
	}
	if j.normalize != nil {
		if content, err = j.normalize(content); err != nil {
			logger.Warn(ctx, "could not normalize fetched page", zap.Error(err))

			return false, nil
		}
	}

	j.put(url, content)

	return true, nil
}

// RegisterContent stores content for url without fetching. It returns
// ErrInvalidURL or ErrBlankContent for invalid input and otherwise always
// stores the entry.
func (j *Journal) RegisterContent(url, content string) (bool, error) {
	if err := j.validate(url); err != nil {
		return false, err
	}
	if isBlank(content) {
		return false, serrors.With(ErrBlankContent, "content of %q is blank", url)
	}
	if j.normalize != nil {
		normalized, err := j.normalize(content)
		if err != nil {
			return false, serrors.Wrap(serrors.ErrBadRequest, err, "could not normalize content of %q", url)
		}
		content = normalized
	}

	j.put(url, content)

	return true, nil
}

func (j *Journal) put(url, content string) {
	j.mu.Lock()
	j.entries[url] = content
	j.mu.Unlock()
}

// Lookup returns the content stored for url. The boolean is false when the
// journal holds no entry for url, which is not an error.
func (j *Journal) Lookup(url string) (string, bool, error) {
	if err := j.validate(url); err != nil {
		return "", false, err
	}

	j.mu.RLock()
	content, ok := j.entries[url]
	j.mu.RUnlock()

	return content, ok, nil
}

// URLs returns a point-in-time copy of the journal's URLs. Changing the
// returned set does not affect the journal.
func (j *Journal) URLs() URLSet {
	j.mu.RLock()
	defer j.mu.RUnlock()

	set := make(URLSet, len(j.entries))
	for u := range j.entries {
		set[u] = struct{}{}
	}

	return set
}

// Size returns the number of entries.
func (j *Journal) Size() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}

// IsEmpty reports whether the journal has no entries.
func (j *Journal) IsEmpty() bool {
	return j.Size() == 0
}

// snapshot copies the entries under the read lock.
func (j *Journal) snapshot() map[string]string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make(map[string]string, len(j.entries))
	for u, c := range j.entries {
		out[u] = c
	}

	return out
}

// Clone returns an independent copy of the journal with the same options.
func (j *Journal) Clone() *Journal {
	return &Journal{
		entries:     j.snapshot(),
		validator:   j.validator,
		normalize:   j.normalize,
		concurrency: j.concurrency,
	}
}

// Equal reports whether both journals hold exactly the same URL -> content
// pairs. Registration order and history do not matter.
func (j *Journal) Equal(other *Journal) bool {
	if j == other {
		return true
	}
	if j == nil || other == nil {
		return false
	}

	a, b := j.snapshot(), other.snapshot()
	if len(a) != len(b) {
		return false
	}
	for u, c := range a {
		if oc, ok := b[u]; !ok || oc != c {
			return false
		}
	}

	return true
}

// Hash returns an FNV-64a hash of the journal's entries. Equal journals have
// equal hashes.
func (j *Journal) Hash() uint64 {
	entries := j.snapshot()
	urls := make([]string, 0, len(entries))
	for u := range entries {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	h := fnv.New64a()
	for _, u := range urls {
		_, _ = h.Write([]byte(u))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(entries[u]))
		_, _ = h.Write([]byte{0})
	}

	return h.Sum64()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
