package journal

import (
	"sort"
	"strings"
	"urljournal/pkg/serrors"
)

// URLSet is a set of URLs. Sets returned by this package are copies owned by
// the caller.
type URLSet map[string]struct{}

// NewURLSet builds a set from the given URLs.
func NewURLSet(urls ...string) URLSet {
	s := make(URLSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}

	return s
}

// Has reports whether u is in the set.
func (s URLSet) Has(u string) bool {
	_, ok := s[u]

	return ok
}

// Len returns the number of URLs in the set.
func (s URLSet) Len() int { return len(s) }

// Sorted returns the URLs in lexical order.
func (s URLSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)

	return out
}

func (s URLSet) clone() URLSet {
	out := make(URLSet, len(s))
	for u := range s {
		out[u] = struct{}{}
	}

	return out
}

// Diff is the comparison of a base snapshot with a current one. It is
// immutable; accessors return copies.
type Diff struct {
	disappeared URLSet
	appeared    URLSet
	modified    URLSet
}

// Compare reports the URLs that disappeared from base, appeared in current,
// and whose content differs between the two. Content is compared by exact
// string equality.
//
// Each journal is copied once under its own lock, so every set reflects a
// single point in time of each journal even when they are being written to.
// Comparing a journal with itself is a caller bug and fails with
// ErrIdenticalJournalReference.
func Compare(base, current *Journal) (*Diff, error) {
	if base == nil || current == nil {
		return nil, serrors.With(ErrNullJournal, "both journals are required")
	}
	if base == current {
		return nil, serrors.With(ErrIdenticalJournalReference, "cannot compare a journal with itself")
	}

	b, c := base.snapshot(), current.snapshot()

	d := &Diff{
		disappeared: make(URLSet),
		appeared:    make(URLSet),
		modified:    make(URLSet),
	}
	for u, bc := range b {
		cc, ok := c[u]
		switch {
		case !ok:
			d.disappeared[u] = struct{}{}
		case cc != bc:
			d.modified[u] = struct{}{}
		}
	}
	for u := range c {
		if _, ok := b[u]; !ok {
			d.appeared[u] = struct{}{}
		}
	}

	return d, nil
}

// Disappeared returns the URLs present in base but not in current.
func (d *Diff) Disappeared() URLSet { return d.disappeared.clone() }

// Appeared returns the URLs present in current but not in base.
func (d *Diff) Appeared() URLSet { return d.appeared.clone() }

// Modified returns the URLs present in both journals with different content.
func (d *Diff) Modified() URLSet { return d.modified.clone() }

// IsEmpty reports whether nothing changed between the two snapshots.
func (d *Diff) IsEmpty() bool {
	return len(d.disappeared) == 0 && len(d.appeared) == 0 && len(d.modified) == 0
}

// EmptyMarker is rendered in place of an empty category.
const EmptyMarker = "(none)"

// String renders one numbered line per category.
func (d *Diff) String() string {
	var b strings.Builder
	b.WriteString("1. Following URLs disappeared : ")
	b.WriteString(formatSet(d.disappeared))
	b.WriteString("\n2. Following URLs appeared : ")
	b.WriteString(formatSet(d.appeared))
	b.WriteString("\n3. Following URLs has changed its HTML-content : ")
	b.WriteString(formatSet(d.modified))
	b.WriteString("\n")

	return b.String()
}

func formatSet(s URLSet) string {
	if len(s) == 0 {
		return EmptyMarker
	}

	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}
