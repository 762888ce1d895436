// Package urlvalidate decides whether a string is an acceptable page URL and
// canonicalises accepted URLs so that equivalent spellings share one journal key.
package urlvalidate

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Options tune the Validator.
type Options struct {
	// Schemes lists the accepted URL schemes. Defaults to http, https and ftp.
	Schemes []string
	// AllowLocal accepts "localhost" and single-label host names.
	AllowLocal bool
}

// Validator is a pure URL predicate. The zero value is not usable; build one
// with New or use Default.
type Validator struct {
	schemes    map[string]struct{}
	allowLocal bool
}

// Default accepts absolute http, https and ftp URLs with a public-looking host.
var Default = New(Options{}) //nolint: gochecknoglobals

// New creates a Validator from the given options.
func New(opts Options) *Validator {
	schemes := opts.Schemes
	if len(schemes) == 0 {
		schemes = []string{"http", "https", "ftp"}
	}

	v := &Validator{
		schemes:    make(map[string]struct{}, len(schemes)),
		allowLocal: opts.AllowLocal,
	}
	for _, s := range schemes {
		v.schemes[strings.ToLower(s)] = struct{}{}
	}

	return v
}

// IsValidURL reports whether s is a syntactically valid absolute URL with an
// accepted scheme and a well-formed host.
func (v *Validator) IsValidURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	u, err := url.Parse(s)
	if err != nil || u.Opaque != "" {
		return false
	}
	if _, ok := v.schemes[strings.ToLower(u.Scheme)]; !ok {
		return false
	}
	if u.Host == "" {
		return false
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > 65535 {
			return false
		}
	} else if strings.HasSuffix(u.Host, ":") {
		return false
	}

	return v.validHost(u.Hostname())
}

func (v *Validator) validHost(host string) bool {
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")
	labels := strings.Split(host, ".")
	if len(labels) == 1 {
		return v.allowLocal && validLabel(labels[0])
	}

	for _, l := range labels {
		if !validLabel(l) {
			return false
		}
	}

	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}

	return true
}

// validLabel checks a single DNS label: 1-63 chars of letters, digits and
// hyphens, not starting or ending with a hyphen.
func validLabel(l string) bool {
	if l == "" || len(l) > 63 {
		return false
	}
	if l[0] == '-' || l[len(l)-1] == '-' {
		return false
	}
	for _, r := range l {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}

	return true
}

// IsValidURL reports whether s passes the Default validator.
func IsValidURL(s string) bool {
	return Default.IsValidURL(s)
}
