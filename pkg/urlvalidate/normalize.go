package urlvalidate

import (
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"
)

// NormalizeURL validates raw with the Default validator and returns its
// canonical form, so that a watch list spelling the same page twice produces a
// single journal entry:
//   - lower-case scheme and host, drop default ports (http:80, https:443, ftp:21)
//   - empty path becomes "/", dot-segments and duplicate slashes are removed,
//     a trailing slash is dropped except for the root
//   - query parameters are sorted by key then value
//   - the fragment is removed
func NormalizeURL(raw string) (string, error) {
	if !IsValidURL(raw) {
		return "", fmt.Errorf("invalid URL %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Path = cleanPath(u.Path)
	u.RawPath = ""
	u.Host = canonicalHost(u.Scheme, u.Host)

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		// Encode sorts keys
		u.RawQuery = q.Encode()
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}

	cleaned := path.Clean(p)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	if cleaned != "/" {
		cleaned = strings.TrimRight(cleaned, "/")
	}

	return cleaned
}

var defaultPorts = map[string]string{ //nolint: gochecknoglobals
	"http":  "80",
	"https": "443",
	"ftp":   "21",
}

func canonicalHost(scheme, hostport string) string {
	hostport = strings.ToLower(hostport)

	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		// no explicit port
		return hostport
	}
	if defaultPorts[scheme] == port {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}

		return host
	}

	return net.JoinHostPort(host, port)
}
